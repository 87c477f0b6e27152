// Package robot provides shell commands talking to the robot.
package robot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/create2/pkg/cli/sh"
	"github.com/robotalks/create2/pkg/create2"
	"github.com/robotalks/create2/pkg/oi"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

var (
	// SensorsCmd queries sensors by name.
	SensorsCmd = ishell.Cmd{
		Name:    "sensors",
		Aliases: []string{"s"},
		Help:    "NAME... (use quotes for names with spaces)",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("sensor names expected"))
				return
			}
			readings, err := r.Sensors(c.Args...)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintReadings(c, readings)
		}),
	}

	// QueryCmd queries sensors by packet id.
	QueryCmd = ishell.Cmd{
		Name:    "query",
		Aliases: []string{"q"},
		Help:    "ID...",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			ids, err := sh.ParseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if len(ids) == 0 {
				c.Err(fmt.Errorf("packet ids expected"))
				return
			}
			packets := make([]sensors.PacketID, len(ids))
			for n, id := range ids {
				packets[n] = sensors.PacketID(id)
			}
			readings, err := r.Planner().QueryIDs(packets...)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintReadings(c, readings)
		}),
	}

	// BlockCmd queries a sensor block.
	BlockCmd = ishell.Cmd{
		Name:    "block",
		Aliases: []string{"b"},
		Help:    "BLOCK (default 100)",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			block := sensors.BlockAll
			if len(c.Args) > 0 {
				ids, err := sh.ParseBytes(c.Args[:1])
				if err != nil {
					c.Err(err)
					return
				}
				block = sensors.BlockID(ids[0])
			}
			readings, err := r.SensorBlock(block)
			if err != nil {
				c.Err(err)
				return
			}
			sh.PrintReadings(c, readings)
		}),
	}

	// PacketCmd lists known packets and blocks.
	PacketCmd = ishell.Cmd{
		Name:    "packets",
		Aliases: []string{"packet", "p"},
		Help:    "[BLOCK]",
		Func: func(c *ishell.Context) {
			c.Print(FormatPackets(c.Args))
		},
	}

	// RawCmd sends raw command bytes, validated against the opcode table.
	RawCmd = ishell.Cmd{
		Name:    "raw",
		Aliases: []string{"r"},
		Help:    "OPCODE|NAME [PARAM...]",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			cmd, err := ParseRaw(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err := r.Send(cmd); err != nil {
				c.Err(err)
			}
		}),
	}

	// ModeCmd reads or changes the Open Interface mode.
	ModeCmd = ishell.Cmd{
		Name:    "mode",
		Aliases: []string{"m"},
		Help:    "[off|passive|safe|full]",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			if len(c.Args) == 0 {
				m, err := r.Mode()
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(m)
				return
			}
			m, ok := oi.ParseMode(c.Args[0])
			if !ok {
				c.Err(fmt.Errorf("unknown mode %q", c.Args[0]))
				return
			}
			if err := r.SetMode(m); err != nil {
				c.Err(err)
			}
		}),
	}

	// DriveCmd drives the wheels.
	DriveCmd = ishell.Cmd{
		Name:    "drive",
		Aliases: []string{"d"},
		Help:    "VELOCITY RADIUS | direct RIGHT LEFT",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			args := c.Args
			direct := len(args) > 0 && args[0] == "direct"
			if direct {
				args = args[1:]
			}
			values, err := sh.ParseInts(args)
			if err != nil {
				c.Err(err)
				return
			}
			if len(values) != 2 {
				c.Err(fmt.Errorf("two values expected"))
				return
			}
			if direct {
				err = r.DriveDirect(values[0], values[1])
			} else {
				err = r.Drive(values[0], values[1])
			}
			if err != nil {
				c.Err(err)
			}
		}),
	}

	// SongCmd defines a song.
	SongCmd = ishell.Cmd{
		Name: "song",
		Help: "NUMBER NOTE[:DURATION]... (e.g. C4:16 REST:8 FS4)",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("song number and notes expected"))
				return
			}
			number, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid song number %q", c.Args[0]))
				return
			}
			notes, err := ParseSong(c.Args[1:])
			if err != nil {
				c.Err(err)
				return
			}
			if err := r.Song(number, notes...); err != nil {
				c.Err(err)
			}
		}),
	}

	// PlayCmd plays a defined song.
	PlayCmd = ishell.Cmd{
		Name: "play",
		Help: "NUMBER",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("song number expected"))
				return
			}
			number, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid song number %q", c.Args[0]))
				return
			}
			if err := r.Play(number); err != nil {
				c.Err(err)
			}
		}),
	}

	// StopCmd stops the wheels.
	StopCmd = ishell.Cmd{
		Name: "stop",
		Help: "",
		Func: sh.MustBeOpen(func(c *ishell.Context, r *create2.Robot) {
			if err := r.DriveStop(); err != nil {
				c.Err(err)
			}
		}),
	}
)

// ParseRaw builds a command from an opcode name or number and parameter
// bytes.
func ParseRaw(args []string) (oi.Command, error) {
	if len(args) == 0 {
		return oi.Command{}, fmt.Errorf("opcode expected")
	}
	op, ok := oi.ParseOpcode(strings.ToUpper(args[0]))
	if !ok {
		b, err := sh.ParseBytes(args[:1])
		if err != nil {
			return oi.Command{}, fmt.Errorf("unknown opcode %q", args[0])
		}
		op = oi.Opcode(b[0])
	}
	params, err := sh.ParseBytes(args[1:])
	if err != nil {
		return oi.Command{}, err
	}
	return oi.NewCommand(op, params...)
}

// defaultNoteDuration is 1/4 s in units of 1/64 s.
const defaultNoteDuration = 16

// ParseSong parses notes written as NAME[:DURATION].
func ParseSong(args []string) ([]create2.Note, error) {
	notes := make([]create2.Note, 0, len(args))
	for _, arg := range args {
		name, duration, hasDuration := strings.Cut(arg, ":")
		pitch, err := oi.ParseNote(name)
		if err != nil {
			return nil, err
		}
		note := create2.Note{Pitch: pitch, Duration: defaultNoteDuration}
		if hasDuration {
			d, err := strconv.ParseUint(duration, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid duration in %q", arg)
			}
			note.Duration = uint8(d)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// FormatPackets lists the packets of the given blocks, or all packets and
// the block sizes.
func FormatPackets(args []string) string {
	var sb strings.Builder
	if len(args) == 0 {
		for _, d := range sensors.Default.All() {
			fmt.Fprintf(&sb, "%3d %-26s %d %-8s %s\n", d.ID, d.Name, d.Width, d.Encoding(), d.Range)
		}
		for _, b := range sensors.Default.Blocks() {
			size, _ := sensors.Default.BlockSize(b)
			fmt.Fprintf(&sb, "block %d: %d bytes\n", b, size)
		}
		return sb.String()
	}
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(&sb, "invalid block %q\n", arg)
			continue
		}
		if id < 0 || id > 255 {
			fmt.Fprintf(&sb, "unknown block %d\n", id)
			continue
		}
		members, ok := sensors.Default.Group(sensors.BlockID(id))
		if !ok {
			fmt.Fprintf(&sb, "unknown block %d\n", id)
			continue
		}
		names := make([]string, len(members))
		for n, d := range members {
			names[n] = fmt.Sprintf("%d", d.ID)
		}
		fmt.Fprintf(&sb, "block %d: %s\n", id, strings.Join(names, " "))
	}
	return sb.String()
}

func init() {
	sh.AddCmds(
		&SensorsCmd,
		&QueryCmd,
		&BlockCmd,
		&PacketCmd,
		&RawCmd,
		&ModeCmd,
		&DriveCmd,
		&SongCmd,
		&PlayCmd,
		&StopCmd,
	)
}
