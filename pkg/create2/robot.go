// Package create2 is a thin command API for the iRobot Create 2.
//
// Every command is a single opcode write; sensor reads go through the
// query planner. A Robot must not be used by more than one goroutine at a
// time.
package create2

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/create2/pkg/oi"
	"github.com/robotalks/create2/pkg/oi/comm"
	"github.com/robotalks/create2/pkg/oi/query"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

// Parameter ranges of the drive and motor commands.
var (
	velocityParam = param(2, -500, 500)
	radiusParam   = param(2, -2000, 2000)
	pwmParam      = param(2, -255, 255)
	brushParam    = param(1, -127, 127)
	vacuumParam   = param(1, 0, 127)
	byteParam     = param(1, 0, 255)
)

func param(width, min, max int) sensors.Descriptor {
	return sensors.Descriptor{Width: width, Range: sensors.Range{Min: min, Max: max}, Name: "param"}
}

// Robot sends commands to a Create 2.
type Robot struct {
	tr      query.Transport
	planner *query.Planner
	closer  func() error
}

// New creates a Robot on a transport, e.g. a *comm.Conn.
func New(tr query.Transport) *Robot {
	return &Robot{tr: tr, planner: query.New(tr, nil)}
}

// Dial opens the serial port and returns the Robot and the startup banner.
func Dial(port string, baud int, opts comm.Options) (*Robot, []byte, error) {
	conn, banner, err := comm.Dial(port, baud, opts)
	if err != nil {
		return nil, nil, err
	}
	r := New(conn)
	r.closer = conn.Close
	return r, banner, nil
}

// Close closes the connection if the Robot opened it.
func (r *Robot) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}

// Planner returns the query planner.
func (r *Robot) Planner() *query.Planner {
	return r.planner
}

// Send writes a command.
func (r *Robot) Send(cmd oi.Command) error {
	glog.V(2).Infof("send %s", cmd)
	if err := r.tr.Write(cmd.Bytes()); err != nil {
		return fmt.Errorf("send %s: %w", cmd.Op, err)
	}
	return nil
}

func (r *Robot) send(op oi.Opcode, params ...byte) error {
	cmd, err := oi.NewCommand(op, params...)
	if err != nil {
		return err
	}
	return r.Send(cmd)
}

// Start enters passive mode.
func (r *Robot) Start() error {
	return r.send(oi.Start)
}

// Passive is the same as Start.
func (r *Robot) Passive() error {
	return r.Start()
}

// Safe enters safe mode.
func (r *Robot) Safe() error {
	return r.send(oi.Safe)
}

// Full enters full mode.
func (r *Robot) Full() error {
	return r.send(oi.Full)
}

// SetMode switches to the given mode. ModeOff stops the Open Interface.
func (r *Robot) SetMode(m oi.Mode) error {
	switch m {
	case oi.ModeOff:
		return r.Stop()
	case oi.ModePassive:
		return r.Start()
	case oi.ModeSafe:
		return r.Safe()
	case oi.ModeFull:
		return r.Full()
	default:
		return fmt.Errorf("unknown mode %d", int(m))
	}
}

// Stop stops the Open Interface. The robot stops responding to commands.
func (r *Robot) Stop() error {
	return r.send(oi.Stop)
}

// Reset resets the robot as if the battery was removed.
func (r *Robot) Reset() error {
	return r.send(oi.Reset)
}

// Power powers the robot down.
func (r *Robot) Power() error {
	return r.send(oi.Power)
}

// SeekDock starts searching for the dock.
func (r *Robot) SeekDock() error {
	return r.send(oi.SeekDock)
}

// Clean starts the default cleaning mode.
func (r *Robot) Clean() error {
	return r.send(oi.Clean)
}

// Drive drives at velocity mm/s along radius mm. Special radius values are
// passed through, others are clamped.
func (r *Robot) Drive(velocity, radius int) error {
	var rad []byte
	switch radius {
	case oi.RadiusStraight, oi.RadiusStraightAlt:
		rad = sensors.Pack(param(2, -0x8000, 0x7fff), radius)
	default:
		rad = sensors.Pack(radiusParam, radius)
	}
	return r.send(oi.Drive, append(sensors.Pack(velocityParam, velocity), rad...)...)
}

// DriveDirect drives each wheel at its own velocity in mm/s.
func (r *Robot) DriveDirect(right, left int) error {
	return r.send(oi.DriveDirect, append(sensors.Pack(velocityParam, right), sensors.Pack(velocityParam, left)...)...)
}

// DrivePWM drives each wheel with a PWM duty cycle in [-255, 255].
func (r *Robot) DrivePWM(right, left int) error {
	return r.send(oi.DrivePWM, append(sensors.Pack(pwmParam, right), sensors.Pack(pwmParam, left)...)...)
}

// DriveStop stops both wheels.
func (r *Robot) DriveStop() error {
	return r.DriveDirect(0, 0)
}

// Motors turns the cleaning motors on or off, using oi.Motor* bits.
func (r *Robot) Motors(bits int) error {
	return r.send(oi.Motors, sensors.Pack(byteParam, bits)...)
}

// MotorsPWM sets duty cycles of the brushes in [-127, 127] and the vacuum
// in [0, 127].
func (r *Robot) MotorsPWM(mainBrush, sideBrush, vacuum int) error {
	params := sensors.Pack(brushParam, mainBrush)
	params = append(params, sensors.Pack(brushParam, sideBrush)...)
	params = append(params, sensors.Pack(vacuumParam, vacuum)...)
	return r.send(oi.MotorsPWM, params...)
}

// LEDs sets the oi.LED* bits and the power LED color (0 green, 255 red)
// and intensity.
func (r *Robot) LEDs(bits, color, intensity int) error {
	params := sensors.Pack(byteParam, bits)
	params = append(params, sensors.Pack(byteParam, color)...)
	params = append(params, sensors.Pack(byteParam, intensity)...)
	return r.send(oi.LEDs, params...)
}

// DigitLEDASCII shows up to 4 printable characters on the digit LEDs.
func (r *Robot) DigitLEDASCII(text string) error {
	text = strings.ToUpper(text)
	digits := []byte("    ")
	for n := 0; n < len(digits) && n < len(text); n++ {
		if c := text[n]; c >= 32 && c <= 126 {
			digits[n] = c
		}
	}
	return r.send(oi.DigitLEDASCII, digits...)
}

// Note is a song note: a pitch and a duration in 1/64 s.
type Note struct {
	Pitch    oi.Note
	Duration uint8
}

// MaxSongLen is the number of notes a song can hold.
const MaxSongLen = 16

// Song defines song number (0-4).
func (r *Robot) Song(number int, notes ...Note) error {
	if number < 0 || number > 4 {
		return fmt.Errorf("invalid song number %d", number)
	}
	if len(notes) == 0 || len(notes) > MaxSongLen {
		return fmt.Errorf("song must have 1 to %d notes, got %d", MaxSongLen, len(notes))
	}
	params := []byte{byte(number), byte(len(notes))}
	for _, n := range notes {
		if !n.Pitch.Playable() {
			return fmt.Errorf("note %d can't be played", n.Pitch)
		}
		params = append(params, byte(n.Pitch), n.Duration)
	}
	return r.send(oi.Song, params...)
}

// Play plays a defined song.
func (r *Robot) Play(number int) error {
	if number < 0 || number > 4 {
		return fmt.Errorf("invalid song number %d", number)
	}
	return r.send(oi.Play, byte(number))
}

// Sensors reads named sensor packets.
func (r *Robot) Sensors(names ...string) (sensors.Readings, error) {
	return r.planner.QueryNames(names...)
}

// SensorBlock reads a query block.
func (r *Robot) SensorBlock(block sensors.BlockID) (sensors.Readings, error) {
	return r.planner.QueryBlock(block)
}

// Mode reads the current Open Interface mode.
func (r *Robot) Mode() (oi.Mode, error) {
	readings, err := r.planner.QueryNames(sensors.OpenInterfaceMode)
	if err != nil {
		return 0, err
	}
	v, _ := readings.Get(sensors.OpenInterfaceMode)
	return oi.Mode(v), nil
}
