package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/create2/pkg/create2"
	"github.com/robotalks/create2/pkg/env"
	"github.com/robotalks/create2/pkg/oi/comm"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

// Shell provides ishell backed interactive shell over a robot connection.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoOpen    bool

	Shell  *ishell.Shell
	Config *env.Config
	Robot  *create2.Robot

	// Dial opens the robot, create2.Dial by default.
	Dial func(port string, baud int, opts comm.Options) (*create2.Robot, []byte, error)

	port string
}

const (
	shellKey       = "$shell"
	unopenedPrompt = "[closed] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		Dial:   create2.Dial,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unopenedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command func requires an open robot.
func MustBeOpen(fn func(c *ishell.Context, r *create2.Robot)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		s := ShellFrom(c)
		if s.Robot == nil {
			c.Err(fmt.Errorf("not open"))
			return
		}
		fn(c, s.Robot)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the robot on port. The current robot is closed first since
// a serial port can only be opened once.
func (s *Shell) Open(port string, baud int) error {
	s.Close()
	robot, banner, err := s.Dial(port, baud, s.Config.Options())
	if err != nil {
		return err
	}
	s.Robot, s.port = robot, port
	if len(banner) > 0 && s.Interactive {
		s.Shell.Printf("%s", banner)
	}
	s.setPrompt(fmt.Sprintf("%s > ", port))
	return nil
}

// Close closes the current robot.
func (s *Shell) Close() {
	if s.Robot != nil {
		s.Robot.Close()
		s.Robot = nil
		s.setPrompt(unopenedPrompt)
	}
}

func (s *Shell) setPrompt(prompt string) {
	if s.Shell != nil {
		s.Shell.SetPrompt(prompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Config.Port)
		}
		if err := s.Open(s.Config.Port, s.Config.Baud); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.Port, err)
		}
	}
	defer s.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// FormatReadings renders readings one per line, or as a JSON object.
func FormatReadings(readings sensors.Readings, asJSON bool) (string, error) {
	if asJSON {
		out, err := json.Marshal(readings.Map())
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	width := 0
	for _, r := range readings {
		if len(r.Sensor.Name) > width {
			width = len(r.Sensor.Name)
		}
	}
	var sb strings.Builder
	for _, r := range readings {
		fmt.Fprintf(&sb, "%3d %-*s %d\n", r.Sensor.ID, width, r.Sensor.Name, r.Value)
	}
	return sb.String(), nil
}

// PrintReadings prints readings in the shell's output format.
func PrintReadings(c *ishell.Context, readings sensors.Readings) {
	out, err := FormatReadings(readings, ShellFrom(c).OutputJSON)
	if err != nil {
		c.Err(err)
		return
	}
	c.Print(out)
	if ShellFrom(c).OutputJSON {
		c.Println()
	}
}

// ParseInts parses decimal or 0x prefixed integers.
func ParseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for n, arg := range args {
		v, err := strconv.ParseInt(arg, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		out[n] = int(v)
	}
	return out, nil
}

// ParseBytes parses arguments as byte values.
func ParseBytes(args []string) ([]byte, error) {
	values, err := ParseInts(args)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(values))
	for n, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%d is not a byte", v)
		}
		out[n] = byte(v)
	}
	return out, nil
}

var (
	// OpenCmd opens the serial port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[PORT [BAUD]]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			port, baud := s.Config.Port, s.Config.Baud
			if len(c.Args) > 0 {
				port = c.Args[0]
			}
			if len(c.Args) > 1 {
				v, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("invalid baud %q", c.Args[1]))
					return
				}
				baud = v
			}
			if err := s.Open(port, baud); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the serial port.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf, err := env.Load()
	if err != nil {
		log.Fatalln(err)
	}
	New(conf).WithAutoOpen(true).Run(flag.Args()...)
}
