package oi

import "fmt"

// Command is an opcode with its parameter bytes.
type Command struct {
	Op     Opcode
	Params []byte
}

// NewCommand builds a command, checking the parameter count against the
// opcode table.
func NewCommand(op Opcode, params ...byte) (Command, error) {
	if !op.Known() {
		return Command{}, &CommandError{Op: op, Reason: "unknown opcode"}
	}
	want, ok := ParamCount(op, params)
	if !ok {
		return Command{}, &CommandError{Op: op, Reason: "missing length parameter"}
	}
	if want != len(params) {
		return Command{}, &CommandError{
			Op:     op,
			Reason: fmt.Sprintf("expect %d parameter bytes, got %d", want, len(params)),
		}
	}
	return Command{Op: op, Params: append([]byte(nil), params...)}, nil
}

// MustCommand is like NewCommand but panics on error.
func MustCommand(op Opcode, params ...byte) Command {
	cmd, err := NewCommand(op, params...)
	if err != nil {
		panic(err)
	}
	return cmd
}

// Bytes returns the wire form of the command.
func (c Command) Bytes() []byte {
	return append([]byte{byte(c.Op)}, c.Params...)
}

func (c Command) String() string {
	if len(c.Params) == 0 {
		return c.Op.String()
	}
	return fmt.Sprintf("%s % x", c.Op, c.Params)
}

// ParseCommand splits raw bytes into a command, validating it the same way
// NewCommand does.
func ParseCommand(raw []byte) (Command, error) {
	if len(raw) == 0 {
		return Command{}, &CommandError{Reason: "empty command"}
	}
	return NewCommand(Opcode(raw[0]), raw[1:]...)
}

// CommandError reports an invalid command.
type CommandError struct {
	Op     Opcode
	Reason string
}

// Error implements error
func (e *CommandError) Error() string {
	if e.Op == 0 {
		return "invalid command: " + e.Reason
	}
	return fmt.Sprintf("invalid command %s: %s", e.Op, e.Reason)
}
