// Package oi defines the Open Interface opcodes, commands and the enums
// carried in sensor values and command parameters.
package oi

import "fmt"

// Opcode is a one-byte command identifier.
type Opcode uint8

// Opcodes.
const (
	Reset         Opcode = 7
	Start         Opcode = 128
	Baud          Opcode = 129
	Safe          Opcode = 131
	Full          Opcode = 132
	Power         Opcode = 133
	Spot          Opcode = 134
	Clean         Opcode = 135
	Max           Opcode = 136
	Drive         Opcode = 137
	Motors        Opcode = 138
	LEDs          Opcode = 139
	Song          Opcode = 140
	Play          Opcode = 141
	Sensors       Opcode = 142
	SeekDock      Opcode = 143
	MotorsPWM     Opcode = 144
	DriveDirect   Opcode = 145
	DrivePWM      Opcode = 146
	Stream        Opcode = 148
	QueryList     Opcode = 149
	PauseStream   Opcode = 150
	DigitLEDASCII Opcode = 164
	Stop          Opcode = 173
)

// variable marks opcodes whose parameter count depends on the parameters.
const variable = -1

type opcodeInfo struct {
	name   string
	params int
}

var opcodes = map[Opcode]opcodeInfo{
	Reset:         {"RESET", 0},
	Start:         {"START", 0},
	Baud:          {"BAUD", 1},
	Safe:          {"SAFE", 0},
	Full:          {"FULL", 0},
	Power:         {"POWER", 0},
	Spot:          {"SPOT", 0},
	Clean:         {"CLEAN", 0},
	Max:           {"MAX", 0},
	Drive:         {"DRIVE", 4},
	Motors:        {"MOTORS", 1},
	LEDs:          {"LEDS", 3},
	Song:          {"SONG", variable},
	Play:          {"PLAY", 1},
	Sensors:       {"SENSORS", 1},
	SeekDock:      {"SEEK_DOCK", 0},
	MotorsPWM:     {"MOTORS_PWM", 3},
	DriveDirect:   {"DRIVE_DIRECT", 4},
	DrivePWM:      {"DRIVE_PWM", 4},
	Stream:        {"STREAM", variable},
	QueryList:     {"QUERY_LIST", variable},
	PauseStream:   {"PAUSE_STREAM", 1},
	DigitLEDASCII: {"DIGIT_LED_ASCII", 4},
	Stop:          {"STOP", 0},
}

// Known reports whether op is in the opcode table.
func (op Opcode) Known() bool {
	_, ok := opcodes[op]
	return ok
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return fmt.Sprintf("OPCODE(%d)", uint8(op))
}

// ParseOpcode looks up an opcode by name, e.g. "DRIVE_DIRECT".
func ParseOpcode(name string) (Opcode, bool) {
	for op, info := range opcodes {
		if info.name == name {
			return op, true
		}
	}
	return 0, false
}

// ParamCount returns the number of parameter bytes op takes given its
// leading parameters. For SONG, STREAM and QUERY_LIST the count is derived
// from the length byte, and ok is false until enough of params is present.
func ParamCount(op Opcode, params []byte) (count int, ok bool) {
	info, known := opcodes[op]
	if !known {
		return 0, false
	}
	if info.params != variable {
		return info.params, true
	}
	switch op {
	case Song:
		// song number, length, then (note, duration) pairs
		if len(params) < 2 {
			return 0, false
		}
		return 2 + 2*int(params[1]), true
	default:
		// length, then packet ids
		if len(params) < 1 {
			return 0, false
		}
		return 1 + int(params[0]), true
	}
}
