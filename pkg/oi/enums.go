package oi

import "fmt"

// Mode is the Open Interface mode reported by packet 35.
type Mode int

// Modes.
const (
	ModeOff Mode = iota
	ModePassive
	ModeSafe
	ModeFull
)

var modeNames = []string{"off", "passive", "safe", "full"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, bool) {
	for n, name := range modeNames {
		if name == s {
			return Mode(n), true
		}
	}
	return 0, false
}

// ChargingState is reported by packet 21.
type ChargingState int

// Charging states.
const (
	NotCharging ChargingState = iota
	ReconditioningCharging
	FullCharging
	TrickleCharging
	Waiting
	ChargingFault
)

var chargingStateNames = []string{
	"not charging",
	"reconditioning",
	"full charging",
	"trickle charging",
	"waiting",
	"fault",
}

func (s ChargingState) String() string {
	if s >= 0 && int(s) < len(chargingStateNames) {
		return chargingStateNames[s]
	}
	return fmt.Sprintf("charging state(%d)", int(s))
}

// BaudCode is the parameter of the BAUD command.
type BaudCode uint8

// Baud codes.
const (
	Baud300 BaudCode = iota
	Baud600
	Baud1200
	Baud2400
	Baud4800
	Baud9600
	Baud14400
	Baud19200
	Baud28800
	Baud38400
	Baud57600
	Baud115200
)

var baudRates = []int{300, 600, 1200, 2400, 4800, 9600, 14400, 19200, 28800, 38400, 57600, 115200}

// Rate returns the baud rate in bits per second.
func (c BaudCode) Rate() int {
	if int(c) < len(baudRates) {
		return baudRates[c]
	}
	return 0
}

// BaudCodeOf returns the code for a rate.
func BaudCodeOf(rate int) (BaudCode, bool) {
	for n, r := range baudRates {
		if r == rate {
			return BaudCode(n), true
		}
	}
	return 0, false
}

// Bits of packet 7.
const (
	BumpRight      = 0x01
	BumpLeft       = 0x02
	WheelDropRight = 0x04
	WheelDropLeft  = 0x08
)

// Bits of packet 14.
const (
	OvercurrentSideBrush  = 0x01
	OvercurrentMainBrush  = 0x04
	OvercurrentRightWheel = 0x08
	OvercurrentLeftWheel  = 0x10
)

// Bits of packet 18.
const (
	ButtonClean    = 0x01
	ButtonSpot     = 0x02
	ButtonDock     = 0x04
	ButtonMinute   = 0x08
	ButtonHour     = 0x10
	ButtonDay      = 0x20
	ButtonSchedule = 0x40
	ButtonClock    = 0x80
)

// Bits of packet 34.
const (
	ChargerInternal = 0x01
	ChargerHomeBase = 0x02
)

// Bits of packet 45.
const (
	LightBumpLeft        = 0x01
	LightBumpFrontLeft   = 0x02
	LightBumpCenterLeft  = 0x04
	LightBumpCenterRight = 0x08
	LightBumpFrontRight  = 0x10
	LightBumpRight       = 0x20
)

// Bits of packet 58.
const (
	StasisToggling = 0x01
	StasisDisabled = 0x02
)

// Bits of the first LEDS parameter.
const (
	LEDDebris     = 0x01
	LEDSpot       = 0x02
	LEDDock       = 0x04
	LEDCheckRobot = 0x08
)

// Bits of the MOTORS parameter.
const (
	MotorSideBrush          = 0x01
	MotorVacuum             = 0x02
	MotorMainBrush          = 0x04
	MotorSideBrushClockwise = 0x08
	MotorMainBrushOutward   = 0x10
)

// Special DRIVE radius values.
const (
	RadiusStraight    = -0x8000
	RadiusStraightAlt = 0x7fff
	RadiusTurnCW      = -1
	RadiusTurnCCW     = 1
)

// Wheel geometry of the Create 2.
const (
	TicksPerRev     = 508.8
	WheelDiameterMM = 72
	WheelBaseMM     = 235
)
