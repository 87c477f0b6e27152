package sensors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSensor indicates a name or id not in the registry.
	ErrUnknownSensor = errors.New("unknown sensor")
	// ErrUnknownGroup indicates a block id not in the registry.
	ErrUnknownGroup = errors.New("unknown sensor group")
)

// CodecError is returned when the data length doesn't match the packet.
type CodecError struct {
	Sensor string
	Want   int
	Got    int
}

// Error implements error
func (e *CodecError) Error() string {
	return fmt.Sprintf("sensor %s: expect %d bytes, got %d", e.Sensor, e.Want, e.Got)
}

// UnknownSensorError is returned for a name that can't be queried.
type UnknownSensorError struct {
	Name      string
	Duplicate bool
}

// Error implements error
func (e *UnknownSensorError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("sensor %q requested more than once", e.Name)
	}
	return fmt.Sprintf("unknown sensor %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownSensor) work.
func (e *UnknownSensorError) Is(target error) bool {
	return target == ErrUnknownSensor
}

// UnknownGroupError is returned for an unknown block id.
type UnknownGroupError struct {
	Block BlockID
}

// Error implements error
func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown sensor group %d", e.Block)
}

// Is makes errors.Is(err, ErrUnknownGroup) work.
func (e *UnknownGroupError) Is(target error) bool {
	return target == ErrUnknownGroup
}
