package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrReadTimeout indicates the robot didn't deliver the expected bytes
	// within the attempt budget. The whole command may be retried.
	ErrReadTimeout = errors.New("read timeout")
	// ErrNotOpen indicates the connection hasn't been opened.
	ErrNotOpen = errors.New("not open")
)

// ReadTimeoutError reports how far a ReadExact got before giving up.
type ReadTimeoutError struct {
	Want     int
	Got      int
	Attempts int
}

// Error implements error.
func (e *ReadTimeoutError) Error() string {
	return fmt.Sprintf("read timeout: got %d of %d bytes after %d attempts", e.Got, e.Want, e.Attempts)
}

// Is makes errors.Is(err, ErrReadTimeout) true.
func (e *ReadTimeoutError) Is(target error) bool {
	return target == ErrReadTimeout
}
