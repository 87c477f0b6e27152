package serial

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates the channel has been closed.
	// An in-flight Read or Wait fails with this error when Close is called.
	ErrClosed = errors.New("channel closed")
	// ErrUnsupportedBaud indicates the requested baud rate is not one the
	// Open Interface can be switched to.
	ErrUnsupportedBaud = errors.New("unsupported baud rate")
)

// ConnectionError reports a port that could not be opened at the requested rate.
type ConnectionError struct {
	Port string
	Baud int
	Err  error
}

// Error implements error.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open %s at %d baud: %v", e.Port, e.Baud, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
