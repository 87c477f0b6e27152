package serial

import (
	"io"
	"time"

	bugst "go.bug.st/serial"
)

// Port is the subset of a serial port used by Channel.
// go.bug.st/serial.Port satisfies it.
type Port interface {
	io.ReadWriteCloser
	// SetReadTimeout bounds how long Read blocks. Zero returns immediately.
	SetReadTimeout(timeout time.Duration) error
	// ResetInputBuffer drops bytes received but not yet read.
	ResetInputBuffer() error
	// Drain waits until all written bytes are transmitted.
	Drain() error
}

// Supported baud rates. The robot boots at 115200 and can be switched
// to 19200 by holding the Clean button on power up.
const (
	Baud115200 = 115200
	Baud19200  = 19200
)

// DefaultTimeout is the read timeout used when Options.Timeout is zero.
const DefaultTimeout = time.Second

// Options configures Open.
type Options struct {
	// Timeout bounds a single Read.
	Timeout time.Duration
	// BannerWait, if positive, collects whatever the robot emits right after
	// the port is opened, which is returned by Open as the startup banner.
	BannerWait time.Duration
}

// Opener opens a port by name. It's replaced in tests.
type Opener func(name string, baud int) (Port, error)

// OpenPort is the default Opener using go.bug.st/serial with 8N1 framing
// and no flow control.
func OpenPort(name string, baud int) (Port, error) {
	mode := &bugst.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}
	return bugst.Open(name, mode)
}

// ValidBaud reports whether baud is one of the supported rates.
func ValidBaud(baud int) bool {
	return baud == Baud115200 || baud == Baud19200
}
