// Package serial owns the physical serial connection to the robot.
//
// A Channel knows nothing about the Open Interface: it writes bytes, reads
// whatever has arrived, and reports how many bytes are waiting.
package serial

import (
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

const (
	readChunkSize = 256
	noTimeout     = time.Duration(-1)
)

// Channel is an open serial connection.
//
// Channel is not safe for concurrent use except for Close, which may be
// called from another goroutine to abort a blocked Read or Wait.
type Channel struct {
	name    string
	baud    int
	timeout time.Duration

	port        Port
	portTimeout time.Duration
	pending     []byte
	closed      atomic.Bool
}

// Open opens the named port at baud. On success it returns the startup
// banner collected during Options.BannerWait, which is not protocol data.
func Open(name string, baud int, opts Options) (*Channel, []byte, error) {
	return OpenWith(OpenPort, name, baud, opts)
}

// OpenWith is like Open but obtains the port from opener.
func OpenWith(opener Opener, name string, baud int, opts Options) (*Channel, []byte, error) {
	if !ValidBaud(baud) {
		return nil, nil, &ConnectionError{Port: name, Baud: baud, Err: ErrUnsupportedBaud}
	}
	port, err := opener(name, baud)
	if err != nil {
		return nil, nil, &ConnectionError{Port: name, Baud: baud, Err: err}
	}
	return openWith(port, name, baud, opts)
}

func openWith(port Port, name string, baud int, opts Options) (*Channel, []byte, error) {
	c := New(port, opts.Timeout)
	c.name, c.baud = name, baud
	glog.Infof("opened %s at %d baud", name, baud)
	if opts.BannerWait <= 0 {
		return c, nil, nil
	}
	banner, err := c.collect(opts.BannerWait)
	if err != nil {
		c.Close()
		return nil, nil, &ConnectionError{Port: name, Baud: baud, Err: err}
	}
	if len(banner) > 0 {
		glog.Infof("%s startup banner: %q", name, banner)
	}
	return c, banner, nil
}

// New wraps an already opened port. Zero timeout means DefaultTimeout.
func New(port Port, timeout time.Duration) *Channel {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Channel{port: port, timeout: timeout, portTimeout: noTimeout}
}

// Name returns the port name, empty for channels created by New.
func (c *Channel) Name() string {
	return c.name
}

// Baud returns the baud rate the port was opened at.
func (c *Channel) Baud() int {
	return c.baud
}

// Timeout returns the per-Read timeout.
func (c *Channel) Timeout() time.Duration {
	return c.timeout
}

// Write sends exactly p. With flush, it returns only after the bytes have
// been transmitted.
func (c *Channel) Write(p []byte, flush bool) error {
	if c.closed.Load() {
		return ErrClosed
	}
	for written := 0; written < len(p); {
		n, err := c.port.Write(p[written:])
		if err != nil {
			return c.portErr(err)
		}
		written += n
	}
	if glog.V(2) {
		glog.Infof("TX % x", p)
	}
	if flush {
		return c.portErr(c.port.Drain())
	}
	return nil
}

// Read returns up to max bytes that are available, waiting at most the
// channel timeout when nothing is pending. It returns an empty slice on
// timeout.
func (c *Channel) Read(max int) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if len(c.pending) == 0 {
		if err := c.fill(c.timeout); err != nil {
			return nil, err
		}
	}
	n := len(c.pending)
	if n > max {
		n = max
	}
	out := make([]byte, n)
	copy(out, c.pending)
	c.pending = c.pending[n:]
	if glog.V(2) && n > 0 {
		glog.Infof("RX % x", out)
	}
	return out, nil
}

// Pending returns the number of bytes ready to be read without blocking.
func (c *Channel) Pending() (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	if len(c.pending) == 0 {
		if err := c.fill(0); err != nil {
			return 0, err
		}
	}
	return len(c.pending), nil
}

// Wait blocks until at least one byte is pending or d elapses, and returns
// the number of pending bytes.
func (c *Channel) Wait(d time.Duration) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	if len(c.pending) == 0 {
		if err := c.fill(d); err != nil {
			return 0, err
		}
	}
	return len(c.pending), nil
}

// Discard drops any received but unread bytes.
func (c *Channel) Discard() error {
	if c.closed.Load() {
		return ErrClosed
	}
	if n := len(c.pending); n > 0 {
		glog.V(2).Infof("discard %d pending bytes", n)
	}
	c.pending = nil
	return c.portErr(c.port.ResetInputBuffer())
}

// Close closes the port. It's safe to call more than once.
func (c *Channel) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	glog.Infof("closing %s", c.name)
	return c.port.Close()
}

// collect reads everything arriving within d.
func (c *Channel) collect(d time.Duration) ([]byte, error) {
	var out []byte
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		if err := c.fill(remaining); err != nil {
			return nil, err
		}
		out, c.pending = append(out, c.pending...), nil
	}
	return out, nil
}

func (c *Channel) fill(timeout time.Duration) error {
	if timeout != c.portTimeout {
		if err := c.port.SetReadTimeout(timeout); err != nil {
			return c.portErr(err)
		}
		c.portTimeout = timeout
	}
	buf := make([]byte, readChunkSize)
	n, err := c.port.Read(buf)
	if c.closed.Load() {
		return ErrClosed
	}
	if n > 0 {
		c.pending = append(c.pending, buf[:n]...)
	}
	return err
}

func (c *Channel) portErr(err error) error {
	if err != nil && c.closed.Load() {
		return ErrClosed
	}
	return err
}
