package comm

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/create2/pkg/oi/serial"
)

// Options configures Dial.
type Options struct {
	serial.Options

	PollInterval time.Duration
	MaxAttempts  int
	// Opener replaces serial.OpenPort, mostly for tests.
	Opener serial.Opener
}

// Conn pairs a Channel with the Reader consuming it. They are opened and
// closed together so leftover bytes never outlive the channel.
type Conn struct {
	Channel *serial.Channel
	Reader  *Reader

	name string
	baud int
	opts Options
}

// Dial opens the port and returns the connection and the startup banner.
func Dial(name string, baud int, opts Options) (*Conn, []byte, error) {
	c := &Conn{name: name, baud: baud, opts: opts}
	banner, err := c.open()
	if err != nil {
		return nil, nil, err
	}
	return c, banner, nil
}

// NewConn wraps an opened Channel. Reopen isn't supported on such a Conn.
func NewConn(ch *serial.Channel) *Conn {
	return &Conn{Channel: ch, Reader: NewReader(ch)}
}

func (c *Conn) open() ([]byte, error) {
	opener := c.opts.Opener
	if opener == nil {
		opener = serial.OpenPort
	}
	ch, banner, err := serial.OpenWith(opener, c.name, c.baud, c.opts.Options)
	if err != nil {
		return nil, err
	}
	r := NewReader(ch)
	if c.opts.PollInterval > 0 {
		r.PollInterval = c.opts.PollInterval
	}
	if c.opts.MaxAttempts > 0 {
		r.MaxAttempts = c.opts.MaxAttempts
	}
	c.Channel, c.Reader = ch, r
	return banner, nil
}

// Reopen closes and opens the port again with a fresh Reader.
func (c *Conn) Reopen() ([]byte, error) {
	if c.name == "" {
		return nil, ErrNotOpen
	}
	c.Close()
	glog.Infof("reopening %s", c.name)
	return c.open()
}

// Write sends a command and waits until it's transmitted. After a failed
// read, input still arriving for the lost response is dropped first.
func (c *Conn) Write(p []byte) error {
	if c.Channel == nil {
		return ErrNotOpen
	}
	if err := c.Reader.Resync(); err != nil {
		return err
	}
	return c.Channel.Write(p, true)
}

// ReadExact reads exactly n response bytes.
func (c *Conn) ReadExact(n int) ([]byte, error) {
	if c.Reader == nil {
		return nil, ErrNotOpen
	}
	return c.Reader.ReadExact(n)
}

// Close closes the channel and drops leftover bytes.
func (c *Conn) Close() error {
	if c.Channel == nil {
		return nil
	}
	c.Reader.Flush()
	return c.Channel.Close()
}
