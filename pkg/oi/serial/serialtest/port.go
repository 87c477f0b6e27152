// Package serialtest provides a scripted serial.Port for tests.
package serialtest

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

// ErrPortClosed is returned by Port operations after Close.
var ErrPortClosed = errors.New("serial port closed")

// Chunk is a piece of input delivered by the port once Delay has passed
// since it reached the head of the queue.
type Chunk struct {
	Delay time.Duration
	Data  []byte
}

// Bytewise splits data into one-byte chunks separated by delay.
func Bytewise(data []byte, delay time.Duration) []Chunk {
	chunks := make([]Chunk, len(data))
	for n, b := range data {
		chunks[n] = Chunk{Delay: delay, Data: []byte{b}}
	}
	return chunks
}

// Port implements serial.Port with scripted, timed input.
type Port struct {
	// Respond, if set, is called with every written buffer and the returned
	// chunks are queued as input.
	Respond func(written []byte) []Chunk

	// WriteError is returned by the next Write if set.
	WriteError error

	mu          sync.Mutex
	queue       []Chunk
	headSince   time.Time
	available   []byte
	written     bytes.Buffer
	readTimeout time.Duration
	closed      bool
	wakeCh      chan struct{}

	ReadCalls   int
	ResetCalls  int
	DrainCalls  int
	TimeoutSets int
}

// NewPort creates a Port that will deliver chunks in order.
func NewPort(chunks ...Chunk) *Port {
	p := &Port{wakeCh: make(chan struct{}, 1)}
	p.Feed(chunks...)
	return p
}

// Feed queues more input.
func (p *Port) Feed(chunks ...Chunk) {
	p.mu.Lock()
	p.feedLocked(chunks)
	p.mu.Unlock()
	p.wake()
}

func (p *Port) feedLocked(chunks []Chunk) {
	if len(chunks) == 0 {
		return
	}
	if len(p.queue) == 0 {
		p.headSince = time.Now()
	}
	p.queue = append(p.queue, chunks...)
}

func (p *Port) wake() {
	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
}

// promoteLocked moves due chunks into the available buffer and returns
// how long until the next chunk is due, or -1 if the queue is empty.
func (p *Port) promoteLocked() time.Duration {
	for len(p.queue) > 0 {
		now := time.Now()
		due := p.headSince.Add(p.queue[0].Delay)
		if now.Before(due) {
			return due.Sub(now)
		}
		p.available = append(p.available, p.queue[0].Data...)
		p.queue = p.queue[1:]
		p.headSince = now
	}
	return -1
}

// Read implements io.Reader. It waits up to the read timeout for input,
// returning 0 bytes and no error on timeout.
func (p *Port) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ReadCalls++
	deadline := time.Now().Add(p.readTimeout)
	for {
		if p.closed {
			return 0, ErrPortClosed
		}
		next := p.promoteLocked()
		if len(p.available) > 0 {
			n := copy(b, p.available)
			p.available = p.available[n:]
			return n, nil
		}
		remaining := time.Until(deadline)
		if p.readTimeout < 0 {
			remaining = time.Hour
		}
		if remaining <= 0 {
			return 0, nil
		}
		if next >= 0 && next < remaining {
			remaining = next
		}
		p.mu.Unlock()
		select {
		case <-time.After(remaining):
		case <-p.wakeCh:
		}
		p.mu.Lock()
	}
}

// Write implements io.Writer and records the bytes.
func (p *Port) Write(b []byte) (int, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, ErrPortClosed
	}
	if err := p.WriteError; err != nil {
		p.WriteError = nil
		p.mu.Unlock()
		return 0, err
	}
	p.written.Write(b)
	if p.Respond != nil {
		p.feedLocked(p.Respond(append([]byte(nil), b...)))
	}
	p.mu.Unlock()
	p.wake()
	return len(b), nil
}

// Written returns everything written so far.
func (p *Port) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

// SetReadTimeout implements serial.Port.
func (p *Port) SetReadTimeout(timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readTimeout = timeout
	p.TimeoutSets++
	return nil
}

// ResetInputBuffer drops delivered but unread input.
func (p *Port) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.promoteLocked()
	p.available = nil
	p.ResetCalls++
	return nil
}

// Drain implements serial.Port.
func (p *Port) Drain() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.DrainCalls++
	return nil
}

// Close marks the port closed and wakes a blocked reader.
func (p *Port) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wake()
	return nil
}

// Closed reports whether Close was called.
func (p *Port) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
