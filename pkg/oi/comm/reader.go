package comm

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

// Source is what Reader polls. serial.Channel implements it.
type Source interface {
	// Pending returns the number of bytes ready without blocking.
	Pending() (int, error)
	// Read returns up to max available bytes.
	Read(max int) ([]byte, error)
	// Wait blocks until something is pending or the duration elapses.
	Wait(time.Duration) (int, error)
	// Discard drops everything received but not read.
	Discard() error
}

// Defaults for Reader. Together they bound a response to about 1 second.
const (
	DefaultPollInterval = 10 * time.Millisecond
	DefaultMaxAttempts  = 100
)

// maxResyncRounds bounds Resync when the robot never goes quiet.
const maxResyncRounds = 10

// Reader reads exact byte counts from a Source, removing banners and
// keeping surplus bytes for the next read.
//
// Only one ReadExact may be in flight at a time.
type Reader struct {
	// PollInterval is how long to wait for input before counting an attempt.
	PollInterval time.Duration
	// MaxAttempts is the number of empty polls tolerated by one ReadExact.
	MaxAttempts int
	// Filter is applied to every chunk read from the source.
	Filter func([]byte) []byte

	src      Source
	leftover []byte
	stale    bool
}

// NewReader creates a Reader with defaults.
func NewReader(src Source) *Reader {
	return &Reader{
		PollInterval: DefaultPollInterval,
		MaxAttempts:  DefaultMaxAttempts,
		Filter:       FilterBanners,
		src:          src,
	}
}

// Buffered returns the number of leftover bytes.
func (r *Reader) Buffered() int {
	return len(r.leftover)
}

// Stale reports whether the last ReadExact failed, so the rest of its
// response may still arrive.
func (r *Reader) Stale() bool {
	return r.stale
}

// Resync drops input left over by a failed read. It discards until the
// source stays silent for a whole read budget (PollInterval * MaxAttempts),
// which is as long as ReadExact would have waited for the lost response.
// It does nothing unless the Reader is stale.
func (r *Reader) Resync() error {
	if !r.stale {
		return nil
	}
	r.leftover = nil
	quiet := r.PollInterval * time.Duration(r.MaxAttempts)
	for round := 0; round < maxResyncRounds; round++ {
		if err := r.src.Discard(); err != nil {
			return fmt.Errorf("resync: %w", err)
		}
		pending, err := r.src.Wait(quiet)
		if err != nil {
			return fmt.Errorf("resync: %w", err)
		}
		if pending == 0 {
			r.stale = false
			return nil
		}
		glog.Warningf("resync: dropping %d late bytes", pending)
	}
	return fmt.Errorf("resync: input didn't stop after %d rounds", maxResyncRounds)
}

// Flush drops leftover bytes.
func (r *Reader) Flush() {
	if n := len(r.leftover); n > 0 {
		glog.V(2).Infof("flush %d leftover bytes", n)
	}
	r.leftover = nil
}

// ReadExact returns exactly n bytes, or a *ReadTimeoutError when the source
// stays silent for more than MaxAttempts polls. Bytes received by a failed
// read are dropped and the Reader becomes stale until Resync.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("read %d bytes: negative count", n)
	}
	out := make([]byte, 0, n)
	take := n
	if take > len(r.leftover) {
		take = len(r.leftover)
	}
	out, r.leftover = append(out, r.leftover[:take]...), r.leftover[take:]

	attempts := 0
	for len(out) < n {
		pending, err := r.src.Pending()
		if err != nil {
			return nil, r.abort(err)
		}
		if pending == 0 {
			attempts++
			if attempts > r.MaxAttempts {
				glog.Warningf("read timeout: got %d of %d bytes", len(out), n)
				r.leftover, r.stale = nil, true
				return nil, &ReadTimeoutError{Want: n, Got: len(out), Attempts: attempts - 1}
			}
			if _, err = r.src.Wait(r.PollInterval); err != nil {
				return nil, r.abort(err)
			}
			continue
		}
		chunk, err := r.src.Read(pending)
		if err != nil {
			return nil, r.abort(err)
		}
		if r.Filter != nil {
			chunk = r.Filter(chunk)
		}
		need := n - len(out)
		if len(chunk) > need {
			r.leftover = append(r.leftover, chunk[need:]...)
			chunk = chunk[:need]
		}
		out = append(out, chunk...)
	}
	if attempts > 0 {
		glog.V(3).Infof("read %d bytes after %d empty polls", n, attempts)
	}
	return out, nil
}

func (r *Reader) abort(err error) error {
	r.leftover, r.stale = nil, true
	return fmt.Errorf("read: %w", err)
}
