package comm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/create2/pkg/oi/serial"
	"github.com/robotalks/create2/pkg/oi/serial/serialtest"
)

func newTestReader(chunks ...serialtest.Chunk) (*Reader, *serialtest.Port, *serial.Channel) {
	port := serialtest.NewPort(chunks...)
	ch := serial.New(port, 50*time.Millisecond)
	r := NewReader(ch)
	r.PollInterval = 5 * time.Millisecond
	r.MaxAttempts = 100
	return r, port, ch
}

func TestReadExact(t *testing.T) {
	payload := []byte("Hello, World!")
	testCases := []struct {
		name   string
		chunks []serialtest.Chunk
	}{
		{"all at once", []serialtest.Chunk{{Data: payload}}},
		{"byte at a time", serialtest.Bytewise(payload, time.Millisecond)},
		{"delayed", []serialtest.Chunk{{Delay: 60 * time.Millisecond, Data: payload}}},
		{"split", []serialtest.Chunk{
			{Data: payload[:3]},
			{Delay: 20 * time.Millisecond, Data: payload[3:9]},
			{Delay: 20 * time.Millisecond, Data: payload[9:]},
		}},
		{"banner first", []serialtest.Chunk{{Data: join(FlashBanner.Render(0), payload)}}},
		{"banner between chunks", []serialtest.Chunk{
			{Data: payload[:5]},
			{Delay: 5 * time.Millisecond, Data: WakeBanner.Render(42)},
			{Delay: 5 * time.Millisecond, Data: payload[5:]},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _, _ := newTestReader(tc.chunks...)
			data, err := r.ReadExact(len(payload))
			require.NoError(t, err)
			require.Equal(t, payload, data)
			require.Zero(t, r.Buffered())
		})
	}
}

func TestReadExactLeftover(t *testing.T) {
	r, port, _ := newTestReader(serialtest.Chunk{Data: []byte{1, 2, 3, 4, 5}})

	data, err := r.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, data)
	require.Equal(t, 3, r.Buffered())

	port.Feed(serialtest.Chunk{Data: []byte{6, 7}})
	data, err = r.ReadExact(4)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4, 5, 6}, data)
	require.Equal(t, 1, r.Buffered())

	data, err = r.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{7}, data)

	r.Flush()
	require.Zero(t, r.Buffered())
}

func TestReadExactZero(t *testing.T) {
	r, port, _ := newTestReader()
	data, err := r.ReadExact(0)
	require.NoError(t, err)
	require.Empty(t, data)
	require.Zero(t, port.ReadCalls)
}

func TestReadExactTimeout(t *testing.T) {
	r, _, _ := newTestReader(serialtest.Chunk{Data: []byte{1, 2}})
	r.MaxAttempts = 3

	start := time.Now()
	_, err := r.ReadExact(4)
	require.True(t, errors.Is(err, ErrReadTimeout))
	var timeoutErr *ReadTimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	require.Equal(t, &ReadTimeoutError{Want: 4, Got: 2, Attempts: 3}, timeoutErr)
	require.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	require.Zero(t, r.Buffered())
}

func TestReadExactDelayedSingleByte(t *testing.T) {
	r, _, _ := newTestReader(serialtest.Chunk{Delay: 100 * time.Millisecond, Data: []byte{1}})
	r.MaxAttempts = 50
	data, err := r.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, data)
}

func TestReadExactClosed(t *testing.T) {
	r, _, ch := newTestReader(serialtest.Chunk{Data: []byte{1, 2, 3}})
	data, err := r.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, data)

	go func() {
		time.Sleep(20 * time.Millisecond)
		ch.Close()
	}()
	_, err = r.ReadExact(5)
	require.True(t, errors.Is(err, serial.ErrClosed))
	require.Zero(t, r.Buffered())
}

func TestResyncAfterTimeout(t *testing.T) {
	r, port, _ := newTestReader(
		serialtest.Chunk{Data: []byte{1}},
		serialtest.Chunk{Delay: 150 * time.Millisecond, Data: []byte{2, 3}},
	)
	r.PollInterval = 10 * time.Millisecond
	r.MaxAttempts = 10

	_, err := r.ReadExact(4)
	require.True(t, errors.Is(err, ErrReadTimeout))
	require.True(t, r.Stale())

	require.NoError(t, r.Resync())
	require.False(t, r.Stale())
	require.NotZero(t, port.ResetCalls)

	port.Feed(serialtest.Chunk{Data: []byte{9}})
	data, err := r.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{9}, data)
}

func TestResyncNotStale(t *testing.T) {
	r, port, _ := newTestReader(serialtest.Chunk{Data: []byte{1, 2}})
	data, err := r.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, data)

	require.NoError(t, r.Resync())
	require.Zero(t, port.ResetCalls)
	require.Equal(t, 1, r.Buffered())
}
