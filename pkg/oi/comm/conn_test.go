package comm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/create2/pkg/oi/serial"
	"github.com/robotalks/create2/pkg/oi/serial/serialtest"
)

func TestDial(t *testing.T) {
	var ports []*serialtest.Port
	opener := func(name string, baud int) (serial.Port, error) {
		port := serialtest.NewPort(serialtest.Chunk{Data: []byte("bl-start\r\n")})
		port.Respond = func(written []byte) []serialtest.Chunk {
			if len(written) == 2 && written[0] == 142 {
				return []serialtest.Chunk{{Delay: 5 * time.Millisecond, Data: []byte{0x01, 0x02}}}
			}
			return nil
		}
		ports = append(ports, port)
		return port, nil
	}

	conn, banner, err := Dial("/dev/ttyUSB0", serial.Baud115200, Options{
		Options:      serial.Options{Timeout: 20 * time.Millisecond, BannerWait: 20 * time.Millisecond},
		PollInterval: 2 * time.Millisecond,
		MaxAttempts:  25,
		Opener:       opener,
	})
	require.NoError(t, err)
	require.Equal(t, "bl-start\r\n", string(banner))
	require.Equal(t, 2*time.Millisecond, conn.Reader.PollInterval)
	require.Equal(t, 25, conn.Reader.MaxAttempts)

	require.NoError(t, conn.Write([]byte{142, 44}))
	data, err := conn.ReadExact(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, data)
	require.Equal(t, 1, ports[0].DrainCalls)

	_, err = conn.Reopen()
	require.NoError(t, err)
	require.Len(t, ports, 2)
	require.True(t, ports[0].Closed())
	require.False(t, ports[1].Closed())

	require.NoError(t, conn.Close())
	require.True(t, ports[1].Closed())
}

func TestConnDropsLeftover(t *testing.T) {
	var ports []*serialtest.Port
	opener := func(name string, baud int) (serial.Port, error) {
		port := serialtest.NewPort()
		fill := byte(10 * (len(ports) + 1))
		port.Respond = func(written []byte) []serialtest.Chunk {
			return []serialtest.Chunk{{Data: []byte{fill, fill + 1, fill + 2}}}
		}
		ports = append(ports, port)
		return port, nil
	}
	conn, _, err := Dial("/dev/ttyUSB0", serial.Baud115200, Options{
		Options:      serial.Options{Timeout: 20 * time.Millisecond},
		PollInterval: 2 * time.Millisecond,
		MaxAttempts:  25,
		Opener:       opener,
	})
	require.NoError(t, err)

	require.NoError(t, conn.Write([]byte{142, 7}))
	data, err := conn.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{10}, data)
	require.Equal(t, 2, conn.Reader.Buffered())

	_, err = conn.Reopen()
	require.NoError(t, err)
	require.Zero(t, conn.Reader.Buffered())

	require.NoError(t, conn.Write([]byte{142, 7}))
	data, err = conn.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{20}, data)
	require.Equal(t, 2, conn.Reader.Buffered())

	require.NoError(t, conn.Close())
	require.Zero(t, conn.Reader.Buffered())
}

func TestConnResyncsAfterTimeout(t *testing.T) {
	port := serialtest.NewPort()
	port.Respond = func(written []byte) []serialtest.Chunk {
		if written[0] == 142 {
			return []serialtest.Chunk{{Delay: 150 * time.Millisecond, Data: []byte{0xaa, 0xbb}}}
		}
		return []serialtest.Chunk{{Data: []byte{0x01}}}
	}
	conn := NewConn(serial.New(port, 20*time.Millisecond))
	conn.Reader.PollInterval = 5 * time.Millisecond
	conn.Reader.MaxAttempts = 20

	require.NoError(t, conn.Write([]byte{142, 8}))
	_, err := conn.ReadExact(2)
	require.True(t, errors.Is(err, ErrReadTimeout))

	require.NoError(t, conn.Write([]byte{149, 1, 8}))
	require.False(t, conn.Reader.Stale())
	data, err := conn.ReadExact(1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, data)
}

func TestDialFailure(t *testing.T) {
	opener := func(name string, baud int) (serial.Port, error) {
		return nil, errors.New("busy")
	}
	conn, _, err := Dial("/dev/ttyUSB0", serial.Baud115200, Options{Opener: opener})
	require.Nil(t, conn)
	var connErr *serial.ConnectionError
	require.True(t, errors.As(err, &connErr))
}

func TestConnNotOpen(t *testing.T) {
	conn := &Conn{}
	require.Equal(t, ErrNotOpen, conn.Write([]byte{128}))
	_, err := conn.ReadExact(1)
	require.Equal(t, ErrNotOpen, err)
	require.NoError(t, conn.Close())

	wrapped := NewConn(serial.New(serialtest.NewPort(), time.Millisecond))
	_, err = wrapped.Reopen()
	require.Equal(t, ErrNotOpen, err)
}
