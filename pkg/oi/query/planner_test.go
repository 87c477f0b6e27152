package query

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/create2/pkg/oi/comm"
	"github.com/robotalks/create2/pkg/oi/sensors"
	"github.com/robotalks/create2/pkg/oi/serial"
	"github.com/robotalks/create2/pkg/oi/serial/serialtest"
)

func newTestPlanner(respond func([]byte) []serialtest.Chunk) (*Planner, *serialtest.Port) {
	port := serialtest.NewPort()
	port.Respond = respond
	conn := comm.NewConn(serial.New(port, 50*time.Millisecond))
	conn.Reader.PollInterval = 5 * time.Millisecond
	conn.Reader.MaxAttempts = 60
	return New(conn, nil), port
}

// blockValues gives every packet a distinct in-range value.
func blockValues(descs []sensors.Descriptor) (map[string]int, []byte) {
	values := make(map[string]int)
	var data []byte
	for _, d := range descs {
		v := d.Range.Clamp(int(d.ID) * 3)
		if d.Range.Signed() {
			v = -v
		}
		values[d.Name] = v
		data = append(data, sensors.Pack(d, v)...)
	}
	return values, data
}

func TestQueryBlockAll(t *testing.T) {
	members, _ := sensors.Default.Group(sensors.BlockAll)
	expect, data := blockValues(members)
	require.Len(t, data, 80)

	planner, port := newTestPlanner(func(written []byte) []serialtest.Chunk {
		return []serialtest.Chunk{
			{Data: data[:30]},
			{Delay: 5 * time.Millisecond, Data: data[30:]},
		}
	})
	readings, err := planner.QueryBlock(sensors.BlockAll)
	require.NoError(t, err)
	require.Equal(t, []byte{142, 100}, port.Written())
	require.Len(t, readings, len(members))
	for n, r := range readings {
		require.Equal(t, sensors.PacketID(7+n), r.Sensor.ID)
	}
	if diff := cmp.Diff(expect, readings.Map()); diff != "" {
		t.Errorf("readings (-want +got):\n%s", diff)
	}
}

func TestQueryBlockWithBanner(t *testing.T) {
	members, _ := sensors.Default.Group(sensors.BlockBattery)
	expect, data := blockValues(members)
	planner, _ := newTestPlanner(func(written []byte) []serialtest.Chunk {
		noisy := append([]byte{}, data[:4]...)
		noisy = append(noisy, comm.FlashBanner.Render(0)...)
		noisy = append(noisy, data[4:]...)
		return []serialtest.Chunk{{Data: noisy}}
	})
	readings, err := planner.QueryBlock(sensors.BlockBattery)
	require.NoError(t, err)
	require.Equal(t, expect, readings.Map())
}

func TestQueryNames(t *testing.T) {
	planner, port := newTestPlanner(func(written []byte) []serialtest.Chunk {
		return []serialtest.Chunk{{Data: []byte{0x01, 0x02, 0x00, 0x05, 0xfd}}}
	})
	readings, err := planner.QueryNames(sensors.EncoderCountsLeft, sensors.Voltage, sensors.Temperature)
	require.NoError(t, err)
	require.Equal(t, []byte{149, 3, 43, 22, 24}, port.Written())
	require.Equal(t, []string{sensors.EncoderCountsLeft, sensors.Voltage, sensors.Temperature}, readings.Names())
	require.Equal(t, map[string]int{
		sensors.EncoderCountsLeft: 258,
		sensors.Voltage:           5,
		sensors.Temperature:       -3,
	}, readings.Map())
}

func TestQueryNamesDelayed(t *testing.T) {
	planner, _ := newTestPlanner(func(written []byte) []serialtest.Chunk {
		return []serialtest.Chunk{{Delay: 150 * time.Millisecond, Data: []byte{1}}}
	})
	readings, err := planner.QueryNames(sensors.ChargerAvailable)
	require.NoError(t, err)
	require.Equal(t, map[string]int{sensors.ChargerAvailable: 1}, readings.Map())
}

func TestQueryIDs(t *testing.T) {
	planner, port := newTestPlanner(func(written []byte) []serialtest.Chunk {
		return []serialtest.Chunk{{Data: []byte{0x02, 0xff, 0x38}}}
	})
	readings, err := planner.QueryIDs(35, 19)
	require.NoError(t, err)
	require.Equal(t, []byte{149, 2, 35, 19}, port.Written())
	require.Equal(t, map[string]int{
		sensors.OpenInterfaceMode: 2,
		sensors.Distance:          -200,
	}, readings.Map())

	_, err = planner.QueryIDs(99)
	require.True(t, errors.Is(err, sensors.ErrUnknownSensor))
}

func TestQueryErrors(t *testing.T) {
	planner, port := newTestPlanner(nil)

	_, err := planner.QueryNames(sensors.Wall, "Bogus")
	var unknown *sensors.UnknownSensorError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, &sensors.UnknownSensorError{Name: "Bogus"}, unknown)

	_, err = planner.QueryNames(sensors.Wall, sensors.Angle, sensors.Wall)
	require.True(t, errors.As(err, &unknown))
	require.True(t, unknown.Duplicate)

	_, err = planner.QueryBlock(42)
	var unknownGroup *sensors.UnknownGroupError
	require.True(t, errors.As(err, &unknownGroup))
	require.Equal(t, sensors.BlockID(42), unknownGroup.Block)

	readings, err := planner.QueryNames()
	require.NoError(t, err)
	require.Empty(t, readings)

	require.Empty(t, port.Written())
}

func TestQueryTimeout(t *testing.T) {
	planner, _ := newTestPlanner(func(written []byte) []serialtest.Chunk {
		return []serialtest.Chunk{{Data: []byte{1}}}
	})
	_, err := planner.QueryNames(sensors.Voltage)
	require.True(t, errors.Is(err, comm.ErrReadTimeout))
	var timeoutErr *comm.ReadTimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	require.Equal(t, 1, timeoutErr.Got)
}

func TestQueryAfterLateResponse(t *testing.T) {
	voltage, _ := sensors.Default.ByName(sensors.Voltage)
	planner, _ := newTestPlanner(func(written []byte) []serialtest.Chunk {
		if written[2] == byte(voltage.ID) {
			return []serialtest.Chunk{{Delay: 400 * time.Millisecond, Data: []byte{0x12, 0x34}}}
		}
		return []serialtest.Chunk{{Data: []byte{0x01}}}
	})

	_, err := planner.QueryNames(sensors.Voltage)
	require.True(t, errors.Is(err, comm.ErrReadTimeout))

	readings, err := planner.QueryNames(sensors.Wall)
	require.NoError(t, err)
	require.Equal(t, map[string]int{sensors.Wall: 1}, readings.Map())
}
