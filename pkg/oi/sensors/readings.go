package sensors

import (
	"fmt"
	"strings"
)

// Reading is a decoded packet value.
type Reading struct {
	Sensor Descriptor
	Value  int
}

// Readings are decoded values in wire order.
type Readings []Reading

// Decode splits data into consecutive packets of descs and decodes them.
// The length of data must be the sum of the packet widths.
func Decode(descs []Descriptor, data []byte) (Readings, error) {
	total := 0
	for _, d := range descs {
		total += d.Width
	}
	if len(data) != total {
		return nil, &CodecError{Sensor: describe(descs), Want: total, Got: len(data)}
	}
	out := make(Readings, 0, len(descs))
	for _, d := range descs {
		v, err := Unpack(d, data[:d.Width])
		if err != nil {
			return nil, err
		}
		out = append(out, Reading{Sensor: d, Value: v})
		data = data[d.Width:]
	}
	return out, nil
}

func describe(descs []Descriptor) string {
	if len(descs) == 1 {
		return descs[0].Name
	}
	return fmt.Sprintf("%d packets", len(descs))
}

// Get returns the value of the named packet.
func (r Readings) Get(name string) (int, bool) {
	for _, reading := range r {
		if reading.Sensor.Name == name {
			return reading.Value, true
		}
	}
	return 0, false
}

// Map returns the readings keyed by name.
func (r Readings) Map() map[string]int {
	m := make(map[string]int, len(r))
	for _, reading := range r {
		m[reading.Sensor.Name] = reading.Value
	}
	return m
}

// Names returns the packet names in order.
func (r Readings) Names() []string {
	names := make([]string, len(r))
	for n, reading := range r {
		names[n] = reading.Sensor.Name
	}
	return names
}

func (r Readings) String() string {
	var sb strings.Builder
	for n, reading := range r {
		if n > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d", reading.Sensor.Name, reading.Value)
	}
	return sb.String()
}
