package sensors

import "github.com/golang/glog"

// Pack encodes v for the packet, saturating it into the packet's range.
func Pack(d Descriptor, v int) []byte {
	clamped := d.Range.Clamp(v)
	if clamped != v {
		glog.V(2).Infof("%s: clamp %d to %d", d, v, clamped)
	}
	enc := d.Encoding()
	b := make([]byte, enc.Width())
	enc.put(b, clamped)
	return b
}

// Unpack decodes a value of the packet. A value outside the packet's range
// is still returned as the hardware reported it, and logged.
func Unpack(d Descriptor, b []byte) (int, error) {
	enc := d.Encoding()
	if len(b) != enc.Width() {
		return 0, &CodecError{Sensor: d.Name, Want: enc.Width(), Got: len(b)}
	}
	v := enc.get(b)
	if !d.InRange(v) {
		glog.Warningf("%s: value %d out of range %s", d, v, d.Range)
	}
	return v, nil
}
