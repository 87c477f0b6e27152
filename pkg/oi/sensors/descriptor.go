// Package sensors defines the Open Interface sensor packets: their wire
// encoding, valid ranges and the query blocks they belong to.
package sensors

import (
	"encoding/binary"
	"fmt"
)

// PacketID is the wire identifier of a single sensor packet.
type PacketID uint8

// BlockID identifies a query block: a bundle of packets returned by a
// single SENSORS command.
type BlockID uint8

// Range is an inclusive value range.
type Range struct {
	Min int
	Max int
}

// Clamp saturates v into the range.
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v is within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Signed reports whether values in the range need a signed encoding.
func (r Range) Signed() bool {
	return r.Min < 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// Encoding is the wire representation of a packet value.
type Encoding int

// Encodings, 2-byte forms are big-endian.
const (
	Uint8 Encoding = iota
	Uint16
	Int8
	Int16
)

// EncodingOf selects the encoding for signedness and width.
func EncodingOf(signed, word bool) Encoding {
	switch {
	case signed && word:
		return Int16
	case signed:
		return Int8
	case word:
		return Uint16
	default:
		return Uint8
	}
}

// Width returns the number of bytes on the wire.
func (e Encoding) Width() int {
	switch e {
	case Uint16, Int16:
		return 2
	default:
		return 1
	}
}

// Limits returns the representable range.
func (e Encoding) Limits() Range {
	switch e {
	case Uint16:
		return Range{0, 0xffff}
	case Int8:
		return Range{-0x80, 0x7f}
	case Int16:
		return Range{-0x8000, 0x7fff}
	default:
		return Range{0, 0xff}
	}
}

func (e Encoding) put(b []byte, v int) {
	switch e {
	case Uint8:
		b[0] = uint8(v)
	case Uint16:
		binary.BigEndian.PutUint16(b, uint16(v))
	case Int8:
		b[0] = uint8(int8(v))
	case Int16:
		binary.BigEndian.PutUint16(b, uint16(int16(v)))
	}
}

func (e Encoding) get(b []byte) int {
	switch e {
	case Uint16:
		return int(binary.BigEndian.Uint16(b))
	case Int8:
		return int(int8(b[0]))
	case Int16:
		return int(int16(binary.BigEndian.Uint16(b)))
	default:
		return int(b[0])
	}
}

func (e Encoding) String() string {
	switch e {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Descriptor describes one sensor packet. Descriptors are values and are
// created by a Builder.
type Descriptor struct {
	ID    PacketID
	Width int
	Range Range
	Name  string

	groups []BlockID
}

// Encoding returns the wire encoding of the packet.
func (d Descriptor) Encoding() Encoding {
	return EncodingOf(d.Range.Signed(), d.Width == 2)
}

// InRange reports whether v is a valid value for the packet.
func (d Descriptor) InRange(v int) bool {
	return d.Range.Contains(v)
}

// Groups returns the blocks containing this packet.
func (d Descriptor) Groups() []BlockID {
	return append([]BlockID(nil), d.groups...)
}

// InGroup reports whether block contains this packet.
func (d Descriptor) InGroup(block BlockID) bool {
	for _, g := range d.groups {
		if g == block {
			return true
		}
	}
	return false
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s(%d)", d.Name, d.ID)
}
