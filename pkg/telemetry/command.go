package telemetry

import (
	"fmt"

	structpb "github.com/golang/protobuf/ptypes/struct"

	"github.com/robotalks/create2/pkg/oi"
)

// ParseCommand decodes a remote command. The payload is an object with
// "op", an opcode name like "DRIVE_DIRECT" or its number, and optional
// "params", a list of byte values.
func ParseCommand(format Format, payload []byte) (oi.Command, error) {
	msg, err := DecodeStruct(format, payload)
	if err != nil {
		return oi.Command{}, fmt.Errorf("decode command: %w", err)
	}
	op, err := opcodeOf(msg.Fields["op"])
	if err != nil {
		return oi.Command{}, err
	}
	var params []byte
	if v := msg.Fields["params"]; v != nil {
		list := v.GetListValue()
		if list == nil {
			return oi.Command{}, fmt.Errorf("params must be a list")
		}
		for _, item := range list.Values {
			b, err := byteOf(item)
			if err != nil {
				return oi.Command{}, fmt.Errorf("params: %w", err)
			}
			params = append(params, b)
		}
	}
	return oi.NewCommand(op, params...)
}

func opcodeOf(v *structpb.Value) (oi.Opcode, error) {
	if v == nil {
		return 0, fmt.Errorf("missing op")
	}
	if name, ok := v.Kind.(*structpb.Value_StringValue); ok {
		op, found := oi.ParseOpcode(name.StringValue)
		if !found {
			return 0, fmt.Errorf("unknown op %q", name.StringValue)
		}
		return op, nil
	}
	b, err := byteOf(v)
	if err != nil {
		return 0, fmt.Errorf("op: %w", err)
	}
	return oi.Opcode(b), nil
}

func byteOf(v *structpb.Value) (byte, error) {
	num, ok := v.Kind.(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("expect a number")
	}
	n := num.NumberValue
	if n != float64(int(n)) || n < 0 || n > 255 {
		return 0, fmt.Errorf("%v is not a byte", n)
	}
	return byte(n), nil
}
