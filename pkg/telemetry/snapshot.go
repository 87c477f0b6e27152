// Package telemetry publishes sensor snapshots over MQTT and accepts
// remote commands.
package telemetry

import (
	"bytes"
	"fmt"
	"time"

	"github.com/golang/protobuf/jsonpb"
	"github.com/golang/protobuf/proto"
	structpb "github.com/golang/protobuf/ptypes/struct"

	"github.com/robotalks/create2/pkg/oi/sensors"
)

// Format is the payload encoding.
type Format string

// Formats.
const (
	FormatJSON  Format = "json"
	FormatProto Format = "proto"
)

// Snapshot is one sample of a query block.
type Snapshot struct {
	ID       string
	Session  string
	Seq      uint64
	Time     time.Time
	Block    sensors.BlockID
	Readings sensors.Readings
}

// Struct converts the snapshot to a protobuf Struct.
func (s *Snapshot) Struct() *structpb.Struct {
	values := make(map[string]*structpb.Value, len(s.Readings))
	for _, r := range s.Readings {
		values[r.Sensor.Name] = numberValue(float64(r.Value))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":      stringValue(s.ID),
		"session": stringValue(s.Session),
		"seq":     numberValue(float64(s.Seq)),
		"time":    stringValue(s.Time.UTC().Format(time.RFC3339Nano)),
		"block":   numberValue(float64(s.Block)),
		"sensors": {Kind: &structpb.Value_StructValue{StructValue: &structpb.Struct{Fields: values}}},
	}}
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode(format Format) ([]byte, error) {
	msg := s.Struct()
	switch format {
	case FormatProto:
		return proto.Marshal(msg)
	case FormatJSON, "":
		var buf bytes.Buffer
		if err := (&jsonpb.Marshaler{}).Marshal(&buf, msg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// DecodeStruct parses a payload produced by Encode.
func DecodeStruct(format Format, payload []byte) (*structpb.Struct, error) {
	msg := &structpb.Struct{}
	var err error
	switch format {
	case FormatProto:
		err = proto.Unmarshal(payload, msg)
	case FormatJSON, "":
		err = jsonpb.Unmarshal(bytes.NewReader(payload), msg)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func stringValue(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}

func numberValue(v float64) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: v}}
}
