// Package query turns sensor requests into Open Interface commands and
// decodes the responses.
package query

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/create2/pkg/oi"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

// Transport is the half-duplex link a Planner talks over.
// comm.Conn implements it.
type Transport interface {
	Write(p []byte) error
	ReadExact(n int) ([]byte, error)
}

// maxListLen is the most packets a single QUERY_LIST can carry.
const maxListLen = 255

// Planner answers sensor queries. Like the Transport, it must not be used
// by more than one goroutine at a time.
type Planner struct {
	tr       Transport
	registry *sensors.Registry
}

// New creates a Planner. A nil registry means sensors.Default.
func New(tr Transport, registry *sensors.Registry) *Planner {
	if registry == nil {
		registry = sensors.Default
	}
	return &Planner{tr: tr, registry: registry}
}

// Registry returns the registry used for lookups.
func (p *Planner) Registry() *sensors.Registry {
	return p.registry
}

// QueryNames reads the named packets with a single QUERY_LIST command.
// Readings are in request order.
func (p *Planner) QueryNames(names ...string) (sensors.Readings, error) {
	descs := make([]sensors.Descriptor, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		d, ok := p.registry.ByName(name)
		if !ok {
			return nil, &sensors.UnknownSensorError{Name: name}
		}
		if seen[name] {
			return nil, &sensors.UnknownSensorError{Name: name, Duplicate: true}
		}
		seen[name] = true
		descs = append(descs, d)
	}
	return p.queryList(descs)
}

// QueryIDs is like QueryNames but takes packet ids.
func (p *Planner) QueryIDs(ids ...sensors.PacketID) (sensors.Readings, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		d, ok := p.registry.ByID(id)
		if !ok {
			return nil, &sensors.UnknownSensorError{Name: fmt.Sprintf("packet %d", id)}
		}
		names = append(names, d.Name)
	}
	return p.QueryNames(names...)
}

// QueryBlock reads a whole query block with a single SENSORS command.
// Readings are in ascending packet id order.
func (p *Planner) QueryBlock(block sensors.BlockID) (sensors.Readings, error) {
	members, ok := p.registry.Group(block)
	if !ok {
		return nil, &sensors.UnknownGroupError{Block: block}
	}
	size, _ := p.registry.BlockSize(block)
	cmd, err := oi.NewCommand(oi.Sensors, byte(block))
	if err != nil {
		return nil, err
	}
	data, err := p.roundTrip(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("query block %d: %w", block, err)
	}
	return sensors.Decode(members, data)
}

func (p *Planner) queryList(descs []sensors.Descriptor) (sensors.Readings, error) {
	if len(descs) == 0 {
		return sensors.Readings{}, nil
	}
	if len(descs) > maxListLen {
		return nil, fmt.Errorf("query %d packets: at most %d allowed", len(descs), maxListLen)
	}
	params := make([]byte, 0, len(descs)+1)
	params = append(params, byte(len(descs)))
	size := 0
	for _, d := range descs {
		params = append(params, byte(d.ID))
		size += d.Width
	}
	cmd, err := oi.NewCommand(oi.QueryList, params...)
	if err != nil {
		return nil, err
	}
	data, err := p.roundTrip(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("query %d packets: %w", len(descs), err)
	}
	return sensors.Decode(descs, data)
}

func (p *Planner) roundTrip(cmd oi.Command, size int) ([]byte, error) {
	glog.V(3).Infof("query %s, expect %d bytes", cmd, size)
	if err := p.tr.Write(cmd.Bytes()); err != nil {
		return nil, err
	}
	return p.tr.ReadExact(size)
}
