package sensors

import (
	"fmt"
	"sort"

	"github.com/robotalks/create2/pkg/framework"
)

// Registry is an immutable set of packet descriptors and query blocks.
// It's safe for concurrent use.
type Registry struct {
	byID   map[PacketID]Descriptor
	byName map[string]Descriptor
	groups map[BlockID][]Descriptor
	sizes  map[BlockID]int
}

// Builder collects descriptors and block sizes for a Registry.
type Builder struct {
	descs []Descriptor
	sizes map[BlockID]int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{sizes: make(map[BlockID]int)}
}

// Add adds a packet.
func (b *Builder) Add(id PacketID, width int, r Range, name string, groups ...BlockID) *Builder {
	b.descs = append(b.descs, Descriptor{
		ID:     id,
		Width:  width,
		Range:  r,
		Name:   name,
		groups: append([]BlockID(nil), groups...),
	})
	return b
}

// Block declares the response size of a query block.
func (b *Builder) Block(id BlockID, size int) *Builder {
	b.sizes[id] = size
	return b
}

// Build validates the collected definitions and creates the Registry.
// All problems found are reported together.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		byID:   make(map[PacketID]Descriptor),
		byName: make(map[string]Descriptor),
		groups: make(map[BlockID][]Descriptor),
		sizes:  make(map[BlockID]int),
	}
	errs := &framework.AggregatedError{}
	for _, d := range b.descs {
		errs.Add(validate(d))
		if prev, exists := r.byID[d.ID]; exists {
			errs.Add(fmt.Errorf("packet %d: used by %q and %q", d.ID, prev.Name, d.Name))
			continue
		}
		if _, exists := r.byName[d.Name]; exists {
			errs.Add(fmt.Errorf("packet %d: duplicated name %q", d.ID, d.Name))
			continue
		}
		r.byID[d.ID] = d
		r.byName[d.Name] = d
		for _, g := range d.groups {
			r.groups[g] = append(r.groups[g], d)
		}
	}
	for g, members := range r.groups {
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		total := 0
		for _, d := range members {
			total += d.Width
		}
		size, declared := b.sizes[g]
		switch {
		case !declared:
			errs.Add(fmt.Errorf("block %d: size not declared", g))
		case size != total:
			errs.Add(fmt.Errorf("block %d: declared %d bytes, members sum to %d", g, size, total))
		}
		r.sizes[g] = total
	}
	for g := range b.sizes {
		if _, exists := r.groups[g]; !exists {
			errs.Add(fmt.Errorf("block %d: no member packets", g))
		}
	}
	if err := errs.Aggregate(); err != nil {
		return nil, err
	}
	return r, nil
}

func validate(d Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("packet %d: empty name", d.ID)
	}
	if d.Width != 1 && d.Width != 2 {
		return fmt.Errorf("packet %s: invalid width %d", d, d.Width)
	}
	if d.Range.Min > d.Range.Max {
		return fmt.Errorf("packet %s: invalid range %s", d, d.Range)
	}
	limits := d.Encoding().Limits()
	if !limits.Contains(d.Range.Min) || !limits.Contains(d.Range.Max) {
		return fmt.Errorf("packet %s: range %s doesn't fit %s", d, d.Range, d.Encoding())
	}
	return nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// ByID looks up a packet by id.
func (r *Registry) ByID(id PacketID) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ByName looks up a packet by name.
func (r *Registry) ByName(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Group returns the packets of a block in ascending id order, which is the
// order the robot sends them in.
func (r *Registry) Group(block BlockID) ([]Descriptor, bool) {
	members, ok := r.groups[block]
	if !ok {
		return nil, false
	}
	return append([]Descriptor(nil), members...), true
}

// BlockSize returns the response size of a block in bytes.
func (r *Registry) BlockSize(block BlockID) (int, bool) {
	size, ok := r.sizes[block]
	return size, ok
}

// Blocks returns all block ids in ascending order.
func (r *Registry) Blocks() []BlockID {
	blocks := make([]BlockID, 0, len(r.sizes))
	for g := range r.sizes {
		blocks = append(blocks, g)
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i] < blocks[j] })
	return blocks
}

// All returns all packets in ascending id order.
func (r *Registry) All() []Descriptor {
	all := make([]Descriptor, 0, len(r.byID))
	for _, d := range r.byID {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
