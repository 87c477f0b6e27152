package sensors

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/create2/pkg/framework"
)

func ids(descs []Descriptor) []PacketID {
	out := make([]PacketID, len(descs))
	for n, d := range descs {
		out[n] = d.ID
	}
	return out
}

func idRange(from, to PacketID) []PacketID {
	var out []PacketID
	for id := from; id <= to; id++ {
		out = append(out, id)
	}
	return out
}

func TestDefaultRegistry(t *testing.T) {
	all := Default.All()
	require.Len(t, all, 52)
	require.Equal(t, idRange(7, 58), ids(all))

	d, ok := Default.ByName(ChargerAvailable)
	require.True(t, ok)
	require.Equal(t, PacketID(34), d.ID)
	require.Equal(t, 1, d.Width)
	require.Equal(t, []BlockID{4, 6, 100}, d.Groups())

	byID, ok := Default.ByID(34)
	require.True(t, ok)
	require.Equal(t, d.Name, byID.Name)

	_, ok = Default.ByName("Charger")
	require.False(t, ok)
	_, ok = Default.ByID(59)
	require.False(t, ok)
}

func TestDefaultBlocks(t *testing.T) {
	testCases := []struct {
		block BlockID
		size  int
		ids   []PacketID
	}{
		{BlockBasic, 26, idRange(7, 26)},
		{BlockBumps, 10, idRange(7, 16)},
		{BlockMotion, 6, idRange(17, 20)},
		{BlockBattery, 10, idRange(21, 26)},
		{BlockSignals, 14, idRange(27, 34)},
		{BlockStatus, 12, idRange(35, 42)},
		{BlockLegacy, 52, idRange(7, 42)},
		{BlockAll, 80, idRange(7, 58)},
		{BlockExtended, 28, idRange(43, 58)},
		{BlockLightBumps, 12, idRange(46, 51)},
		{BlockMotorStatus, 9, idRange(54, 58)},
	}
	blocks := make([]BlockID, len(testCases))
	for n, tc := range testCases {
		blocks[n] = tc.block
		size, ok := Default.BlockSize(tc.block)
		require.True(t, ok)
		require.Equal(t, tc.size, size, "block %d", tc.block)
		members, ok := Default.Group(tc.block)
		require.True(t, ok)
		if diff := cmp.Diff(tc.ids, ids(members)); diff != "" {
			t.Errorf("block %d members (-want +got):\n%s", tc.block, diff)
		}
		for _, d := range members {
			require.True(t, d.InGroup(tc.block))
		}
	}
	require.Equal(t, blocks, Default.Blocks())

	_, ok := Default.Group(7)
	require.False(t, ok)
	_, ok = Default.BlockSize(7)
	require.False(t, ok)
}

func TestGroupOrderIndependentOfRegistration(t *testing.T) {
	r, err := NewBuilder().
		Add(30, 1, Range{0, 1}, "c", 1).
		Add(10, 2, Range{-5, 5}, "a", 1, 2).
		Add(20, 1, Range{0, 3}, "b", 1).
		Block(1, 4).
		Block(2, 2).
		Build()
	require.NoError(t, err)
	members, ok := r.Group(1)
	require.True(t, ok)
	require.Equal(t, []PacketID{10, 20, 30}, ids(members))

	// callers can't change the registry through returned slices
	members[0] = Descriptor{}
	again, _ := r.Group(1)
	require.Equal(t, PacketID(10), again[0].ID)
}

func TestBuilderValidation(t *testing.T) {
	testCases := []struct {
		name    string
		builder *Builder
		errs    int
	}{
		{"duplicated id", NewBuilder().
			Add(1, 1, Range{0, 1}, "a", 1).
			Add(1, 1, Range{0, 1}, "b", 1).
			Block(1, 1), 1},
		{"duplicated name", NewBuilder().
			Add(1, 1, Range{0, 1}, "a", 1).
			Add(2, 1, Range{0, 1}, "a", 1).
			Block(1, 1), 1},
		{"bad width", NewBuilder().
			Add(1, 3, Range{0, 1}, "a", 1).
			Block(1, 3), 1},
		{"range too wide", NewBuilder().
			Add(1, 1, Range{0, 256}, "a", 1).
			Add(2, 1, Range{-129, 0}, "b", 1).
			Block(1, 2), 2},
		{"inverted range", NewBuilder().
			Add(1, 1, Range{5, 1}, "a", 1).
			Block(1, 1), 1},
		{"empty name", NewBuilder().
			Add(1, 1, Range{0, 1}, "", 1).
			Block(1, 1), 1},
		{"wrong block size", NewBuilder().
			Add(1, 2, Range{0, 1}, "a", 1).
			Block(1, 1), 1},
		{"undeclared block", NewBuilder().
			Add(1, 1, Range{0, 1}, "a", 1), 1},
		{"empty block", NewBuilder().
			Add(1, 1, Range{0, 1}, "a", 1).
			Block(1, 1).
			Block(2, 0), 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := tc.builder.Build()
			require.Nil(t, r)
			require.Error(t, err)
			var agg *framework.AggregatedError
			require.ErrorAs(t, err, &agg)
			require.Len(t, agg.Errors, tc.errs, err.Error())
		})
	}
}
