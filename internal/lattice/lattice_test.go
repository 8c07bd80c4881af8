package lattice

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

func mustNew(t *testing.T, size int) *Lattice {
	t.Helper()
	l, err := New(size)
	require.NoError(t, err)
	return l
}

func TestNew_RejectsBadSizes(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1, MaxSize + 1} {
		_, err := New(size)
		assert.True(t, planerr.IsKind(err, planerr.KindInvalidLattice), "size %d", size)
	}
}

func TestFromGrid_CopiesAndIndexes(t *testing.T) {
	t.Parallel()

	grid := [][][]int{
		{{1, 0}, {0, 0}},
		{{0, 0}, {0, 2}},
	}
	l, err := FromGrid(grid)
	require.NoError(t, err)

	assert.Equal(t, 2, l.Size())
	assert.Equal(t, 1, l.At(C(0, 0, 0)))
	assert.Equal(t, 2, l.At(C(1, 1, 1)))
	assert.Equal(t, []int{1, 2}, l.IDs())

	// The caller's grid must not alias the lattice.
	grid[0][0][0] = 9
	assert.Equal(t, 1, l.At(C(0, 0, 0)))

	if diff := cmp.Diff([][][]int{{{1, 0}, {0, 0}}, {{0, 0}, {0, 2}}}, l.Grid()); diff != "" {
		t.Errorf("Grid() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromGrid_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		grid [][][]int
	}{
		{"empty", nil},
		{"ragged layer", [][][]int{{{0, 0}, {0, 0}}, {{0, 0}}}},
		{"ragged row", [][][]int{{{0, 0}, {0}}, {{0, 0}, {0, 0}}}},
		{"duplicate id", [][][]int{{{1, 0}, {0, 0}}, {{0, 0}, {0, 1}}}},
		{"negative id", [][][]int{{{-3, 0}, {0, 0}}, {{0, 0}, {0, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromGrid(tt.grid)
			assert.True(t, planerr.IsKind(err, planerr.KindInvalidLattice), "got %v", err)
		})
	}
}

func TestMovePlaceRemove(t *testing.T) {
	t.Parallel()

	l := mustNew(t, 4)
	require.NoError(t, l.Set(C(0, 0, 0), 5))
	require.NoError(t, l.Set(C(1, 0, 0), 6))

	require.NoError(t, l.Move(5, C(3, 3, 3)))
	assert.Equal(t, 0, l.At(C(0, 0, 0)))
	c, ok := l.Find(5)
	require.True(t, ok)
	assert.Equal(t, C(3, 3, 3), c)

	assert.Error(t, l.Move(5, C(1, 0, 0)), "occupied destination")
	assert.True(t, planerr.IsKind(l.Move(42, C(2, 2, 2)), planerr.KindShapeMismatch))

	from, ok := l.Remove(6)
	require.True(t, ok)
	assert.Equal(t, C(1, 0, 0), from)
	assert.False(t, l.Contains(6))
	assert.Equal(t, 1, l.Count())

	assert.Error(t, l.Place(5, C(0, 1, 0)), "already present")
	assert.Error(t, l.Place(6, C(3, 3, 3)), "occupied")
	assert.Error(t, l.Place(6, C(4, 0, 0)), "out of bounds")
	require.NoError(t, l.Place(6, C(0, 1, 0)))
	assert.Equal(t, 6, l.At(C(0, 1, 0)))
}

func TestSetOverwriteKeepsIndex(t *testing.T) {
	t.Parallel()

	l := mustNew(t, 3)
	require.NoError(t, l.Set(C(1, 1, 1), 4))
	require.NoError(t, l.Set(C(1, 1, 1), 7))
	assert.False(t, l.Contains(4))
	assert.True(t, l.Contains(7))
	require.NoError(t, l.Set(C(1, 1, 1), 0))
	assert.Equal(t, 0, l.Count())
}

func TestEachScanOrder(t *testing.T) {
	t.Parallel()

	l := mustNew(t, 3)
	require.NoError(t, l.Set(C(2, 0, 0), 1)) // z=0 x=2
	require.NoError(t, l.Set(C(0, 2, 0), 2)) // z=0 x=0 y=2
	require.NoError(t, l.Set(C(0, 0, 1), 3)) // z=1

	var seen []int
	l.Each(func(_ Cell, id int) { seen = append(seen, id) })
	assert.Equal(t, []int{2, 1, 3}, seen)
}

func TestLineAndOccupancy(t *testing.T) {
	t.Parallel()

	l := mustNew(t, 4)
	line := Line{Axis: AxisX, A: 1, B: 2} // z=1, y=2
	require.NoError(t, l.Set(line.At(0), 1))
	require.NoError(t, l.Set(line.At(3), 2))
	require.NoError(t, l.Set(C(0, 0, 0), 3))

	assert.Equal(t, []int{1, 0, 0, 2}, l.Line(line))
	assert.Equal(t, 2, l.LineCount(line))

	occ := l.Occupancy(AxisX)
	assert.Equal(t, 2, occ[1][2])
	assert.Equal(t, 1, occ[0][0])

	occZ := l.Occupancy(AxisZ)
	assert.Equal(t, 1, occZ[0][2])
	assert.Equal(t, 1, occZ[3][2])
}

func TestLineIndexRoundTrip(t *testing.T) {
	t.Parallel()

	for _, axis := range Axes {
		line := LineThrough(axis, C(1, 2, 3))
		for i := 0; i < 5; i++ {
			c := line.At(i)
			idx, ok := line.Index(c)
			require.True(t, ok, "axis %s index %d", axis, i)
			assert.Equal(t, i, idx)
		}
		assert.True(t, line.Contains(C(1, 2, 3)))
	}
	line := Line{Axis: AxisZ, A: 1, B: 2}
	assert.False(t, line.Contains(C(2, 2, 0)))
	assert.Equal(t, "line(z=*, x=1, y=2)", line.String())
}

func TestCloneEqual(t *testing.T) {
	t.Parallel()

	a := mustNew(t, 3)
	require.NoError(t, a.Set(C(0, 1, 2), 9))
	b := a.Clone()
	assert.True(t, a.Equal(b))

	require.NoError(t, b.Move(9, C(2, 2, 2)))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 9, a.At(C(0, 1, 2)))
	assert.True(t, SameModules(a, b))

	c := mustNew(t, 4)
	assert.False(t, a.Equal(c))
}

func TestDistanceAndPosition(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Sqrt(3), Distance(C(0, 0, 0), C(1, 1, 1)), 1e-12)
	assert.Equal(t, 0.0, Distance(C(4, 5, 6), C(4, 5, 6)))

	p := At(C(1, 2, 3))
	c, ok := p.Cell()
	assert.True(t, ok)
	assert.Equal(t, C(1, 2, 3), c)
	assert.Equal(t, "(1,2,3)", p.String())

	_, ok = Holding.Cell()
	assert.False(t, ok)
	assert.True(t, Holding.IsHolding())
	assert.Equal(t, "holding", Holding.String())
}
