package movement

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// positionComparer lets cmp look inside lattice.Position.
var positionComparer = cmp.Comparer(func(a, b lattice.Position) bool {
	return a == b
})

func makeLattice(t *testing.T, size int, cells map[lattice.Cell]int) *lattice.Lattice {
	t.Helper()
	l, err := lattice.New(size)
	require.NoError(t, err)
	for c, id := range cells {
		require.NoError(t, l.Set(c, id))
	}
	return l
}

func TestRecord_PlainMove(t *testing.T) {
	t.Parallel()

	start := makeLattice(t, 4, map[lattice.Cell]int{lattice.C(0, 0, 0): 1})
	g := NewLog(start)
	g.SetPhase(PhaseMelt)

	work := start.Clone()
	require.NoError(t, work.Move(1, lattice.C(2, 0, 0)))
	m, err := g.Record(work, 1)
	require.NoError(t, err)

	want := Movement{Module: 1, From: lattice.At(lattice.C(0, 0, 0)), To: lattice.At(lattice.C(2, 0, 0)), Phase: PhaseMelt}
	if diff := cmp.Diff(want, m, positionComparer); diff != "" {
		t.Errorf("Record() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Final().Equal(work))
	assert.True(t, g.Origin().Equal(start), "origin must not follow the working lattice")
	assert.InDelta(t, 2.0, m.Travel(), 1e-12)
}

func TestRecord_HoldingRoundTrip(t *testing.T) {
	t.Parallel()

	start := makeLattice(t, 3, map[lattice.Cell]int{
		lattice.C(0, 0, 0): 1,
		lattice.C(1, 0, 0): 2,
	})
	g := NewLog(start)
	g.SetPhase(PhaseSort)
	work := start.Clone()

	// 1 enters holding, 2 takes its cell, 1 comes back into 2's old cell.
	work.Remove(1)
	m1, err := g.Record(work, 1)
	require.NoError(t, err)
	assert.True(t, m1.EntersHolding())
	assert.Equal(t, []int{1}, g.Held())

	require.NoError(t, work.Move(2, lattice.C(0, 0, 0)))
	_, err = g.Record(work, 2)
	require.NoError(t, err)

	require.NoError(t, work.Place(1, lattice.C(1, 0, 0)))
	m3, err := g.Record(work, 1)
	require.NoError(t, err)
	assert.True(t, m3.LeavesHolding())
	assert.Equal(t, 0.0, m3.Travel())
	assert.Empty(t, g.Held())
	assert.True(t, g.Final().Equal(work))
}

func TestRecord_HoldToHoldIsInvariantViolation(t *testing.T) {
	t.Parallel()

	start := makeLattice(t, 3, map[lattice.Cell]int{lattice.C(0, 0, 0): 1})
	g := NewLog(start)
	work := start.Clone()
	work.Remove(1)
	_, err := g.Record(work, 1)
	require.NoError(t, err)

	_, err = g.Record(work, 1)
	assert.True(t, planerr.IsKind(err, planerr.KindInvariant))
	assert.Equal(t, 1, g.Len())
}

func TestAppend_Rejections(t *testing.T) {
	t.Parallel()

	start := makeLattice(t, 3, map[lattice.Cell]int{
		lattice.C(0, 0, 0): 1,
		lattice.C(1, 0, 0): 2,
	})

	tests := []struct {
		name string
		m    Movement
	}{
		{"wrong source", Movement{Module: 1, From: lattice.At(lattice.C(2, 2, 2)), To: lattice.At(lattice.C(0, 1, 0))}},
		{"occupied destination", Movement{Module: 1, From: lattice.At(lattice.C(0, 0, 0)), To: lattice.At(lattice.C(1, 0, 0))}},
		{"never held", Movement{Module: 2, From: lattice.Holding, To: lattice.At(lattice.C(2, 0, 0))}},
		{"hold to hold", Movement{Module: 1, From: lattice.Holding, To: lattice.Holding}},
		{"out of bounds", Movement{Module: 1, From: lattice.At(lattice.C(0, 0, 0)), To: lattice.At(lattice.C(3, 0, 0))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewLog(start)
			err := g.Append(tt.m)
			assert.True(t, planerr.IsKind(err, planerr.KindInvariant), "got %v", err)
			assert.Equal(t, 0, g.Len())
			assert.True(t, g.Final().Equal(start), "failed append must not touch the shadow state")
		})
	}
}

func TestFlip(t *testing.T) {
	t.Parallel()

	start := makeLattice(t, 3, map[lattice.Cell]int{lattice.C(0, 0, 0): 1, lattice.C(2, 2, 2): 2})
	g, err := FromMovements(start, []Movement{
		{Module: 1, From: lattice.At(lattice.C(0, 0, 0)), To: lattice.At(lattice.C(1, 0, 0)), Phase: PhaseMelt},
		{Module: 2, From: lattice.At(lattice.C(2, 2, 2)), To: lattice.Holding, Phase: PhaseMelt},
		{Module: 2, From: lattice.Holding, To: lattice.At(lattice.C(2, 0, 0)), Phase: PhaseMelt},
	})
	require.NoError(t, err)
	end := g.Final()

	g.Flip()
	require.Equal(t, 3, g.Len())
	assert.True(t, g.Origin().Equal(end))
	assert.True(t, g.Final().Equal(start))

	first := g.At(0)
	assert.Equal(t, 2, first.Module)
	assert.True(t, first.EntersHolding(), "hold exit becomes hold entry")
	assert.True(t, g.At(1).LeavesHolding())
	assert.Equal(t, lattice.At(lattice.C(1, 0, 0)), g.At(2).From)

	// Replaying the flipped log from its new origin must land on the old one.
	replayed, err := FromMovements(g.Origin(), g.Movements())
	require.NoError(t, err)
	assert.True(t, replayed.Final().Equal(start))
}

func TestCombine(t *testing.T) {
	t.Parallel()

	a := makeLattice(t, 3, map[lattice.Cell]int{lattice.C(0, 0, 0): 1})
	first, err := FromMovements(a, []Movement{
		{Module: 1, From: lattice.At(lattice.C(0, 0, 0)), To: lattice.At(lattice.C(1, 1, 1)), Phase: PhaseAlign},
	})
	require.NoError(t, err)

	second, err := FromMovements(first.Final(), []Movement{
		{Module: 1, From: lattice.At(lattice.C(1, 1, 1)), To: lattice.At(lattice.C(2, 2, 2))},
	})
	require.NoError(t, err)
	second.Relabel(PhaseGrow)

	require.NoError(t, first.Combine(second))
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, map[Phase]int{PhaseAlign: 1, PhaseGrow: 1}, first.Counts())
	assert.Equal(t, 1, first.Final().At(lattice.C(2, 2, 2)))

	// A continuation from some other state is rejected.
	stray := NewLog(a)
	err = first.Combine(stray)
	assert.True(t, planerr.IsKind(err, planerr.KindInvariant))
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	a := makeLattice(t, 3, map[lattice.Cell]int{lattice.C(0, 0, 0): 1})
	g := NewLog(a)
	c := g.Clone()
	require.NoError(t, c.Append(Movement{Module: 1, From: lattice.At(lattice.C(0, 0, 0)), To: lattice.At(lattice.C(0, 0, 1))}))
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, g.Final().At(lattice.C(0, 0, 0)))
}

func TestParsePhase(t *testing.T) {
	t.Parallel()

	for _, p := range append(Phases[:], PhaseUnknown) {
		got, err := ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePhase("wobble")
	assert.Error(t, err)
}
