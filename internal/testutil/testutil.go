// Package testutil provides shared lattice fixtures for planner tests.
package testutil

import (
	"testing"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewLattice builds a size^3 lattice with the given modules placed.
func NewLattice(t testing.TB, size int, cells map[lattice.Cell]int) *lattice.Lattice {
	t.Helper()
	l, err := lattice.New(size)
	AssertNoError(t, err)
	for c, id := range cells {
		AssertNoError(t, l.Set(c, id))
	}
	return l
}

// Row lays ids along axis starting at origin. A zero id leaves a gap.
func Row(t testing.TB, size int, axis lattice.Axis, origin lattice.Cell, ids ...int) *lattice.Lattice {
	t.Helper()
	cells := make(map[lattice.Cell]int, len(ids))
	for i, id := range ids {
		if id == 0 {
			continue
		}
		cells[origin.With(axis, origin.Coord(axis)+i)] = id
	}
	return NewLattice(t, size, cells)
}

// Scatter places ids 1..n on cells drawn from a deterministic sequence
// seeded by seed. Every call with the same arguments returns the same
// lattice.
func Scatter(t testing.TB, size, n int, seed uint64) *lattice.Lattice {
	t.Helper()
	if n > size*size*size {
		t.Fatalf("cannot scatter %d modules in a %d^3 lattice", n, size)
	}
	l, err := lattice.New(size)
	AssertNoError(t, err)
	state := seed | 1
	next := func() int {
		// xorshift64
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return int(state % uint64(size))
	}
	for id := 1; id <= n; {
		c := lattice.C(next(), next(), next())
		if l.At(c) != 0 {
			continue
		}
		AssertNoError(t, l.Set(c, id))
		id++
	}
	return l
}
