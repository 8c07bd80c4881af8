package msg

import (
	"math"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Melt gathers every module of in onto line and closes any gaps between
// them. Modules are pulled in farthest first, each to the nearest of the
// slot before the line, the slot after it and the gaps inside it.
func Melt(in State, line lattice.Line, budget int) (State, error) {
	const op = "msg.Melt"
	s := in.clone(movement.PhaseMelt)
	total, size := s.Shape.Count(), s.Shape.Size()
	if total > size {
		return State{}, planerr.New(op, planerr.KindCapacity, "%d modules do not fit on a line of %d cells", total, size)
	}

	g := newGuard(op, budget, s)
	for s.Shape.LineCount(line) < total {
		if err := g.tick(); err != nil {
			return State{}, err
		}
		id, to, ok := farthestOffLine(s.Shape, line)
		if !ok {
			return State{}, planerr.New(op, planerr.KindInvariant, "no free slot on %s", line)
		}
		if err := s.move(id, to); err != nil {
			return State{}, err
		}
	}

	for {
		ids := s.Shape.Line(line)
		gap, from, ok := nextCompaction(ids)
		if !ok {
			break
		}
		if err := g.tick(); err != nil {
			return State{}, err
		}
		if err := s.move(ids[from], line.At(gap)); err != nil {
			return State{}, err
		}
	}

	Diagf("melted %d modules onto %s in %d moves", total, line, s.Log.Len()-in.Log.Len())
	return s, nil
}

// farthestOffLine picks the off-line module whose nearest free slot is
// farthest away. Ties keep the module found first in scan order.
func farthestOffLine(l *lattice.Lattice, line lattice.Line) (id int, to lattice.Cell, ok bool) {
	ids := l.Line(line)
	slots := meltSlots(ids, l.Size())

	best := -1.0
	l.Each(func(c lattice.Cell, m int) {
		if line.Contains(c) {
			return
		}
		target, d, found := nearestSlot(c, line, slots)
		if found && d > best {
			best, id, to, ok = d, m, target, true
		}
	})
	return id, to, ok
}

type meltSlotSet struct {
	size       int
	empty      bool // line has no modules yet; every cell is a candidate
	start, end int  // -1 when out of bounds
	gaps       []int
}

func meltSlots(ids []int, size int) meltSlotSet {
	first, last, ok := span(ids)
	if !ok {
		return meltSlotSet{size: size, empty: true, start: -1, end: -1}
	}
	set := meltSlotSet{size: size, start: first - 1, end: last + 1, gaps: gaps(ids)}
	if set.end >= size {
		set.end = -1
	}
	return set
}

// nearestSlot resolves the target for a module at c. Between the two
// ends the start wins only when strictly nearer; a gap replaces either end
// only when strictly nearer.
func nearestSlot(c lattice.Cell, line lattice.Line, set meltSlotSet) (lattice.Cell, float64, bool) {
	var target lattice.Cell
	d := math.Inf(1)
	found := false
	consider := func(i int) {
		cell := line.At(i)
		if dist := lattice.Distance(c, cell); dist < d {
			target, d, found = cell, dist, true
		}
	}

	if set.empty {
		for i := 0; i < set.size; i++ {
			consider(i)
		}
		return target, d, found
	}

	switch {
	case set.start >= 0 && set.end >= 0:
		ds := lattice.Distance(c, line.At(set.start))
		de := lattice.Distance(c, line.At(set.end))
		if de > ds {
			target, d = line.At(set.start), ds
		} else {
			target, d = line.At(set.end), de
		}
		found = true
	case set.start >= 0:
		consider(set.start)
	case set.end >= 0:
		consider(set.end)
	}
	for _, i := range set.gaps {
		consider(i)
	}
	return target, d, found
}

// nextCompaction finds the first gap inside the occupied span and the end
// module that should fill it: the start module when the gap sits in the
// first half of the span, otherwise the end module.
func nextCompaction(ids []int) (gap, from int, ok bool) {
	first, last, occupied := span(ids)
	if !occupied {
		return 0, 0, false
	}
	for i := first + 1; i < last; i++ {
		if ids[i] != 0 {
			continue
		}
		if i-first < last-i {
			return i, first, true
		}
		return i, last, true
	}
	return 0, 0, false
}
