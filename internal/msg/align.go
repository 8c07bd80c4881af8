package msg

import (
	"math"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Align moves every module of in onto the cells that goal occupies along
// line. goal is the melted goal shape. Each iteration moves the module
// whose nearest free target is farthest away.
func Align(in State, goal *lattice.Lattice, line lattice.Line, budget int) (State, error) {
	const op = "msg.Align"
	if !lattice.SameModules(in.Shape, goal) {
		return State{}, planerr.New(op, planerr.KindShapeMismatch, "initial and goal lattices hold different modules")
	}
	if goal.LineCount(line) != goal.Count() {
		return State{}, planerr.New(op, planerr.KindInvariant, "goal is not melted onto %s", line)
	}
	s := in.clone(movement.PhaseAlign)

	var targets []lattice.Cell
	for i, id := range goal.Line(line) {
		if id != 0 {
			targets = append(targets, line.At(i))
		}
	}
	onTarget := make(map[lattice.Cell]bool, len(targets))
	for _, c := range targets {
		onTarget[c] = true
	}

	g := newGuard(op, budget, s)
	moved := 0
	for {
		var free []lattice.Cell
		for _, c := range targets {
			if s.Shape.At(c) == 0 {
				free = append(free, c)
			}
		}

		best := -1.0
		var id int
		var to lattice.Cell
		s.Shape.Each(func(c lattice.Cell, m int) {
			if onTarget[c] {
				return
			}
			slot, d := nearest(c, free)
			if d > best {
				best, id, to = d, m, slot
			}
		})
		if best < 0 {
			break
		}
		if len(free) == 0 {
			return State{}, planerr.ForModule(op, planerr.KindShapeMismatch, id, "no free target cell left")
		}
		if err := g.tick(); err != nil {
			return State{}, err
		}
		if err := s.move(id, to); err != nil {
			return State{}, err
		}
		moved++
	}

	Diagf("aligned onto %s in %d moves", line, moved)
	return s, nil
}

// nearest returns the first cell of cells at minimum distance from c, or
// +Inf when cells is empty.
func nearest(c lattice.Cell, cells []lattice.Cell) (lattice.Cell, float64) {
	var out lattice.Cell
	d := math.Inf(1)
	for _, cell := range cells {
		if dist := lattice.Distance(c, cell); dist < d {
			out, d = cell, dist
		}
	}
	return out, d
}
