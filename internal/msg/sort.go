package msg

import (
	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Sort permutes the modules along line until it matches goal along the
// same line. Each pass fixes the first mismatching index and then starts
// over. The holding bay takes at most one module at a time and is always
// emptied within the same fix.
func Sort(in State, goal *lattice.Lattice, line lattice.Line, budget int) (State, error) {
	const op = "msg.Sort"
	s := in.clone(movement.PhaseSort)
	want := goal.Line(line)

	g := newGuard(op, budget, s)
	fixes := 0
	for {
		have := s.Shape.Line(line)
		i := firstMismatch(have, want)
		if i < 0 {
			break
		}
		if err := g.tick(); err != nil {
			return State{}, err
		}
		if err := s.fix(op, goal, line, i, have[i], want[i]); err != nil {
			return State{}, err
		}
		fixes++
	}

	Diagf("sorted %s in %d fixes", line, fixes)
	return s, nil
}

// fix makes index i of line hold b. a is the module currently there. If
// a's goal cell is taken, a waits in the holding bay and then drops into
// the cell that the fix vacates.
func (s State) fix(op string, goal *lattice.Lattice, line lattice.Line, i, a, b int) error {
	here := line.At(i)
	held := false
	var home lattice.Cell

	if a != 0 {
		var ok bool
		home, ok = goal.Find(a)
		if !ok {
			return planerr.ForModule(op, planerr.KindShapeMismatch, a, "module missing from goal")
		}
		if s.Shape.At(home) != 0 {
			held = true
			if err := s.hold(a); err != nil {
				return err
			}
		} else if err := s.move(a, home); err != nil {
			return err
		}
	}

	var vacated lattice.Cell
	switch {
	case b != 0:
		from, ok := s.Shape.Find(b)
		if !ok {
			return planerr.ForModule(op, planerr.KindShapeMismatch, b, "module missing from working lattice")
		}
		if err := s.move(b, here); err != nil {
			return err
		}
		vacated = from
	case held:
		// i should stay empty but a's home is taken: park its occupant here
		// for a later fix.
		c := s.Shape.At(home)
		if err := s.move(c, here); err != nil {
			return err
		}
		vacated = home
	}

	if held {
		return s.release(a, vacated)
	}
	return nil
}

func firstMismatch(have, want []int) int {
	for i := range have {
		if have[i] != want[i] {
			return i
		}
	}
	return -1
}
