package msg

import (
	"github.com/ht-932/MeltSortGrow/internal/config"
	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// State is the input and output of every planning phase: a working
// lattice and the log of movements that produced it. Shape always equals
// Log.Final().
type State struct {
	Shape *lattice.Lattice
	Log   *movement.Log
}

// NewState starts an empty log against a private copy of l.
func NewState(l *lattice.Lattice) State {
	return State{Shape: l.Clone(), Log: movement.NewLog(l)}
}

// clone copies s so a phase never mutates its input.
func (s State) clone(p movement.Phase) State {
	log := s.Log.Clone()
	log.SetPhase(p)
	return State{Shape: s.Shape.Clone(), Log: log}
}

func (s State) record(id int) error {
	m, err := s.Log.Record(s.Shape, id)
	if err != nil {
		return err
	}
	Tracef("%d: %s", s.Log.Len(), m)
	return nil
}

// move relocates id to an empty cell and records it.
func (s State) move(id int, to lattice.Cell) error {
	if err := s.Shape.Move(id, to); err != nil {
		return err
	}
	return s.record(id)
}

// hold sends id to the holding bay.
func (s State) hold(id int) error {
	if _, ok := s.Shape.Remove(id); !ok {
		return planerr.ForModule("msg.hold", planerr.KindShapeMismatch, id, "module not in lattice")
	}
	return s.record(id)
}

// release brings id back from the holding bay into an empty cell.
func (s State) release(id int, to lattice.Cell) error {
	if err := s.Shape.Place(id, to); err != nil {
		return err
	}
	return s.record(id)
}

// Budget is the iteration cap applied to each phase for k modules in a
// lattice of the given side length.
func Budget(k, size, factor int) int {
	if factor < 1 {
		factor = config.DefaultIterationFactor
	}
	return factor*k*k + 2*size
}

type guard struct {
	op    string
	limit int
	n     int
}

// newGuard falls back to the default budget for s when budget <= 0.
func newGuard(op string, budget int, s State) *guard {
	if budget <= 0 {
		budget = Budget(s.Shape.Count(), s.Shape.Size(), config.DefaultIterationFactor)
	}
	return &guard{op: op, limit: budget}
}

func (g *guard) tick() error {
	g.n++
	if g.n > g.limit {
		return planerr.New(g.op, planerr.KindPlanningDivergence, "no convergence after %d iterations", g.limit)
	}
	return nil
}
