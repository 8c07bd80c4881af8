// Package replay steps a finished plan forwards and backwards against a
// private lattice snapshot, for display by an outside viewer.
package replay

import (
	"fmt"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Player pairs a lattice snapshot with a movement log and a cursor in
// [0, Len()]. At cursor i the snapshot reflects the first i movements.
type Player struct {
	shape *lattice.Lattice
	moves []movement.Movement
	step  int
}

// New returns a player at step 0. The log is replayed once against a copy
// of start so that later steps cannot fail.
func New(start *lattice.Lattice, log *movement.Log) (*Player, error) {
	moves := log.Movements()
	if _, err := movement.FromMovements(start, moves); err != nil {
		return nil, fmt.Errorf("log does not apply to the starting lattice: %w", err)
	}
	return &Player{shape: start.Clone(), moves: moves}, nil
}

// Len returns the number of movements.
func (p *Player) Len() int { return len(p.moves) }

// Step returns the cursor.
func (p *Player) Step() int { return p.step }

// AtStart reports whether the cursor is at 0.
func (p *Player) AtStart() bool { return p.step == 0 }

// AtEnd reports whether every movement has been applied.
func (p *Player) AtEnd() bool { return p.step == len(p.moves) }

// Shape returns a copy of the snapshot at the cursor.
func (p *Player) Shape() *lattice.Lattice { return p.shape.Clone() }

// Forward applies the next movement. At the end of the log it reports
// false with an empty message and leaves the snapshot untouched.
func (p *Player) Forward() (bool, string) {
	if p.AtEnd() {
		return false, ""
	}
	m := p.moves[p.step]
	if err := m.Apply(p.shape); err != nil {
		// New verified the log, so this only happens if the snapshot was
		// shared and mutated elsewhere.
		return false, ""
	}
	p.step++
	return true, p.describe(m)
}

// Backward undoes the movement at the cursor. At step 0 it reports false
// with an empty message and leaves the snapshot untouched.
func (p *Player) Backward() (bool, string) {
	if p.AtStart() {
		return false, ""
	}
	m := p.moves[p.step-1].Inverse()
	if err := m.Apply(p.shape); err != nil {
		return false, ""
	}
	p.step--
	return true, p.describe(m)
}

// Skip takes up to n steps in one direction and returns the message of
// each step taken. It stops early at either end of the log.
func (p *Player) Skip(n int, forward bool) []string {
	var msgs []string
	for i := 0; i < n; i++ {
		var ok bool
		var msg string
		if forward {
			ok, msg = p.Forward()
		} else {
			ok, msg = p.Backward()
		}
		if !ok {
			break
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// Seek moves the cursor to step, clamped to [0, Len()], and returns the
// number of movements applied or undone.
func (p *Player) Seek(step int) int {
	if step < 0 {
		step = 0
	}
	if step > len(p.moves) {
		step = len(p.moves)
	}
	if step >= p.step {
		return len(p.Skip(step-p.step, true))
	}
	return len(p.Skip(p.step-step, false))
}

// Goto moves the cursor to step. Unlike Seek it rejects a step outside
// [0, Len()] with a boundary overrun and leaves the snapshot untouched.
func (p *Player) Goto(step int) error {
	if step < 0 || step > len(p.moves) {
		return planerr.New("replay.Goto", planerr.KindBoundaryOverrun, "step %d outside [0, %d]", step, len(p.moves))
	}
	p.Seek(step)
	return nil
}

// Movement returns the movement that the next Forward would apply.
func (p *Player) Movement() (movement.Movement, bool) {
	if p.AtEnd() {
		return movement.Movement{}, false
	}
	return p.moves[p.step], true
}

func (p *Player) describe(m movement.Movement) string {
	prefix := fmt.Sprintf("Step %d/%d Module ID:%d", p.step, len(p.moves), m.Module)
	switch {
	case m.EntersHolding():
		return prefix + " entering holding."
	case m.LeavesHolding():
		return prefix + " leaving holding."
	default:
		return prefix + " moving to " + m.To.String()
	}
}
