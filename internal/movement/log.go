package movement

import (
	"sort"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Log is an ordered, append-only record of movements together with the
// lattice it was built against. The shadow lattice tracks the state after
// the last movement so that Record can tell hold entries from hold exits.
type Log struct {
	moves []Movement

	origin     *lattice.Lattice
	originHeld map[int]struct{}

	shadow *lattice.Lattice
	held   map[int]struct{}

	phase Phase
}

// NewLog starts an empty log against a private copy of origin.
func NewLog(origin *lattice.Lattice) *Log {
	return &Log{
		origin:     origin.Clone(),
		originHeld: map[int]struct{}{},
		shadow:     origin.Clone(),
		held:       map[int]struct{}{},
	}
}

// FromMovements rebuilds a log by appending moves to origin in order.
func FromMovements(origin *lattice.Lattice, moves []Movement) (*Log, error) {
	g := NewLog(origin)
	for _, m := range moves {
		if err := g.Append(m); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SetPhase sets the tag given to movements appended without one.
func (g *Log) SetPhase(p Phase) { g.phase = p }

// Len returns the number of movements.
func (g *Log) Len() int { return len(g.moves) }

// At returns the i-th movement, counting from zero.
func (g *Log) At(i int) Movement { return g.moves[i] }

// Movements returns a copy of every movement in order.
func (g *Log) Movements() []Movement {
	out := make([]Movement, len(g.moves))
	copy(out, g.moves)
	return out
}

// Origin returns a copy of the lattice the log starts from.
func (g *Log) Origin() *lattice.Lattice { return g.origin.Clone() }

// Final returns a copy of the lattice after every movement.
func (g *Log) Final() *lattice.Lattice { return g.shadow.Clone() }

// Held returns the modules sitting in the holding bay after the last movement.
func (g *Log) Held() []int { return sortedKeys(g.held) }

// Record compares after with the shadow state and appends the movement of
// module id that turns one into the other. A module missing from the
// shadow is leaving the holding bay; one missing from after is entering it.
func (g *Log) Record(after *lattice.Lattice, id int) (Movement, error) {
	const op = "movement.Record"
	m := Movement{Module: id, From: lattice.Holding, To: lattice.Holding, Phase: g.phase}

	old, inShadow := g.shadow.Find(id)
	now, inAfter := after.Find(id)
	if !inShadow && !inAfter {
		return Movement{}, planerr.ForModule(op, planerr.KindInvariant, id, "holding bay to holding bay")
	}
	if inShadow {
		m.From = lattice.At(old)
	}
	if inAfter {
		m.To = lattice.At(now)
	}
	if err := g.Append(m); err != nil {
		return Movement{}, err
	}
	return m, nil
}

// Append validates m against the shadow state and adds it to the log.
func (g *Log) Append(m Movement) error {
	const op = "movement.Append"
	if m.Phase == PhaseUnknown {
		m.Phase = g.phase
	}
	if m.LeavesHolding() {
		if _, ok := g.held[m.Module]; !ok {
			return planerr.ForModule(op, planerr.KindInvariant, m.Module, "leaving holding bay it never entered")
		}
	}
	if err := m.Apply(g.shadow); err != nil {
		return err
	}
	switch {
	case m.EntersHolding():
		g.held[m.Module] = struct{}{}
	case m.LeavesHolding():
		delete(g.held, m.Module)
	}
	g.moves = append(g.moves, m)
	return nil
}

// Flip reverses the step order and swaps the endpoints of every movement,
// so the log now runs from its old final state back to its old origin.
func (g *Log) Flip() {
	n := len(g.moves)
	flipped := make([]Movement, n)
	for i, m := range g.moves {
		flipped[n-1-i] = m.Inverse()
	}
	g.moves = flipped
	g.origin, g.shadow = g.shadow, g.origin
	g.originHeld, g.held = g.held, g.originHeld
}

// Relabel tags every movement with p.
func (g *Log) Relabel(p Phase) {
	for i := range g.moves {
		g.moves[i].Phase = p
	}
	g.phase = p
}

// Combine appends every movement of next. next must start from the state
// this log ends in.
func (g *Log) Combine(next *Log) error {
	const op = "movement.Combine"
	if !g.shadow.Equal(next.origin) || !sameKeys(g.held, next.originHeld) {
		return planerr.New(op, planerr.KindInvariant, "continuation does not start where the log ends")
	}
	for _, m := range next.moves {
		if err := g.Append(m); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the number of movements per phase.
func (g *Log) Counts() map[Phase]int {
	out := make(map[Phase]int)
	for _, m := range g.moves {
		out[m.Phase]++
	}
	return out
}

// Clone returns an independent copy.
func (g *Log) Clone() *Log {
	out := &Log{
		moves:      g.Movements(),
		origin:     g.origin.Clone(),
		originHeld: copyKeys(g.originHeld),
		shadow:     g.shadow.Clone(),
		held:       copyKeys(g.held),
		phase:      g.phase,
	}
	return out
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func copyKeys(m map[int]struct{}) map[int]struct{} {
	out := make(map[int]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func sameKeys(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
