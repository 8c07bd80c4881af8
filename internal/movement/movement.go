// Package movement records single-module relocations and the ordered logs
// that make up a reconfiguration plan.
package movement

import (
	"fmt"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Phase tags the planning stage that produced a movement.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseMelt
	PhaseAlign
	PhaseSort
	PhaseGrow
)

// Phases lists the planning stages in execution order.
var Phases = [...]Phase{PhaseMelt, PhaseAlign, PhaseSort, PhaseGrow}

func (p Phase) String() string {
	switch p {
	case PhaseMelt:
		return "melt"
	case PhaseAlign:
		return "align"
	case PhaseSort:
		return "sort"
	case PhaseGrow:
		return "grow"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for _, p := range Phases {
		if p.String() == s {
			return p, nil
		}
	}
	if s == "unknown" {
		return PhaseUnknown, nil
	}
	return PhaseUnknown, fmt.Errorf("unknown phase %q", s)
}

// Movement relocates one module. Either endpoint may be the holding bay.
type Movement struct {
	Module int
	From   lattice.Position
	To     lattice.Position
	Phase  Phase
}

// EntersHolding reports whether the module leaves the lattice for the bay.
func (m Movement) EntersHolding() bool { return m.To.IsHolding() }

// LeavesHolding reports whether the module returns from the bay.
func (m Movement) LeavesHolding() bool { return m.From.IsHolding() }

// Inverse swaps the endpoints.
func (m Movement) Inverse() Movement {
	m.From, m.To = m.To, m.From
	return m
}

// Travel is the straight-line distance covered; zero when either endpoint
// is the holding bay.
func (m Movement) Travel() float64 {
	from, ok := m.From.Cell()
	if !ok {
		return 0
	}
	to, ok := m.To.Cell()
	if !ok {
		return 0
	}
	return lattice.Distance(from, to)
}

func (m Movement) String() string {
	return fmt.Sprintf("module %d %s -> %s [%s]", m.Module, m.From, m.To, m.Phase)
}

// Apply performs m on l. The source cell must hold the module and the
// destination cell must be empty once the module has left.
func (m Movement) Apply(l *lattice.Lattice) error {
	const op = "movement.Apply"
	if m.From.IsHolding() && m.To.IsHolding() {
		return planerr.ForModule(op, planerr.KindInvariant, m.Module, "holding bay to holding bay")
	}
	from, fromCell := m.From.Cell()
	if fromCell {
		if got := l.At(from); got != m.Module {
			return planerr.ForModule(op, planerr.KindInvariant, m.Module, "expected at %s, found %d", from, got)
		}
	} else if l.Contains(m.Module) {
		return planerr.ForModule(op, planerr.KindInvariant, m.Module, "leaving holding while still in the lattice")
	}
	to, toCell := m.To.Cell()
	if toCell {
		if occ := l.At(to); occ != 0 && occ != m.Module {
			return planerr.ForModule(op, planerr.KindInvariant, m.Module, "destination %s occupied by module %d", to, occ)
		}
		if !l.InBounds(to) {
			return planerr.ForModule(op, planerr.KindInvariant, m.Module, "destination %s outside the lattice", to)
		}
	}
	if fromCell {
		l.Remove(m.Module)
	}
	if toCell {
		return l.Place(m.Module, to)
	}
	return nil
}
