package msg

import (
	"github.com/ht-932/MeltSortGrow/internal/config"
	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// Messages reported to the operator.
const (
	CompleteMessage   = "Melt Sort Grow Complete!"
	ComingSoonMessage = "Coming Soon!"
)

// Result is a finished plan. Log replays Initial into Final, which equals
// the goal shape.
type Result struct {
	Success   bool
	Message   string
	Algorithm string

	Initial *lattice.Lattice
	Goal    *lattice.Lattice

	InitialLine   lattice.Line
	GoalLine      lattice.Line
	InitialMelted *lattice.Lattice
	GoalMelted    *lattice.Lattice

	Final  *lattice.Lattice
	Log    *movement.Log
	Counts map[movement.Phase]int
}

// Planner runs the configured planning algorithm.
type Planner struct {
	algorithm string
	factor    int
}

// New returns a planner for cfg. A nil cfg uses the built-in defaults.
func New(cfg *config.PlannerConfig) *Planner {
	if cfg == nil {
		cfg = config.EmptyPlannerConfig()
	}
	return &Planner{algorithm: cfg.GetAlgorithm(), factor: cfg.GetIterationFactor()}
}

// Plan is shorthand for New(nil).Plan.
func Plan(initial, goal *lattice.Lattice) (*Result, error) {
	return New(nil).Plan(initial, goal)
}

// Plan computes a movement log that turns initial into goal. Neither
// input is modified. Any error aborts the whole run; no partial plan is
// returned.
func (p *Planner) Plan(initial, goal *lattice.Lattice) (*Result, error) {
	const op = "msg.Plan"
	switch p.algorithm {
	case config.AlgorithmMeltSortGrow:
	case config.AlgorithmGradient:
		Opsf("gradient fields: %s", ComingSoonMessage)
		return nil, planerr.New(op, planerr.KindUnsupportedAlgorithm, "gradient fields: %s", ComingSoonMessage)
	default:
		Opsf("unknown algorithm %q", p.algorithm)
		return nil, planerr.New(op, planerr.KindUnsupportedAlgorithm, "unknown algorithm %q", p.algorithm)
	}

	if initial == nil || goal == nil {
		return nil, planerr.New(op, planerr.KindInvalidLattice, "missing lattice")
	}
	if initial.Size() != goal.Size() {
		return nil, planerr.New(op, planerr.KindShapeMismatch, "lattice sizes differ: %d and %d", initial.Size(), goal.Size())
	}
	if !lattice.SameModules(initial, goal) {
		return nil, planerr.New(op, planerr.KindShapeMismatch, "initial and goal lattices hold different modules")
	}

	res, err := p.plan(initial, goal)
	if err != nil {
		Opsf("plan failed: %v", err)
		return nil, err
	}
	Opsf("plan complete: %d modules, %d movements", initial.Count(), res.Log.Len())
	return res, nil
}

func (p *Planner) plan(initial, goal *lattice.Lattice) (*Result, error) {
	budget := Budget(initial.Count(), initial.Size(), p.factor)
	Opsf("planning %d modules on a %d^3 lattice", initial.Count(), initial.Size())

	initialLine := SelectMeltLine(initial)
	goalLine := SelectMeltLine(goal)
	Diagf("melt lines: initial %s, goal %s", initialLine, goalLine)

	s, err := Melt(NewState(initial), initialLine, budget)
	if err != nil {
		return nil, err
	}
	initialMelted := s.Shape.Clone()

	goalState, err := Melt(NewState(goal), goalLine, budget)
	if err != nil {
		return nil, err
	}

	if s, err = Align(s, goalState.Shape, goalLine, budget); err != nil {
		return nil, err
	}
	if s, err = Sort(s, goalState.Shape, goalLine, budget); err != nil {
		return nil, err
	}
	if s, err = Grow(s, goalState.Log); err != nil {
		return nil, err
	}

	if !s.Shape.Equal(goal) {
		return nil, planerr.New("msg.Plan", planerr.KindInvariant, "replayed plan does not reach the goal shape")
	}

	counts := s.Log.Counts()
	for _, ph := range movement.Phases {
		Diagf("%s: %d movements", ph, counts[ph])
	}
	return &Result{
		Success:       true,
		Message:       CompleteMessage,
		Algorithm:     p.algorithm,
		Initial:       initial.Clone(),
		Goal:          goal.Clone(),
		InitialLine:   initialLine,
		GoalLine:      goalLine,
		InitialMelted: initialMelted,
		GoalMelted:    goalState.Shape,
		Final:         s.Shape,
		Log:           s.Log,
		Counts:        counts,
	}, nil
}
