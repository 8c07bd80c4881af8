// Package planerr classifies the errors produced while planning and
// replaying a reconfiguration.
package planerr

import (
	"errors"
	"fmt"
)

// Kind is a coarse-grained categorisation for planner errors.
type Kind string

const (
	KindShapeMismatch        Kind = "shape_mismatch"
	KindBoundaryOverrun      Kind = "boundary_overrun"
	KindUnsupportedAlgorithm Kind = "unsupported_algorithm"
	KindPlanningDivergence   Kind = "planning_divergence"
	KindInvalidLattice       Kind = "invalid_lattice"
	KindCapacity             Kind = "capacity"
	KindInvariant            Kind = "invariant"
)

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrShapeMismatch        = errors.New("initial and goal shapes hold different modules")
	ErrBoundaryOverrun      = errors.New("step outside the movement log")
	ErrUnsupportedAlgorithm = errors.New("algorithm not supported")
	ErrPlanningDivergence   = errors.New("planning did not converge")
	ErrInvalidLattice       = errors.New("invalid lattice")
	ErrCapacity             = errors.New("modules do not fit on a single line")
	ErrInvariant            = errors.New("movement log invariant violated")
)

var sentinels = map[Kind]error{
	KindShapeMismatch:        ErrShapeMismatch,
	KindBoundaryOverrun:      ErrBoundaryOverrun,
	KindUnsupportedAlgorithm: ErrUnsupportedAlgorithm,
	KindPlanningDivergence:   ErrPlanningDivergence,
	KindInvalidLattice:       ErrInvalidLattice,
	KindCapacity:             ErrCapacity,
	KindInvariant:            ErrInvariant,
}

// Error wraps an underlying error with the operation that failed and its kind.
type Error struct {
	Op     string
	Kind   Kind
	Module int // Optional: module id involved, 0 when not applicable
	Err    error
}

// New builds an *Error with a formatted cause.
func New(op string, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// ForModule builds an *Error that names the module it concerns.
func ForModule(op string, kind Kind, module int, format string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Module: module, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Module != 0 {
		base += fmt.Sprintf(" (module=%d)", e.Module)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// IsKind helps callers classify errors without matching on strings.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
