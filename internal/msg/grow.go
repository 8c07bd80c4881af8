package msg

import (
	"github.com/ht-932/MeltSortGrow/internal/movement"
)

// Grow appends the inverse of goalMelt, the log that melted the goal
// shape, to in. in must end in the state goalMelt ends in.
func Grow(in State, goalMelt *movement.Log) (State, error) {
	s := in.clone(movement.PhaseGrow)
	inv := goalMelt.Clone()
	inv.Flip()
	inv.Relabel(movement.PhaseGrow)

	start := s.Log.Len()
	if err := s.Log.Combine(inv); err != nil {
		return State{}, err
	}
	for i := start; i < s.Log.Len(); i++ {
		Tracef("%d: %s", i+1, s.Log.At(i))
	}
	s.Shape = s.Log.Final()

	Diagf("grew goal shape in %d moves", inv.Len())
	return s, nil
}
