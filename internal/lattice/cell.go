package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis identifies one of the three lattice axes. The declaration order is
// also the order in which axes are preferred when line occupancies tie.
type Axis uint8

const (
	AxisZ Axis = iota
	AxisX
	AxisY
)

// Axes lists every axis in preference order.
var Axes = [...]Axis{AxisZ, AxisX, AxisY}

func (a Axis) String() string {
	switch a {
	case AxisZ:
		return "z"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("axis(%d)", uint8(a))
	}
}

// Cell is an integer coordinate in the lattice.
type Cell struct{ X, Y, Z int }

// C is a convenience constructor for Cell.
func C(x, y, z int) Cell { return Cell{X: x, Y: y, Z: z} }

// String renders the cell as (x,y,z).
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Coord returns the component of c along a.
func (c Cell) Coord(a Axis) int {
	switch a {
	case AxisZ:
		return c.Z
	case AxisX:
		return c.X
	default:
		return c.Y
	}
}

// With returns a copy of c with its component along a replaced by v.
func (c Cell) With(a Axis, v int) Cell {
	switch a {
	case AxisZ:
		c.Z = v
	case AxisX:
		c.X = v
	default:
		c.Y = v
	}
	return c
}

func (c Cell) vec() r3.Vec {
	return r3.Vec{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

// Distance is the Euclidean distance between two cells.
func Distance(a, b Cell) float64 {
	return r3.Norm(r3.Sub(a.vec(), b.vec()))
}

// Position is a movement endpoint: either a concrete cell or the holding
// bay. The zero value is the cell (0,0,0).
type Position struct {
	held bool
	cell Cell
}

// Holding is the holding-bay endpoint.
var Holding = Position{held: true}

// At returns the endpoint for a concrete cell.
func At(c Cell) Position { return Position{cell: c} }

// IsHolding reports whether p is the holding bay.
func (p Position) IsHolding() bool { return p.held }

// Cell returns the concrete cell of p; ok is false for the holding bay.
func (p Position) Cell() (c Cell, ok bool) {
	if p.held {
		return Cell{}, false
	}
	return p.cell, true
}

func (p Position) String() string {
	if p.held {
		return "holding"
	}
	return p.cell.String()
}
