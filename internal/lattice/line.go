package lattice

import "fmt"

// Line is an axis-aligned line through the lattice: every cell whose
// components off Axis equal the two fixed coordinates A and B.
//
// A and B name the remaining axes in preference order:
//
//	AxisZ: A = x, B = y
//	AxisX: A = z, B = y
//	AxisY: A = z, B = x
type Line struct {
	Axis Axis
	A, B int
}

// LineThrough returns the line parallel to axis that passes through c.
func LineThrough(axis Axis, c Cell) Line {
	switch axis {
	case AxisZ:
		return Line{Axis: axis, A: c.X, B: c.Y}
	case AxisX:
		return Line{Axis: axis, A: c.Z, B: c.Y}
	default:
		return Line{Axis: axis, A: c.Z, B: c.X}
	}
}

// At returns the cell at index i along the line.
func (l Line) At(i int) Cell {
	switch l.Axis {
	case AxisZ:
		return Cell{X: l.A, Y: l.B, Z: i}
	case AxisX:
		return Cell{Z: l.A, Y: l.B, X: i}
	default:
		return Cell{Z: l.A, X: l.B, Y: i}
	}
}

// Index returns the position of c along the line, or false when c is off it.
func (l Line) Index(c Cell) (int, bool) {
	if LineThrough(l.Axis, c) != l {
		return 0, false
	}
	return c.Coord(l.Axis), true
}

// Contains reports whether c lies on the line.
func (l Line) Contains(c Cell) bool {
	_, ok := l.Index(c)
	return ok
}

func (l Line) String() string {
	switch l.Axis {
	case AxisZ:
		return fmt.Sprintf("line(z=*, x=%d, y=%d)", l.A, l.B)
	case AxisX:
		return fmt.Sprintf("line(x=*, z=%d, y=%d)", l.A, l.B)
	default:
		return fmt.Sprintf("line(y=*, z=%d, x=%d)", l.A, l.B)
	}
}
