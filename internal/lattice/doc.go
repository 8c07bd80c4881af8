// Package lattice owns the geometry of a modular-robot structure.
//
// Responsibilities: integer cell coordinates, the axis-aligned lines used
// as melt lines, movement endpoints (a cell or the holding bay), and the
// cubic grid of module identifiers itself.
// Key types: Cell, Axis, Line, Position, Lattice.
//
// Cells are traversed in a fixed scan order (z, then x, then y). Every
// "first found" rule in the planner is defined against this order.
package lattice
