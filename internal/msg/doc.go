// Package msg plans lattice reconfigurations with the melt-sort-grow
// algorithm.
//
// Both shapes are first melted onto their most populated axis-aligned
// line. The melted initial line is then moved onto the goal's line and
// permuted until it matches, using a one-slot holding bay when two
// modules need each other's cell. Finally the goal's own melt log is
// replayed in reverse to grow the line back into the goal shape.
//
// Each phase is a pure transformation of a State and may be run on its
// own. Every iterative phase is bounded; a heuristic that fails to
// converge is reported as a planning divergence.
package msg
