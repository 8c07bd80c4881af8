package msg

import "github.com/ht-932/MeltSortGrow/internal/lattice"

// SelectMeltLine returns the most populated axis-aligned line of l. The
// axis is the first of z, x, y whose fullest line reaches the overall
// maximum; within that axis the first fullest line in row-major order of
// its fixed coordinates wins.
func SelectMeltLine(l *lattice.Lattice) lattice.Line {
	type pick struct {
		line  lattice.Line
		count int
	}
	var picks [len(lattice.Axes)]pick
	for i, axis := range lattice.Axes {
		p := pick{line: lattice.Line{Axis: axis}, count: -1}
		for a, row := range l.Occupancy(axis) {
			for b, n := range row {
				if n > p.count {
					p = pick{line: lattice.Line{Axis: axis, A: a, B: b}, count: n}
				}
			}
		}
		picks[i] = p
	}

	best := picks[0]
	for _, p := range picks[1:] {
		if p.count > best.count {
			best = p
		}
	}
	return best.line
}

// span returns the first and last occupied indices of ids.
func span(ids []int) (first, last int, ok bool) {
	first, last = -1, -1
	for i, id := range ids {
		if id == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last, first >= 0
}

// gaps returns the empty indices strictly between the first and last
// occupied ones.
func gaps(ids []int) []int {
	first, last, ok := span(ids)
	if !ok {
		return nil
	}
	var out []int
	for i := first + 1; i < last; i++ {
		if ids[i] == 0 {
			out = append(out, i)
		}
	}
	return out
}
