// Package textfmt reads and writes the flat text encodings of lattices
// and movement logs.
//
// A lattice of side L is written as L*L rows of L integers. Row z*L+x
// holds the cells (x, 0..L-1, z). A movement log is one movement per row:
//
//	id ox oy oz nx ny nz phase
//
// with "h h h" in place of a cell for the holding bay. Lines starting
// with '#' are comments in both formats.
package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
)

// EncodeLattice writes l to w.
func EncodeLattice(w io.Writer, l *lattice.Lattice) error {
	bw := bufio.NewWriter(w)
	size := l.Size()
	fmt.Fprintf(bw, "# lattice %d\n", size)
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			for y := 0; y < size; y++ {
				if y > 0 {
					bw.WriteByte(' ')
				}
				bw.WriteString(strconv.Itoa(l.At(lattice.C(x, y, z))))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// DecodeLattice reads a lattice written by EncodeLattice. The side length
// is taken from the width of the first data row.
func DecodeLattice(r io.Reader) (*lattice.Lattice, error) {
	var rows [][]int
	err := eachLine(r, func(n int, fields []string) error {
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := parseID(f)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return fmt.Errorf("line %d: %d columns, want %d", n, len(row), len(rows[0]))
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no lattice rows")
	}
	size := len(rows[0])
	if len(rows) != size*size {
		return nil, fmt.Errorf("%d rows, want %d for a lattice of side %d", len(rows), size*size, size)
	}

	grid := make([][][]int, size)
	for z := range grid {
		grid[z] = rows[z*size : (z+1)*size]
	}
	return lattice.FromGrid(grid)
}

// eachLine calls fn with the fields of every non-blank, non-comment line.
func eachLine(r io.Reader, fn func(n int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, strings.Fields(line)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// parseID accepts plain integers and float renderings such as "3.0".
func parseID(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid module id %q", s)
	}
	return int(f), nil
}
