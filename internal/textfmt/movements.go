package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/movement"
)

const (
	holdMarker      = "h"
	movementsHeader = "# id old(x,y,z) new(x,y,z) phase"
)

// EncodeMovements writes moves to w, one per row.
func EncodeMovements(w io.Writer, moves []movement.Movement) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(movementsHeader)
	bw.WriteByte('\n')
	for _, m := range moves {
		fmt.Fprintf(bw, "%d %s %s %s\n", m.Module, encodePosition(m.From), encodePosition(m.To), m.Phase)
	}
	return bw.Flush()
}

// DecodeMovements reads rows written by EncodeMovements. The phase
// column is optional.
func DecodeMovements(r io.Reader) ([]movement.Movement, error) {
	var out []movement.Movement
	err := eachLine(r, func(n int, fields []string) error {
		if len(fields) != 7 && len(fields) != 8 {
			return fmt.Errorf("line %d: %d fields, want 7 or 8", n, len(fields))
		}
		id, err := parseID(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if id <= 0 {
			return fmt.Errorf("line %d: module id must be positive, got %d", n, id)
		}
		from, err := decodePosition(fields[1:4])
		if err != nil {
			return fmt.Errorf("line %d: old location: %w", n, err)
		}
		to, err := decodePosition(fields[4:7])
		if err != nil {
			return fmt.Errorf("line %d: new location: %w", n, err)
		}
		m := movement.Movement{Module: id, From: from, To: to}
		if len(fields) == 8 {
			if m.Phase, err = movement.ParsePhase(fields[7]); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func encodePosition(p lattice.Position) string {
	c, ok := p.Cell()
	if !ok {
		return "h h h"
	}
	return fmt.Sprintf("%d %d %d", c.X, c.Y, c.Z)
}

func decodePosition(fields []string) (lattice.Position, error) {
	holds := 0
	for _, f := range fields {
		if f == holdMarker {
			holds++
		}
	}
	switch holds {
	case 3:
		return lattice.Holding, nil
	case 0:
	default:
		return lattice.Position{}, fmt.Errorf("partial holding marker %v", fields)
	}

	var xyz [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return lattice.Position{}, fmt.Errorf("invalid coordinate %q", f)
		}
		if v < 0 {
			return lattice.Position{}, fmt.Errorf("negative coordinate %d", v)
		}
		xyz[i] = v
	}
	return lattice.At(lattice.C(xyz[0], xyz[1], xyz[2])), nil
}
