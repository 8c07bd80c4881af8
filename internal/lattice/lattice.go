package lattice

import (
	"sort"

	"github.com/ht-932/MeltSortGrow/internal/planerr"
)

// DefaultSize is the side length used when none is configured.
const DefaultSize = 10

// MaxSize bounds the side length accepted from callers and files.
const MaxSize = 64

// Lattice is a cubic grid of module identifiers. Zero is empty space; a
// positive id appears in at most one cell.
type Lattice struct {
	size  int
	cells []int        // index (z*size+x)*size+y
	where map[int]Cell // module id -> cell
}

// New returns an empty lattice with the given side length.
func New(size int) (*Lattice, error) {
	if size < 1 || size > MaxSize {
		return nil, planerr.New("lattice.New", planerr.KindInvalidLattice, "side length %d outside 1..%d", size, MaxSize)
	}
	return &Lattice{
		size:  size,
		cells: make([]int, size*size*size),
		where: make(map[int]Cell),
	}, nil
}

// FromGrid copies a caller-supplied grid indexed grid[z][x][y]. The grid
// must be cubic, hold no negative values and no repeated module id.
func FromGrid(grid [][][]int) (*Lattice, error) {
	const op = "lattice.FromGrid"
	l, err := New(len(grid))
	if err != nil {
		return nil, err
	}
	for z, plane := range grid {
		if len(plane) != l.size {
			return nil, planerr.New(op, planerr.KindInvalidLattice, "layer z=%d has %d rows, want %d", z, len(plane), l.size)
		}
		for x, row := range plane {
			if len(row) != l.size {
				return nil, planerr.New(op, planerr.KindInvalidLattice, "row z=%d x=%d has %d cells, want %d", z, x, len(row), l.size)
			}
			for y, id := range row {
				if id == 0 {
					continue
				}
				if err := l.Set(Cell{X: x, Y: y, Z: z}, id); err != nil {
					return nil, err
				}
			}
		}
	}
	return l, nil
}

// Size returns the side length.
func (l *Lattice) Size() int { return l.size }

// InBounds reports whether c lies inside the lattice.
func (l *Lattice) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.Z >= 0 && c.X < l.size && c.Y < l.size && c.Z < l.size
}

func (l *Lattice) index(c Cell) int {
	return (c.Z*l.size+c.X)*l.size + c.Y
}

func (l *Lattice) cellAt(i int) Cell {
	y := i % l.size
	x := (i / l.size) % l.size
	z := i / (l.size * l.size)
	return Cell{X: x, Y: y, Z: z}
}

// At returns the module id at c, or 0 for empty or out-of-bounds cells.
func (l *Lattice) At(c Cell) int {
	if !l.InBounds(c) {
		return 0
	}
	return l.cells[l.index(c)]
}

// Set writes id into c, replacing whatever was there. Writing 0 clears the
// cell. A positive id already present elsewhere is rejected.
func (l *Lattice) Set(c Cell, id int) error {
	const op = "lattice.Set"
	if !l.InBounds(c) {
		return planerr.New(op, planerr.KindInvalidLattice, "cell %s outside %d^3 lattice", c, l.size)
	}
	if id < 0 {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "negative module id at %s", c)
	}
	if id > 0 {
		if prev, ok := l.where[id]; ok && prev != c {
			return planerr.ForModule(op, planerr.KindInvalidLattice, id, "module already at %s, cannot also be at %s", prev, c)
		}
	}
	i := l.index(c)
	if old := l.cells[i]; old != 0 {
		delete(l.where, old)
	}
	l.cells[i] = id
	if id > 0 {
		l.where[id] = c
	}
	return nil
}

// Find returns the cell holding id.
func (l *Lattice) Find(id int) (Cell, bool) {
	c, ok := l.where[id]
	return c, ok
}

// Contains reports whether module id is present.
func (l *Lattice) Contains(id int) bool {
	_, ok := l.where[id]
	return ok
}

// Remove takes module id out of the lattice and returns the cell it left.
func (l *Lattice) Remove(id int) (Cell, bool) {
	c, ok := l.where[id]
	if !ok {
		return Cell{}, false
	}
	l.cells[l.index(c)] = 0
	delete(l.where, id)
	return c, true
}

// Place puts a module that is not currently in the lattice into an empty cell.
func (l *Lattice) Place(id int, c Cell) error {
	const op = "lattice.Place"
	if id <= 0 {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "module ids must be positive")
	}
	if !l.InBounds(c) {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "cell %s outside %d^3 lattice", c, l.size)
	}
	if prev, ok := l.where[id]; ok {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "module already at %s", prev)
	}
	if occ := l.At(c); occ != 0 {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "cell %s occupied by module %d", c, occ)
	}
	return l.Set(c, id)
}

// Move relocates module id into the empty cell to.
func (l *Lattice) Move(id int, to Cell) error {
	const op = "lattice.Move"
	if _, ok := l.where[id]; !ok {
		return planerr.ForModule(op, planerr.KindShapeMismatch, id, "module not in lattice")
	}
	if !l.InBounds(to) {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "cell %s outside %d^3 lattice", to, l.size)
	}
	if occ := l.At(to); occ != 0 {
		return planerr.ForModule(op, planerr.KindInvalidLattice, id, "cell %s occupied by module %d", to, occ)
	}
	l.Remove(id)
	return l.Set(to, id)
}

// Count returns the number of modules in the lattice.
func (l *Lattice) Count() int { return len(l.where) }

// IDs returns every module id in ascending order.
func (l *Lattice) IDs() []int {
	ids := make([]int, 0, len(l.where))
	for id := range l.where {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Each calls fn for every occupied cell in scan order (z, x, y).
func (l *Lattice) Each(fn func(c Cell, id int)) {
	for i, id := range l.cells {
		if id != 0 {
			fn(l.cellAt(i), id)
		}
	}
}

// Line returns a copy of the ids along line, indexed by position.
func (l *Lattice) Line(line Line) []int {
	out := make([]int, l.size)
	for i := range out {
		out[i] = l.At(line.At(i))
	}
	return out
}

// LineCount returns the number of modules on line.
func (l *Lattice) LineCount(line Line) int {
	n := 0
	for i := 0; i < l.size; i++ {
		if l.At(line.At(i)) != 0 {
			n++
		}
	}
	return n
}

// Occupancy counts modules on every line parallel to axis. The table is
// indexed [A][B] using the fixed coordinates of Line.
func (l *Lattice) Occupancy(axis Axis) [][]int {
	table := make([][]int, l.size)
	for a := range table {
		table[a] = make([]int, l.size)
	}
	for _, c := range l.where {
		line := LineThrough(axis, c)
		table[line.A][line.B]++
	}
	return table
}

// Clone returns an independent copy.
func (l *Lattice) Clone() *Lattice {
	out := &Lattice{
		size:  l.size,
		cells: make([]int, len(l.cells)),
		where: make(map[int]Cell, len(l.where)),
	}
	copy(out.cells, l.cells)
	for id, c := range l.where {
		out.where[id] = c
	}
	return out
}

// Equal reports whether two lattices match cell for cell.
func (l *Lattice) Equal(o *Lattice) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.size != o.size {
		return false
	}
	for i := range l.cells {
		if l.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Grid returns a copy of the lattice indexed grid[z][x][y].
func (l *Lattice) Grid() [][][]int {
	grid := make([][][]int, l.size)
	for z := range grid {
		grid[z] = make([][]int, l.size)
		for x := range grid[z] {
			row := make([]int, l.size)
			for y := range row {
				row[y] = l.cells[l.index(Cell{X: x, Y: y, Z: z})]
			}
			grid[z][x] = row
		}
	}
	return grid
}

// SameModules reports whether two lattices hold exactly the same ids.
func SameModules(a, b *Lattice) bool {
	if a.Count() != b.Count() {
		return false
	}
	for id := range a.where {
		if _, ok := b.where[id]; !ok {
			return false
		}
	}
	return true
}
