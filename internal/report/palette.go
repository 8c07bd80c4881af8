// Package report renders finished plans for people: an HTML page of
// interactive charts and a PNG of travel distance per step.
package report

import (
	"image/color"
	"sort"
)

// Palette maps module ids to display colours. It belongs to the report
// and never feeds back into planning.
type Palette struct {
	names  []string
	colors []color.RGBA
	fixed  map[int]int
}

// DefaultPalette cycles blue, green, red, cyan, magenta, yellow by id.
func DefaultPalette() *Palette {
	return &Palette{
		names: []string{"#1f5fd6", "#2ca02c", "#d62728", "#17becf", "#c23bc2", "#e5c100"},
		colors: []color.RGBA{
			{R: 0x1f, G: 0x5f, B: 0xd6, A: 0xff},
			{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
			{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
			{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
			{R: 0xc2, G: 0x3b, B: 0xc2, A: 0xff},
			{R: 0xe5, G: 0xc1, B: 0x00, A: 0xff},
		},
		fixed: map[int]int{},
	}
}

// Pin forces id onto palette entry slot, modulo the palette length.
func (p *Palette) Pin(id, slot int) {
	p.fixed[id] = slot
}

func (p *Palette) slot(id int) int {
	n := len(p.names)
	s, ok := p.fixed[id]
	if !ok {
		// Module ids start at 1.
		s = id - 1
	}
	s %= n
	if s < 0 {
		s += n
	}
	return s
}

// Hex returns the colour of id as a CSS hex string.
func (p *Palette) Hex(id int) string { return p.names[p.slot(id)] }

// Color returns the colour of id.
func (p *Palette) Color(id int) color.RGBA { return p.colors[p.slot(id)] }

// Legend returns the colour of every id in ascending id order.
func (p *Palette) Legend(ids []int) []string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	out := make([]string, len(sorted))
	for i, id := range sorted {
		out[i] = p.Hex(id)
	}
	return out
}
