package diagram

import "strings"

// Connector directions leaving a cell.
const (
	up uint8 = 1 << iota
	down
	left
	right
)

type cell struct {
	ch     rune // fixed glyph (box, text, arrowhead); wins over the mask
	mask   uint8
	solid  bool
	dotted bool
}

// canvas is a rune grid where line segments accumulate direction bits so
// that crossings and corners resolve to the right junction glyph.
type canvas struct {
	w, h   int
	cells  [][]cell
	glyphs *glyphSet
}

func newCanvas(w, h int, g *glyphSet) *canvas {
	cells := make([][]cell, h)
	for y := range cells {
		cells[y] = make([]cell, w)
	}
	return &canvas{w: w, h: h, cells: cells, glyphs: g}
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *canvas) set(x, y int, r rune) {
	if c.in(x, y) {
		c.cells[y][x].ch = r
	}
}

func (c *canvas) text(x, y int, s string) {
	for _, r := range s {
		c.set(x, y, r)
		x++
	}
}

func (c *canvas) bits(x, y int, m uint8, dotted bool) {
	if !c.in(x, y) || m == 0 {
		return
	}
	cl := &c.cells[y][x]
	cl.mask |= m
	if dotted {
		cl.dotted = true
	} else {
		cl.solid = true
	}
}

// vline draws from y1 to y2 inclusive at column x.
func (c *canvas) vline(x, y1, y2 int, dotted bool) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		var m uint8
		if y > y1 {
			m |= up
		}
		if y < y2 {
			m |= down
		}
		c.bits(x, y, m, dotted)
	}
}

// hline draws from x1 to x2 inclusive at row y.
func (c *canvas) hline(y, x1, x2 int, dotted bool) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		var m uint8
		if x > x1 {
			m |= left
		}
		if x < x2 {
			m |= right
		}
		c.bits(x, y, m, dotted)
	}
}

func (c *canvas) glyphAt(cl cell) rune {
	if cl.ch != 0 {
		return cl.ch
	}
	if cl.mask == 0 {
		return ' '
	}
	return c.glyphs.junction(cl.mask, cl.dotted && !cl.solid)
}

// String renders the grid with trailing blanks trimmed from each row.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		var line strings.Builder
		for _, cl := range row {
			line.WriteRune(c.glyphAt(cl))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if y < len(c.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
