package diagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultMaxBoxWidth bounds a class box including its borders.
const DefaultMaxBoxWidth = 44

// Options tune the drawing.
type Options struct {
	// ASCII restricts output to 7-bit characters.
	ASCII       bool
	MaxBoxWidth int
}

// Render parses src and draws it. Failures wrap ErrRender; a cancelled
// context returns ctx.Err().
func Render(ctx context.Context, src string, opts Options) (out string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d, err := Parse(src)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()
	return Draw(d, opts), nil
}

// Draw lays out a parsed diagram and returns the text drawing.
func Draw(d *Diagram, opts Options) string {
	g := &unicodeGlyphs
	if opts.ASCII {
		g = &asciiGlyphs
	}
	maxBox := opts.MaxBoxWidth
	if maxBox <= 0 {
		maxBox = DefaultMaxBoxWidth
	}

	s := buildScene(d, g, maxBox)

	labelRoom := 0
	for _, rt := range s.routes {
		if rt.rel.Label != "" {
			labelRoom = max(labelRoom, runewidth.StringWidth(rt.rel.Label)+2)
		}
	}

	c := newCanvas(s.width+labelRoom, max(s.height, 1), g)
	for _, b := range s.boxes {
		drawBox(c, b, g)
	}
	for _, rt := range s.routes {
		drawRoute(c, s, rt, g)
	}
	for _, rt := range s.routes {
		drawLabel(c, s, rt)
	}

	out := c.String()
	if len(d.Notes) > 0 {
		var b strings.Builder
		b.WriteString(out)
		b.WriteString("\n")
		for _, n := range d.Notes {
			b.WriteString("\n")
			if n.For != "" {
				fmt.Fprintf(&b, "note for %s: %s", n.For, n.Text)
			} else {
				fmt.Fprintf(&b, "note: %s", n.Text)
			}
		}
		out = b.String()
	}
	return out
}

func drawBox(c *canvas, b *box, g *glyphSet) {
	right, bottom := b.x+b.w-1, b.y+b.h-1

	c.set(b.x, b.y, g.tl)
	c.set(right, b.y, g.tr)
	c.set(b.x, bottom, g.bl)
	c.set(right, bottom, g.br)
	for x := b.x + 1; x < right; x++ {
		c.set(x, b.y, g.h)
		c.set(x, bottom, g.h)
	}

	y := b.y + 1
	for i, row := range b.rows {
		if i == b.sep {
			c.set(b.x, y, g.teeRight)
			c.set(right, y, g.teeLeft)
			for x := b.x + 1; x < right; x++ {
				c.set(x, y, g.h)
			}
			y++
		}
		c.set(b.x, y, g.v)
		c.set(right, y, g.v)
		if i < b.header {
			pad := (b.w - 2 - runewidth.StringWidth(row)) / 2
			c.text(b.x+1+pad, y, row)
		} else {
			c.text(b.x+2, y, row)
		}
		y++
	}

	for _, x := range b.top.xs {
		c.set(x, b.y, g.teeUp)
	}
	for _, x := range b.bottom.xs {
		c.set(x, bottom, g.teeDown)
	}
}

func drawRoute(c *canvas, s *scene, rt *route, g *glyphSet) {
	dotted := rt.rel.Kind.Dotted()

	type end struct {
		x, y       int
		pointingUp bool
	}
	var fromEnd, toEnd end

	if rt.same {
		ax, bx := rt.from.bottom.xs[rt.upperPort], rt.to.bottom.xs[rt.lowerPort]
		ay, by := rt.from.y+rt.from.h, rt.to.y+rt.to.h
		r := s.gaps[rt.from.layer].rowY(rt.row1)
		c.vline(ax, ay, r, dotted)
		c.hline(r, ax, bx, dotted)
		c.vline(bx, r, by, dotted)
		fromEnd = end{ax, ay, true}
		toEnd = end{bx, by, true}
	} else {
		ux, uy := rt.upper.bottom.xs[rt.upperPort], rt.upper.y+rt.upper.h
		lx, ly := rt.lower.top.xs[rt.lowerPort], rt.lower.y-1
		r1 := s.gaps[rt.upper.layer].rowY(rt.row1)

		c.vline(ux, uy, r1, dotted)
		if rt.long {
			lane := s.laneX(rt.lane)
			r2 := s.gaps[rt.lower.layer-1].rowY(rt.row2)
			c.hline(r1, ux, lane, dotted)
			c.vline(lane, r1, r2, dotted)
			c.hline(r2, lane, lx, dotted)
			c.vline(lx, r2, ly, dotted)
		} else {
			c.hline(r1, ux, lx, dotted)
			c.vline(lx, r1, ly, dotted)
		}

		upperEnd, lowerEnd := end{ux, uy, true}, end{lx, ly, false}
		if rt.upper == rt.from {
			fromEnd, toEnd = upperEnd, lowerEnd
		} else {
			fromEnd, toEnd = lowerEnd, upperEnd
		}
	}

	k := rt.rel.Kind
	if k.HeadAtFrom() {
		c.set(fromEnd.x, fromEnd.y, g.head(k, fromEnd.pointingUp))
	}
	if k.HeadAtTo() {
		c.set(toEnd.x, toEnd.y, g.head(k, toEnd.pointingUp))
	}
}

// drawLabel writes a relation label on its first routing row, to the right
// of the connector, into blank cells only.
func drawLabel(c *canvas, s *scene, rt *route) {
	if rt.rel.Label == "" {
		return
	}
	var y, x int
	if rt.same {
		y = s.gaps[rt.from.layer].rowY(rt.row1)
		x = max(rt.from.bottom.xs[rt.upperPort], rt.to.bottom.xs[rt.lowerPort])
	} else {
		y = s.gaps[rt.upper.layer].rowY(rt.row1)
		x = max(rt.upper.bottom.xs[rt.upperPort], rt.lower.top.xs[rt.lowerPort])
		if rt.long {
			x = s.laneX(rt.lane)
		}
	}
	x += 2
	for _, r := range rt.rel.Label {
		if !c.in(x, y) {
			return
		}
		cl := c.cells[y][x]
		if cl.ch != 0 || cl.mask != 0 {
			return
		}
		c.set(x, y, r)
		x++
	}
}
