package diagram

// glyphSet holds every character the renderer draws.
type glyphSet struct {
	h, v, dh, dv                      rune
	tl, tr, bl, br                    rune
	teeDown, teeUp, teeRight, teeLeft rune
	cross                             rune

	triangleUp, triangleDown rune
	arrowUp, arrowDown       rune
	diamondOpen, diamondFull rune

	stereoOpen, stereoClose string
	ellipsis                string
}

var unicodeGlyphs = glyphSet{
	h: '─', v: '│', dh: '┄', dv: '┆',
	tl: '┌', tr: '┐', bl: '└', br: '┘',
	teeDown: '┬', teeUp: '┴', teeRight: '├', teeLeft: '┤',
	cross: '┼',

	triangleUp: '△', triangleDown: '▽',
	arrowUp: '▲', arrowDown: '▼',
	diamondOpen: '◇', diamondFull: '◆',

	stereoOpen: "«", stereoClose: "»",
	ellipsis: "…",
}

var asciiGlyphs = glyphSet{
	h: '-', v: '|', dh: '.', dv: ':',
	tl: '+', tr: '+', bl: '+', br: '+',
	teeDown: '+', teeUp: '+', teeRight: '+', teeLeft: '+',
	cross: '+',

	triangleUp: '^', triangleDown: 'v',
	arrowUp: '^', arrowDown: 'v',
	diamondOpen: 'o', diamondFull: '*',

	stereoOpen: "<<", stereoClose: ">>",
	ellipsis: "~",
}

// junction resolves the accumulated connector bits of one cell.
func (g *glyphSet) junction(m uint8, dotted bool) rune {
	switch m {
	case up, down, up | down:
		if dotted {
			return g.dv
		}
		return g.v
	case left, right, left | right:
		if dotted {
			return g.dh
		}
		return g.h
	case down | right:
		return g.tl
	case down | left:
		return g.tr
	case up | right:
		return g.bl
	case up | left:
		return g.br
	case up | down | right:
		return g.teeRight
	case up | down | left:
		return g.teeLeft
	case down | left | right:
		return g.teeDown
	case up | left | right:
		return g.teeUp
	}
	return g.cross
}

// head returns the decoration drawn next to a box. pointingUp is true when
// the decoration sits under the box it belongs to.
func (g *glyphSet) head(k RelationKind, pointingUp bool) rune {
	switch k {
	case Inheritance, Realization:
		if pointingUp {
			return g.triangleUp
		}
		return g.triangleDown
	case Composition:
		return g.diamondFull
	case Aggregation:
		return g.diamondOpen
	}
	if pointingUp {
		return g.arrowUp
	}
	return g.arrowDown
}
