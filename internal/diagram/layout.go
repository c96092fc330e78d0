package diagram

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/mattn/go-runewidth"
)

const (
	hGap        = 3
	minBoxWidth = 7
)

type box struct {
	class *Class
	idx   int
	layer int
	x, y  int
	w, h  int
	rows  []string
	// sep is the row index the member compartment starts at, or -1.
	sep    int
	header int
	top    ports
	bottom ports
}

func (b *box) center() int { return b.x + b.w/2 }

// ports spreads connection points along one side of a box.
type ports struct {
	keys []string
	xs   map[string]int
}

func (p *ports) add(key string) {
	if !slices.Contains(p.keys, key) {
		p.keys = append(p.keys, key)
	}
}

func (p *ports) place(b *box) {
	p.xs = make(map[string]int, len(p.keys))
	n := len(p.keys)
	for i, k := range p.keys {
		x := b.x + (i+1)*b.w/(n+1)
		p.xs[k] = min(max(x, b.x+1), b.x+b.w-2)
	}
}

// gap is the routing band below a layer. Each key gets its own row.
type gap struct {
	y    int
	keys []string
}

func (g *gap) add(key string) {
	if !slices.Contains(g.keys, key) {
		g.keys = append(g.keys, key)
	}
}

func (g *gap) rowY(key string) int {
	return g.y + 1 + slices.Index(g.keys, key)
}

type route struct {
	rel          Relation
	from, to     *box
	upper, lower *box
	same, long   bool
	lane         int
	upperPort    string
	lowerPort    string
	row1, row2   string
}

type scene struct {
	boxes  []*box
	byID   map[string]*box
	layers [][]*box
	gaps   []*gap
	routes []*route
	lanes  int
	width  int
	height int
	// contentWidth excludes the long-edge lanes.
	contentWidth int
	dagPreds     [][]int
}

func buildScene(d *Diagram, g *glyphSet, maxBox int) *scene {
	s := &scene{byID: make(map[string]*box, len(d.Classes))}
	for i, c := range d.Classes {
		b := measure(c, g, maxBox)
		b.idx = i
		s.boxes = append(s.boxes, b)
		s.byID[c.ID] = b
	}

	s.assignLayers(d.Relations)
	s.orderLayers()
	s.planRoutes(d.Relations)
	s.placeX()
	s.placeY()
	return s
}

func measure(c *Class, g *glyphSet, maxBox int) *box {
	b := &box{class: c, sep: -1}
	limit := max(maxBox-4, 3)
	fit := func(s string) string {
		return runewidth.Truncate(s, limit, g.ellipsis)
	}
	if c.Stereotype != "" {
		b.rows = append(b.rows, fit(g.stereoOpen+c.Stereotype+g.stereoClose))
	}
	b.rows = append(b.rows, fit(c.Label))
	b.header = len(b.rows)
	if len(c.Members) > 0 {
		b.sep = len(b.rows)
		for _, m := range c.Members {
			b.rows = append(b.rows, fit(m))
		}
	}

	widest := 0
	for _, r := range b.rows {
		widest = max(widest, runewidth.StringWidth(r))
	}
	b.w = max(widest+4, minBoxWidth)
	b.h = len(b.rows) + 2
	if b.sep >= 0 {
		b.h++
	}
	return b
}

// assignLayers places generalization parents above children, then every
// other relation source above its target. Edges that would close a cycle
// are left out of the layering and routed afterwards.
func (s *scene) assignLayers(rels []Relation) {
	n := len(s.boxes)
	preds := make([][]int, n)
	succs := make([][]int, n)

	ordered := slices.Clone(rels)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind.generalization() && !ordered[j].Kind.generalization()
	})

	reaches := func(from, to int) bool {
		seen := make([]bool, n)
		stack := []int{from}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if v == to {
				return true
			}
			if seen[v] {
				continue
			}
			seen[v] = true
			stack = append(stack, succs[v]...)
		}
		return false
	}

	for _, r := range ordered {
		u, v := s.byID[r.From].idx, s.byID[r.To].idx
		if u == v || slices.Contains(succs[u], v) || reaches(v, u) {
			continue
		}
		succs[u] = append(succs[u], v)
		preds[v] = append(preds[v], u)
	}

	layer := make([]int, n)
	done := make([]bool, n)
	var depth func(v int) int
	depth = func(v int) int {
		if done[v] {
			return layer[v]
		}
		l := 0
		for _, p := range preds[v] {
			l = max(l, depth(p)+1)
		}
		layer[v], done[v] = l, true
		return l
	}

	top := 0
	for v := range s.boxes {
		top = max(top, depth(v))
	}
	s.layers = make([][]*box, top+1)
	for v, b := range s.boxes {
		b.layer = layer[v]
		s.layers[b.layer] = append(s.layers[b.layer], b)
	}
	s.dagPreds = preds
}

// orderLayers runs one barycenter pass so children sit under their parents.
func (s *scene) orderLayers() {
	for l := 1; l < len(s.layers); l++ {
		pos := make(map[int]int, len(s.layers[l-1]))
		for i, b := range s.layers[l-1] {
			pos[b.idx] = i
		}
		key := make(map[*box]float64, len(s.layers[l]))
		for _, b := range s.layers[l] {
			sum, cnt := 0.0, 0
			for _, p := range s.dagPreds[b.idx] {
				if i, ok := pos[p]; ok {
					sum += float64(i)
					cnt++
				}
			}
			if cnt == 0 {
				key[b] = math.Inf(1)
			} else {
				key[b] = sum / float64(cnt)
			}
		}
		sort.SliceStable(s.layers[l], func(i, j int) bool {
			return key[s.layers[l][i]] < key[s.layers[l][j]]
		})
	}
}

func (s *scene) planRoutes(rels []Relation) {
	s.gaps = make([]*gap, len(s.layers))
	for i := range s.gaps {
		s.gaps[i] = &gap{}
	}

	for i, r := range rels {
		from, to := s.byID[r.From], s.byID[r.To]
		if from == to {
			continue
		}
		rt := &route{rel: r, from: from, to: to}
		kind := r.Kind.String()

		switch {
		case from.layer == to.layer:
			rt.same = true
			rt.upperPort = "out:" + kind
			rt.lowerPort = "in:" + kind
			from.bottom.add(rt.upperPort)
			to.bottom.add(rt.lowerPort)
			rt.row1 = fmt.Sprintf("same:%d", i)
			s.gaps[from.layer].add(rt.row1)

		default:
			rt.upper, rt.lower = from, to
			if from.layer > to.layer {
				rt.upper, rt.lower = to, from
			}
			rt.upperPort = "out:" + kind
			rt.lowerPort = "in:" + kind
			if rt.upper != from {
				rt.upperPort = "rev:" + kind
				rt.lowerPort = "rin:" + kind
			}
			rt.upper.bottom.add(rt.upperPort)
			rt.lower.top.add(rt.lowerPort)

			rt.row1 = fmt.Sprintf("src:%d:%s", rt.upper.idx, rt.upperPort)
			s.gaps[rt.upper.layer].add(rt.row1)
			if rt.lower.layer-rt.upper.layer > 1 {
				rt.long = true
				rt.lane = s.lanes
				s.lanes++
				rt.row2 = fmt.Sprintf("lane:%d", rt.lane)
				s.gaps[rt.lower.layer-1].add(rt.row2)
			}
		}
		s.routes = append(s.routes, rt)
	}
}

func (s *scene) placeX() {
	for _, layer := range s.layers {
		w := 0
		for i, b := range layer {
			if i > 0 {
				w += hGap
			}
			w += b.w
		}
		s.contentWidth = max(s.contentWidth, w)
	}
	for _, layer := range s.layers {
		w := 0
		for i, b := range layer {
			if i > 0 {
				w += hGap
			}
			w += b.w
		}
		x := (s.contentWidth - w) / 2
		for _, b := range layer {
			b.x = x
			x += b.w + hGap
			b.top.place(b)
			b.bottom.place(b)
		}
	}
	s.width = s.contentWidth
	if s.lanes > 0 {
		s.width = s.laneX(s.lanes-1) + 1
	}
}

func (s *scene) laneX(lane int) int {
	return s.contentWidth + 1 + 2*lane
}

func (s *scene) placeY() {
	y := 0
	for l, layer := range s.layers {
		tallest := 0
		for _, b := range layer {
			b.y = y
			tallest = max(tallest, b.h)
		}
		y += tallest
		g := s.gaps[l]
		g.y = y
		switch {
		case len(g.keys) > 0:
			y += len(g.keys) + 2
		case l < len(s.layers)-1:
			y++
		}
	}
	s.height = y
}
