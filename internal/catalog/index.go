package catalog

import "slices"

// Index holds the sidebar grouping and the flat navigation ring.
// Both views are computed once in NewIndex.
type Index struct {
	byCategory map[Category][]Summary
	order      []Category
	flat       []Summary
	position   map[string]int
}

// NewIndex derives the index from c.
func NewIndex(c *Catalog) *Index {
	idx := &Index{
		byCategory: make(map[Category][]Summary),
		position:   make(map[string]int, c.Len()),
	}
	for _, p := range c.patterns {
		if _, seen := idx.byCategory[p.Category]; !seen {
			idx.order = append(idx.order, p.Category)
		}
		idx.byCategory[p.Category] = append(idx.byCategory[p.Category], p.summary())
	}
	for _, cat := range idx.order {
		for _, s := range idx.byCategory[cat] {
			idx.position[s.ID] = len(idx.flat)
			idx.flat = append(idx.flat, s)
		}
	}
	return idx
}

// ByCategory returns a copy of the grouping. Empty categories are absent.
func (idx *Index) ByCategory() map[Category][]Summary {
	out := make(map[Category][]Summary, len(idx.byCategory))
	for k, v := range idx.byCategory {
		out[k] = slices.Clone(v)
	}
	return out
}

// Categories returns the group keys in order of first appearance.
func (idx *Index) Categories() []Category {
	return slices.Clone(idx.order)
}

// Group returns the patterns of one category, or nil.
func (idx *Index) Group(cat Category) []Summary {
	return slices.Clone(idx.byCategory[cat])
}

// HasCategory reports whether cat has at least one pattern.
func (idx *Index) HasCategory(cat Category) bool {
	_, ok := idx.byCategory[cat]
	return ok
}

// FlatOrdered is the concatenation of the groups in Categories order.
func (idx *Index) FlatOrdered() []Summary {
	return slices.Clone(idx.flat)
}

// Len is the size of the navigation ring.
func (idx *Index) Len() int {
	return len(idx.flat)
}

// At returns the ring entry at i, wrapping in both directions.
func (idx *Index) At(i int) Summary {
	n := len(idx.flat)
	return idx.flat[((i%n)+n)%n]
}

// Position returns the ring position of id.
func (idx *Index) Position(id string) (int, bool) {
	i, ok := idx.position[id]
	return i, ok
}
