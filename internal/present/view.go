// Package present derives the complete view model for one frame from the
// catalog, its index and the selection state. It performs no I/O.
package present

import (
	"fmt"

	"patternflow/internal/catalog"
	"patternflow/internal/navigation"
)

// View is everything a renderer needs to draw one frame.
type View struct {
	Header    Header
	Sidebar   []Group
	Diagram   string
	Roles     []catalog.Role
	Tabs      []Tab
	Language  catalog.Language
	Code      string
	Modal     navigation.Modal
	ModalText string
	Prev      catalog.Summary
	Next      catalog.Summary
}

// Header is the title block of the detail pane.
type Header struct {
	ID          string
	Category    catalog.Category
	Name        string
	Tagline     string
	Description string
}

// Group is one accordion section of the sidebar.
type Group struct {
	Category  catalog.Category
	Expanded  bool
	HasActive bool
	Items     []Item
}

// Item is one sidebar row.
type Item struct {
	ID     string
	Name   string
	Active bool
}

// Tab is one language tab of the code panel.
type Tab struct {
	Language catalog.Language
	Label    string
	Active   bool
}

// Build assembles the view for state. A current id missing from the catalog
// yields catalog.ErrNotFound so the caller can keep its previous frame.
func Build(cat *catalog.Catalog, idx *catalog.Index, state navigation.State) (View, error) {
	p, err := cat.Get(state.CurrentID)
	if err != nil {
		return View{}, err
	}

	v := View{
		Header: Header{
			ID:          p.ID,
			Category:    p.Category,
			Name:        p.Name,
			Tagline:     p.Tagline,
			Description: p.Description,
		},
		Diagram:  p.Diagram,
		Roles:    p.Roles,
		Language: state.Language,
		Modal:    state.Modal,
	}

	for _, c := range idx.Categories() {
		g := Group{Category: c, Expanded: state.Expanded == c}
		for _, s := range idx.Group(c) {
			active := s.ID == p.ID
			g.HasActive = g.HasActive || active
			g.Items = append(g.Items, Item{ID: s.ID, Name: s.Name, Active: active})
		}
		v.Sidebar = append(v.Sidebar, g)
	}

	for _, lang := range cat.Languages() {
		v.Tabs = append(v.Tabs, Tab{Language: lang, Label: lang.Label(), Active: lang == state.Language})
	}
	if code, err := p.CodeFor(state.Language); err == nil {
		v.Code = code
	}

	if pos, ok := idx.Position(p.ID); ok {
		v.Prev = idx.At(pos - 1)
		v.Next = idx.At(pos + 1)
	}

	v.ModalText = ModalTitle(p, state)
	return v, nil
}

// ModalTitle is the overlay heading for the state's modal, or "".
func ModalTitle(p *catalog.Pattern, state navigation.State) string {
	switch state.Modal {
	case navigation.ModalDiagram:
		return fmt.Sprintf("UML: %s", p.Name)
	case navigation.ModalCode:
		return fmt.Sprintf("Code: %s (%s)", p.Name, state.Language)
	}
	return ""
}
