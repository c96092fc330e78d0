package navigation

import (
	"fmt"
	"slices"

	"patternflow/internal/catalog"
	"patternflow/internal/logging"
)

// Controller applies user intents to State. It is not safe for concurrent
// use; the UI update loop is its only caller.
type Controller struct {
	cat   *catalog.Catalog
	idx   *catalog.Index
	state State
}

// Options override the startup defaults. Zero values keep the catalog defaults.
type Options struct {
	InitialID       string
	InitialLanguage catalog.Language
}

// NewController builds a controller in its default state.
func NewController(cat *catalog.Catalog, idx *catalog.Index) *Controller {
	c := &Controller{cat: cat, idx: idx}
	c.Reset()
	return c
}

// NewControllerWithOptions applies opts on top of the defaults. Invalid
// options are ignored with a log line, never surfaced.
func NewControllerWithOptions(cat *catalog.Catalog, idx *catalog.Index, opts Options) *Controller {
	c := NewController(cat, idx)
	if opts.InitialID != "" {
		if err := c.SelectPattern(opts.InitialID); err != nil {
			logging.Get(logging.CategoryNavigation).Warn("Ignoring initial pattern: %v", err)
		}
	}
	if opts.InitialLanguage != "" {
		if err := c.SetLanguage(opts.InitialLanguage); err != nil {
			logging.Get(logging.CategoryNavigation).Warn("Ignoring initial language: %v", err)
		}
	}
	return c
}

// Reset restores the default state: the catalog's default pattern, the
// first language, the default pattern's category expanded, no modal.
func (c *Controller) Reset() {
	s := State{CurrentID: c.cat.DefaultID(), Modal: ModalNone}
	if langs := c.cat.Languages(); len(langs) > 0 {
		s.Language = langs[0]
	}
	if p, err := c.cat.Get(s.CurrentID); err == nil {
		s.Expanded = p.Category
	}
	c.state = s
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Catalog returns the catalog the controller navigates.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

// Index returns the derived index.
func (c *Controller) Index() *catalog.Index {
	return c.idx
}

// SelectPattern makes id current and expands its category. An unknown id
// returns catalog.ErrNotFound and leaves the state untouched.
func (c *Controller) SelectPattern(id string) error {
	p, err := c.cat.Get(id)
	if err != nil {
		logging.NavigationDebug("SelectPattern(%q) rejected: %v", id, err)
		return err
	}
	c.state.CurrentID = p.ID
	c.state.Expanded = p.Category
	logging.NavigationDebug("Selected %s (%s)", p.ID, p.Category)
	return nil
}

// SelectNext moves forward along the flat order, wrapping at the end.
// It is a no-op while a modal is open.
func (c *Controller) SelectNext() bool {
	return c.step(1)
}

// SelectPrevious moves backward along the flat order, wrapping at the start.
// It is a no-op while a modal is open.
func (c *Controller) SelectPrevious() bool {
	return c.step(-1)
}

func (c *Controller) step(delta int) bool {
	if c.state.ModalOpen() || c.idx.Len() == 0 {
		return false
	}
	pos, ok := c.idx.Position(c.state.CurrentID)
	if !ok {
		pos = 0
		delta = 0
	}
	next := c.idx.At(pos + delta)
	return c.SelectPattern(next.ID) == nil
}

// ToggleCategory opens cat, or collapses it when it is already open.
// At most one category is expanded at a time.
func (c *Controller) ToggleCategory(cat catalog.Category) error {
	if !c.idx.HasCategory(cat) {
		logging.NavigationDebug("ToggleCategory(%q) rejected", cat)
		return fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	if c.state.Expanded == cat {
		c.state.Expanded = ""
	} else {
		c.state.Expanded = cat
	}
	logging.NavigationDebug("Expanded category now %q", c.state.Expanded)
	return nil
}

// SetLanguage switches the code sample language.
func (c *Controller) SetLanguage(lang catalog.Language) error {
	if !slices.Contains(c.cat.Languages(), lang) {
		logging.NavigationDebug("SetLanguage(%q) rejected", lang)
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	c.state.Language = lang
	return nil
}

// CycleLanguage moves through the language list by delta with wraparound.
func (c *Controller) CycleLanguage(delta int) catalog.Language {
	langs := c.cat.Languages()
	if len(langs) == 0 {
		return c.state.Language
	}
	i := slices.Index(langs, c.state.Language)
	if i < 0 {
		i = 0
	}
	n := len(langs)
	c.state.Language = langs[((i+delta)%n+n)%n]
	return c.state.Language
}

// OpenModal shows a fullscreen overlay.
func (c *Controller) OpenModal(kind Modal) error {
	if kind != ModalDiagram && kind != ModalCode {
		return fmt.Errorf("%w: %v", ErrUnknownModal, kind)
	}
	c.state.Modal = kind
	logging.NavigationDebug("Opened %s modal", kind)
	return nil
}

// CloseModal hides any overlay.
func (c *Controller) CloseModal() {
	c.state.Modal = ModalNone
}
