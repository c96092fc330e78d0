package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patternflow/internal/catalog"
)

const threePatterns = `
default_pattern: abstract-factory
languages: [python, javascript, java]
patterns:
  - id: abstract-factory
    name: Abstract Factory
    category: Creational
    roles: [{title: Factory}]
    code: {python: "af py", javascript: "af js", java: "af java"}
  - id: singleton
    name: Singleton
    category: Creational
    roles: [{title: Singleton}]
    code: {python: "s py", javascript: "s js", java: "s java"}
  - id: adapter
    name: Adapter
    category: Structural
    roles: [{title: Adapter}]
    code: {python: "a py", javascript: "a js", java: "a java"}
`

func newTestController(t *testing.T) *Controller {
	t.Helper()
	cat, err := catalog.Load([]byte(threePatterns))
	require.NoError(t, err)
	return NewController(cat, catalog.NewIndex(cat))
}

func newEmbeddedController(t *testing.T) *Controller {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewController(cat, catalog.NewIndex(cat))
}

func TestDefaults(t *testing.T) {
	c := newTestController(t)
	s := c.State()

	assert.Equal(t, "abstract-factory", s.CurrentID)
	assert.Equal(t, catalog.Python, s.Language)
	assert.Equal(t, catalog.Creational, s.Expanded)
	assert.Equal(t, ModalNone, s.Modal)
}

func TestSelectPatternExpandsCategory(t *testing.T) {
	c := newEmbeddedController(t)

	for _, p := range c.Catalog().All() {
		require.NoError(t, c.SelectPattern(p.ID))
		s := c.State()
		assert.Equal(t, p.ID, s.CurrentID)
		assert.Equal(t, p.Category, s.Expanded)
	}
}

func TestSelectPatternExpandsEvenWhenCollapsed(t *testing.T) {
	c := newTestController(t)
	require.NoError(t, c.ToggleCategory(catalog.Creational))
	require.False(t, c.State().HasExpanded())

	require.NoError(t, c.SelectPattern("singleton"))
	assert.Equal(t, catalog.Creational, c.State().Expanded)
}

func TestFullCycleReturnsHome(t *testing.T) {
	c := newEmbeddedController(t)
	start := c.State().CurrentID
	n := c.Index().Len()

	for i := 0; i < n; i++ {
		require.True(t, c.SelectNext())
	}
	assert.Equal(t, start, c.State().CurrentID)

	for i := 0; i < n; i++ {
		require.True(t, c.SelectPrevious())
	}
	assert.Equal(t, start, c.State().CurrentID)
}

func TestArrowsIgnoredWhileModalOpen(t *testing.T) {
	for _, kind := range []Modal{ModalDiagram, ModalCode} {
		t.Run(kind.String(), func(t *testing.T) {
			c := newTestController(t)
			require.NoError(t, c.OpenModal(kind))

			assert.False(t, c.SelectNext())
			assert.False(t, c.SelectPrevious())
			assert.Equal(t, "abstract-factory", c.State().CurrentID)

			c.CloseModal()
			assert.True(t, c.SelectNext())
			assert.Equal(t, "singleton", c.State().CurrentID)
		})
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	c := newTestController(t)

	require.NoError(t, c.ToggleCategory(catalog.Structural))
	assert.Equal(t, catalog.Structural, c.State().Expanded)

	require.NoError(t, c.ToggleCategory(catalog.Structural))
	assert.False(t, c.State().HasExpanded(), "second toggle must collapse, not re-expand")
}

func TestAtMostOneExpanded(t *testing.T) {
	c := newTestController(t)
	seq := []catalog.Category{
		catalog.Structural, catalog.Creational, catalog.Creational,
		catalog.Structural, catalog.Creational, catalog.Structural,
	}
	for _, cat := range seq {
		require.NoError(t, c.ToggleCategory(cat))
		s := c.State()
		if s.HasExpanded() {
			assert.Contains(t, []catalog.Category{catalog.Creational, catalog.Structural}, s.Expanded)
		}
	}
	assert.Equal(t, catalog.Structural, c.State().Expanded)
}

func TestToggleRejectsUnknownCategory(t *testing.T) {
	c := newTestController(t)
	before := c.State()

	err := c.ToggleCategory(catalog.Behavioral)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	err = c.ToggleCategory("Functional")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, before, c.State())
}

func TestInvalidInputIsNoop(t *testing.T) {
	c := newTestController(t)
	before := c.State()

	err := c.SelectPattern("does-not-exist")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, before, c.State())

	err = c.SetLanguage("cobol")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Equal(t, before, c.State())

	err = c.OpenModal(Modal(42))
	assert.ErrorIs(t, err, ErrUnknownModal)
	assert.Equal(t, before, c.State())
}

func TestScenarioNextAcrossCategories(t *testing.T) {
	c := newTestController(t)

	steps := []struct {
		id  string
		cat catalog.Category
	}{
		{"singleton", catalog.Creational},
		{"adapter", catalog.Structural},
		{"abstract-factory", catalog.Creational},
	}
	for _, step := range steps {
		require.True(t, c.SelectNext())
		s := c.State()
		assert.Equal(t, step.id, s.CurrentID)
		assert.Equal(t, step.cat, s.Expanded)
	}
}

func TestScenarioPreviousWraps(t *testing.T) {
	c := newTestController(t)
	require.True(t, c.SelectPrevious())
	assert.Equal(t, "adapter", c.State().CurrentID)
	assert.Equal(t, catalog.Structural, c.State().Expanded)
}

func TestScenarioSetLanguage(t *testing.T) {
	c := newTestController(t)
	require.Equal(t, catalog.Python, c.State().Language)

	require.NoError(t, c.SetLanguage(catalog.JavaScript))

	p, err := c.Catalog().Get(c.State().CurrentID)
	require.NoError(t, err)
	code, err := p.CodeFor(c.State().Language)
	require.NoError(t, err)
	assert.Equal(t, "af js", code)
}

func TestCycleLanguage(t *testing.T) {
	c := newTestController(t)

	assert.Equal(t, catalog.JavaScript, c.CycleLanguage(1))
	assert.Equal(t, catalog.Java, c.CycleLanguage(1))
	assert.Equal(t, catalog.Python, c.CycleLanguage(1))
	assert.Equal(t, catalog.Java, c.CycleLanguage(-1))
}

func TestLanguageSurvivesNavigation(t *testing.T) {
	c := newTestController(t)
	require.NoError(t, c.SetLanguage(catalog.Java))
	c.SelectNext()
	assert.Equal(t, catalog.Java, c.State().Language)
}

func TestOptionsAndReset(t *testing.T) {
	cat, err := catalog.Load([]byte(threePatterns))
	require.NoError(t, err)
	idx := catalog.NewIndex(cat)

	c := NewControllerWithOptions(cat, idx, Options{InitialID: "adapter", InitialLanguage: catalog.Java})
	assert.Equal(t, "adapter", c.State().CurrentID)
	assert.Equal(t, catalog.Structural, c.State().Expanded)
	assert.Equal(t, catalog.Java, c.State().Language)

	bad := NewControllerWithOptions(cat, idx, Options{InitialID: "ghost", InitialLanguage: "cobol"})
	assert.Equal(t, "abstract-factory", bad.State().CurrentID)
	assert.Equal(t, catalog.Python, bad.State().Language)

	c.Reset()
	assert.Equal(t, "abstract-factory", c.State().CurrentID)
}

func TestParseModal(t *testing.T) {
	m, err := ParseModal("diagram")
	require.NoError(t, err)
	assert.Equal(t, ModalDiagram, m)

	_, err = ParseModal("popup")
	assert.ErrorIs(t, err, ErrUnknownModal)
}
