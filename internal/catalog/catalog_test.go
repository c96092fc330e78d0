package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallCatalog = `
version: 1
default_pattern: abstract-factory
languages: [python, javascript, java]
patterns:
  - id: abstract-factory
    name: Abstract Factory
    category: Creational
    tagline: Factories of factories.
    description: Families of related objects.
    diagram: "classDiagram\n  A <|-- B"
    roles:
      - {title: Factory, description: Creates, icon: boxes}
    code: {python: "pass", javascript: "// js", java: "class A {}"}
  - id: adapter
    name: Adapter
    category: Structural
    tagline: Translate.
    description: Converts an interface.
    diagram: "classDiagram\n  A --> B"
    roles:
      - {title: Adapter, description: Wraps, icon: layers}
    code: {python: "pass", javascript: "// js", java: "class B {}"}
  - id: singleton
    name: Singleton
    category: Creational
    tagline: Only one.
    description: One instance.
    diagram: "classDiagram\n  class S"
    roles:
      - {title: Singleton, description: Itself, icon: fingerprint}
    code: {python: "pass", javascript: "// js", java: "class S {}"}
`

func loadSmall(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load([]byte(smallCatalog))
	require.NoError(t, err)
	return c
}

func TestEmbeddedCatalogIsValid(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 23, c.Len())
	assert.Equal(t, "abstract-factory", c.DefaultID())
	assert.Equal(t, []Language{Python, JavaScript, Java}, c.Languages())

	for _, p := range c.All() {
		assert.NotEmpty(t, p.Roles, p.ID)
		assert.Len(t, p.Code, 3, p.ID)
		assert.Contains(t, p.Diagram, "classDiagram", p.ID)
	}
}

func TestGet(t *testing.T) {
	c := loadSmall(t)

	p, err := c.Get("adapter")
	require.NoError(t, err)
	assert.Equal(t, "Adapter", p.Name)
	assert.Equal(t, Structural, p.Category)

	_, err = c.Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, c.Has("nope"))
}

func TestAllIsStableAndFresh(t *testing.T) {
	c := loadSmall(t)

	first := c.All()
	first[0] = nil
	second := c.All()

	require.NotNil(t, second[0])
	ids := make([]string, 0, len(second))
	for _, p := range second {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"abstract-factory", "adapter", "singleton"}, ids)
}

func TestCodeFor(t *testing.T) {
	c := loadSmall(t)
	p, _ := c.Get("singleton")

	code, err := p.CodeFor(Java)
	require.NoError(t, err)
	assert.Equal(t, "class S {}", code)

	_, err = p.CodeFor(Language("rust"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown category",
			yaml: `patterns:
  - id: x
    name: X
    category: Functional
    roles: [{title: T}]
    code: {python: a, javascript: b, java: c}`,
			want: "invalid category",
		},
		{
			name: "missing language",
			yaml: `patterns:
  - id: x
    name: X
    category: Creational
    roles: [{title: T}]
    code: {python: a, javascript: b}`,
			want: "missing java code sample",
		},
		{
			name: "empty roles",
			yaml: `patterns:
  - id: x
    name: X
    category: Creational
    code: {python: a, javascript: b, java: c}`,
			want: "role list is empty",
		},
		{
			name: "duplicate id",
			yaml: `patterns:
  - id: x
    name: X
    category: Creational
    roles: [{title: T}]
    code: {python: a, javascript: b, java: c}
  - id: x
    name: Y
    category: Creational
    roles: [{title: T}]
    code: {python: a, javascript: b, java: c}`,
			want: "duplicate id",
		},
		{
			name: "dangling default",
			yaml: `default_pattern: ghost
patterns:
  - id: x
    name: X
    category: Creational
    roles: [{title: T}]
    code: {python: a, javascript: b, java: c}`,
			want: `default_pattern "ghost"`,
		},
		{
			name: "extra language",
			yaml: `patterns:
  - id: x
    name: X
    category: Creational
    roles: [{title: T}]
    code: {python: a, javascript: b, java: c, cobol: d}`,
			want: `unsupported language "cobol"`,
		},
		{
			name: "empty",
			yaml: `version: 1`,
			want: "no patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("patterns: [unterminated"))
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}

func TestDefaultsToFirstPatternAndAllLanguages(t *testing.T) {
	c, err := Load([]byte(`patterns:
  - id: only
    name: Only
    category: Behavioral
    roles: [{title: T}]
    code: {python: a, javascript: b, java: c}`))
	require.NoError(t, err)
	assert.Equal(t, "only", c.DefaultID())
	assert.Equal(t, Languages, c.Languages())
}

func TestParseHelpers(t *testing.T) {
	cat, err := ParseCategory("structural")
	require.NoError(t, err)
	assert.Equal(t, Structural, cat)

	_, err = ParseCategory("Nope")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	lang, err := ParseLanguage(" JavaScript ")
	require.NoError(t, err)
	assert.Equal(t, JavaScript, lang)
	assert.Equal(t, "JavaScript", lang.Label())

	_, err = ParseLanguage("rust")
	assert.ErrorIs(t, err, ErrInvalidLanguage)
}

func TestIndexGrouping(t *testing.T) {
	idx := NewIndex(loadSmall(t))

	assert.Equal(t, []Category{Creational, Structural}, idx.Categories())
	assert.False(t, idx.HasCategory(Behavioral))

	want := map[Category][]Summary{
		Creational: {
			{ID: "abstract-factory", Name: "Abstract Factory", Category: Creational},
			{ID: "singleton", Name: "Singleton", Category: Creational},
		},
		Structural: {
			{ID: "adapter", Name: "Adapter", Category: Structural},
		},
	}
	if diff := cmp.Diff(want, idx.ByCategory()); diff != "" {
		t.Errorf("ByCategory mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexFlatOrdered(t *testing.T) {
	idx := NewIndex(loadSmall(t))

	var ids []string
	for _, s := range idx.FlatOrdered() {
		ids = append(ids, s.ID)
	}
	// Flat order follows the grouping, not raw catalog order.
	assert.Equal(t, []string{"abstract-factory", "singleton", "adapter"}, ids)

	pos, ok := idx.Position("adapter")
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	assert.Equal(t, "adapter", idx.At(-1).ID)
	assert.Equal(t, "abstract-factory", idx.At(3).ID)
}

func TestIndexIsDeterministic(t *testing.T) {
	c := loadSmall(t)
	a, b := NewIndex(c), NewIndex(c)
	assert.Equal(t, a.FlatOrdered(), b.FlatOrdered())
	assert.Equal(t, a.ByCategory(), b.ByCategory())
}

func TestEmbeddedIndexCoversEveryPattern(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	idx := NewIndex(c)

	assert.Equal(t, c.Len(), idx.Len())
	assert.Equal(t, []Category{Creational, Structural, Behavioral}, idx.Categories())
	assert.Len(t, idx.Group(Creational), 5)
	assert.Len(t, idx.Group(Structural), 7)
	assert.Len(t, idx.Group(Behavioral), 11)
}
