package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"patternflow/internal/catalog"
)

func TestHighlightAddsEscapes(t *testing.T) {
	h := New(DefaultDarkStyle, DefaultFormatter)
	code := "def build(self):\n    return 42"

	out := h.Highlight(code, catalog.Python)
	assert.NotEqual(t, code, out)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "build")
}

func TestHighlightUnknownLanguageIsPlain(t *testing.T) {
	h := New(DefaultLightStyle, DefaultFormatter)
	code := "IDENTIFICATION DIVISION."
	assert.Equal(t, code, h.Highlight(code, catalog.Language("no-such-language-xyz")))
}

func TestUnknownNamesFallBack(t *testing.T) {
	h := New("no-such-style", "no-such-formatter")
	assert.NotEmpty(t, h.StyleName())
	assert.NotEmpty(t, h.Highlight("class A {}", catalog.Java))
}

func TestSupportedLanguages(t *testing.T) {
	for _, lang := range catalog.Languages {
		assert.True(t, Supported(lang), lang)
	}
}
