// Package highlight colours code samples for the terminal with chroma.
// Any failure degrades to the unmodified code.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"patternflow/internal/catalog"
	"patternflow/internal/logging"
)

const (
	DefaultFormatter  = "terminal256"
	DefaultLightStyle = "github"
	DefaultDarkStyle  = "monokai"
)

// Highlighter is safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// New resolves a chroma style and terminal formatter by name. Unknown names
// fall back to the chroma defaults.
func New(style, formatter string) *Highlighter {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	f := formatters.Get(formatter)
	if f == nil {
		f = formatters.Get(DefaultFormatter)
	}
	return &Highlighter{style: s, formatter: f}
}

// StyleName reports the resolved style.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Highlight returns code with ANSI colour sequences for lang. An unknown
// language or a tokeniser error returns code unchanged.
func (h *Highlighter) Highlight(code string, lang catalog.Language) string {
	lexer := lexers.Get(string(lang))
	if lexer == nil {
		logging.RenderDebug("No lexer for %q, showing plain code", lang)
		return code
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		logging.RenderWarn("Tokenise %s failed: %v", lang, err)
		return code
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		logging.RenderWarn("Format %s failed: %v", lang, err)
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}

// Supported reports whether chroma has a lexer for lang.
func Supported(lang catalog.Language) bool {
	return lexers.Get(string(lang)) != nil
}
