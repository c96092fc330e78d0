// Package catalog holds the immutable design pattern catalog and the
// index derived from it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"patternflow/internal/logging"
)

//go:embed patterns.yaml
var embedded []byte

// document is the on-disk shape of patterns.yaml.
type document struct {
	Version        int          `yaml:"version"`
	DefaultPattern string       `yaml:"default_pattern"`
	Languages      []string     `yaml:"languages"`
	Patterns       []rawPattern `yaml:"patterns"`
}

type rawPattern struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Category    string            `yaml:"category"`
	Tagline     string            `yaml:"tagline"`
	Description string            `yaml:"description"`
	Diagram     string            `yaml:"diagram"`
	Roles       []Role            `yaml:"roles"`
	Code        map[string]string `yaml:"code"`
}

// ValidationError lists every problem found while loading a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Catalog is the read-only pattern collection.
type Catalog struct {
	patterns  []*Pattern
	byID      map[string]*Pattern
	defaultID string
	languages []Language
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog embedded in the binary. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(embedded)
		if defaultErr == nil {
			logging.Catalog("Loaded embedded catalog: %d patterns, default %s", defaultCat.Len(), defaultCat.DefaultID())
		} else {
			logging.Get(logging.CategoryCatalog).Error("Embedded catalog invalid: %v", defaultErr)
		}
	})
	return defaultCat, defaultErr
}

// Load parses and validates catalog YAML.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	c := &Catalog{byID: make(map[string]*Pattern, len(doc.Patterns))}

	if len(doc.Languages) == 0 {
		c.languages = slices.Clone(Languages)
	} else {
		for _, tag := range doc.Languages {
			lang, err := ParseLanguage(tag)
			if err != nil {
				addf("languages: %v", err)
				continue
			}
			c.languages = append(c.languages, lang)
		}
	}

	if len(doc.Patterns) == 0 {
		addf("catalog has no patterns")
	}

	for i, raw := range doc.Patterns {
		where := fmt.Sprintf("patterns[%d]", i)
		if raw.ID != "" {
			where = raw.ID
		}
		if raw.ID == "" {
			addf("%s: missing id", where)
			continue
		}
		if _, dup := c.byID[raw.ID]; dup {
			addf("%s: duplicate id", where)
			continue
		}
		if strings.TrimSpace(raw.Name) == "" {
			addf("%s: missing name", where)
		}
		cat, err := ParseCategory(raw.Category)
		if err != nil {
			addf("%s: %v", where, err)
		}
		if len(raw.Roles) == 0 {
			addf("%s: role list is empty", where)
		}
		for j, r := range raw.Roles {
			if strings.TrimSpace(r.Title) == "" {
				addf("%s: roles[%d] missing title", where, j)
			}
		}

		code := make(map[Language]string, len(c.languages))
		for tag, sample := range raw.Code {
			lang, err := ParseLanguage(tag)
			if err != nil || !slices.Contains(c.languages, lang) {
				addf("%s: code sample for unsupported language %q", where, tag)
				continue
			}
			code[lang] = sample
		}
		for _, lang := range c.languages {
			if _, ok := code[lang]; !ok {
				addf("%s: missing %s code sample", where, lang)
			}
		}

		p := &Pattern{
			ID:          raw.ID,
			Name:        raw.Name,
			Category:    cat,
			Tagline:     raw.Tagline,
			Description: raw.Description,
			Diagram:     raw.Diagram,
			Roles:       slices.Clone(raw.Roles),
			Code:        code,
		}
		c.patterns = append(c.patterns, p)
		c.byID[p.ID] = p
	}

	c.defaultID = doc.DefaultPattern
	if c.defaultID == "" && len(c.patterns) > 0 {
		c.defaultID = c.patterns[0].ID
	}
	if _, ok := c.byID[c.defaultID]; !ok && len(c.patterns) > 0 {
		addf("default_pattern %q is not in the catalog", c.defaultID)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return c, nil
}

// Get returns the pattern with the given id.
func (c *Catalog) Get(id string) (*Pattern, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("pattern %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every pattern in catalog order. The slice is fresh on each call.
func (c *Catalog) All() []*Pattern {
	return slices.Clone(c.patterns)
}

// Len returns the number of patterns.
func (c *Catalog) Len() int {
	return len(c.patterns)
}

// DefaultID is the pattern shown on startup.
func (c *Catalog) DefaultID() string {
	return c.defaultID
}

// Languages returns the supported languages in display order.
func (c *Catalog) Languages() []Language {
	return slices.Clone(c.languages)
}

// IsValidation reports whether err came from catalog validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
