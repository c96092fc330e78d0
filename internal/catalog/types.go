package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a pattern id, language tag or category
	// does not resolve against the catalog.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCategory is returned for a category label outside the closed set.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidLanguage is returned for a language tag outside the closed set.
	ErrInvalidLanguage = errors.New("invalid language")
)

// Category groups patterns in the sidebar.
type Category string

const (
	Creational Category = "Creational"
	Structural Category = "Structural"
	Behavioral Category = "Behavioral"
)

// Categories lists the closed category set in canonical order.
var Categories = []Category{Creational, Structural, Behavioral}

// ParseCategory resolves a label case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Language is a code sample language tag.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	Java       Language = "java"
)

// Languages lists the supported tags in display order.
var Languages = []Language{Python, JavaScript, Java}

// ParseLanguage resolves a tag case-insensitively.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
}

// Label is the human-facing tab label.
func (l Language) Label() string {
	switch l {
	case JavaScript:
		return "JavaScript"
	case Python:
		return "Python"
	case Java:
		return "Java"
	}
	return string(l)
}

// Role describes one participant of a pattern.
type Role struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Pattern is one catalog entry. Immutable after Load.
type Pattern struct {
	ID          string
	Name        string
	Category    Category
	Tagline     string
	Description string
	Diagram     string
	Roles       []Role
	Code        map[Language]string
}

// CodeFor returns the sample for lang.
func (p *Pattern) CodeFor(lang Language) (string, error) {
	code, ok := p.Code[lang]
	if !ok {
		return "", fmt.Errorf("%w: no %s sample for %s", ErrNotFound, lang, p.ID)
	}
	return code, nil
}

// Summary is the sidebar projection of a Pattern.
type Summary struct {
	ID       string
	Name     string
	Category Category
}

func (p *Pattern) summary() Summary {
	return Summary{ID: p.ID, Name: p.Name, Category: p.Category}
}
