// Package navigation owns the browser's selection state and the only
// transitions allowed on it.
package navigation

import (
	"errors"
	"fmt"

	"patternflow/internal/catalog"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrUnknownModal        = errors.New("unknown modal kind")
)

// Modal is the fullscreen overlay currently shown, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalDiagram
	ModalCode
)

func (m Modal) String() string {
	switch m {
	case ModalNone:
		return "none"
	case ModalDiagram:
		return "diagram"
	case ModalCode:
		return "code"
	}
	return fmt.Sprintf("modal(%d)", int(m))
}

// ParseModal resolves "diagram" or "code".
func ParseModal(s string) (Modal, error) {
	switch s {
	case "diagram":
		return ModalDiagram, nil
	case "code":
		return ModalCode, nil
	}
	return ModalNone, fmt.Errorf("%w: %q", ErrUnknownModal, s)
}

// State is the single mutable record of what the user is looking at.
type State struct {
	CurrentID string
	Language  catalog.Language
	// Expanded is the open sidebar group; empty when every group is collapsed.
	Expanded catalog.Category
	Modal    Modal
}

// HasExpanded reports whether some group is open.
func (s State) HasExpanded() bool {
	return s.Expanded != ""
}

// ModalOpen reports whether a fullscreen overlay is shown.
func (s State) ModalOpen() bool {
	return s.Modal != ModalNone
}
