// Package ui provides the visual styling for the PatternFlow browser.
// One palette per mode; everything else derives from the Theme.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"patternflow/internal/catalog"
)

var (
	// Light mode
	LightBackground = lipgloss.Color("#ffffff")
	LightForeground = lipgloss.Color("#1e293b") // slate-800
	LightPrimary    = lipgloss.Color("#4f46e5") // indigo-600
	LightAccent     = lipgloss.Color("#0ea5e9") // sky-500
	LightSecondary  = lipgloss.Color("#f1f5f9") // slate-100
	LightMuted      = lipgloss.Color("#64748b") // slate-500
	LightBorder     = lipgloss.Color("#cbd5e1") // slate-300
	LightCard       = lipgloss.Color("#f8fafc") // slate-50

	// Dark mode
	DarkBackground = lipgloss.Color("#0f172a") // slate-900
	DarkForeground = lipgloss.Color("#e2e8f0") // slate-200
	DarkPrimary    = lipgloss.Color("#818cf8") // indigo-400
	DarkAccent     = lipgloss.Color("#38bdf8") // sky-400
	DarkSecondary  = lipgloss.Color("#1e293b")
	DarkMuted      = lipgloss.Color("#94a3b8")
	DarkBorder     = lipgloss.Color("#334155")
	DarkCard       = lipgloss.Color("#111827")

	// Semantic colours, shared by both modes
	Destructive = lipgloss.Color("#ef4444")
	Success     = lipgloss.Color("#22c55e")
	Warning     = lipgloss.Color("#f59e0b")

	// Category badges
	CreationalColor = lipgloss.Color("#10b981") // emerald
	StructuralColor = lipgloss.Color("#3b82f6") // blue
	BehavioralColor = lipgloss.Color("#a855f7") // purple
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectDark guesses whether the terminal background is dark from
// COLORFGBG ("fg;bg", bg 0-6 or 8 is dark) or PATTERNFLOW_DARK_MODE=1.
func DetectDark() bool {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) >= 2 {
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return true
			}
		}
	}
	return os.Getenv("PATTERNFLOW_DARK_MODE") == "1"
}

// ThemeFor returns the palette for the resolved mode.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// CategoryColor is the badge colour of a category.
func CategoryColor(c catalog.Category) lipgloss.Color {
	switch c {
	case catalog.Creational:
		return CreationalColor
	case catalog.Structural:
		return StructuralColor
	case catalog.Behavioral:
		return BehavioralColor
	}
	return LightMuted
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Sidebar lipgloss.Style
	Main    lipgloss.Style
	Footer  lipgloss.Style
	Panel   lipgloss.Style
	Modal   lipgloss.Style

	// Text
	Brand    lipgloss.Style
	Title    lipgloss.Style
	Tagline  lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Heading  lipgloss.Style
	Shortcut lipgloss.Style

	// Sidebar rows
	GroupHeader       lipgloss.Style
	GroupHeaderActive lipgloss.Style
	Item              lipgloss.Style
	ItemActive        lipgloss.Style

	// Code panel
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	CodeBlock lipgloss.Style

	// Cards
	RoleCard  lipgloss.Style
	RoleIcon  lipgloss.Style
	RoleTitle lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Sidebar: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1).
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Main: lipgloss.NewStyle().
			Padding(0, 2),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Brand: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Tagline: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Heading: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		Shortcut: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		GroupHeader: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Bold(true),

		GroupHeaderActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Item: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		ItemActive: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Primary).
			Bold(true).
			PaddingLeft(2),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		CodeBlock: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		RoleCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		RoleIcon: lipgloss.NewStyle().
			Foreground(theme.Primary),

		RoleTitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// Badge renders a category label in its colour.
func (s Styles) Badge(c catalog.Category) string {
	return lipgloss.NewStyle().
		Foreground(CategoryColor(c)).
		Bold(true).
		Render(strings.ToUpper(string(c)))
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
