package ui

// Layout constants for the browser frame
const (
	DefaultSidebarWidth = 30
	MinSidebarWidth     = 16

	PanelBorderWidth = 1
	PanelPaddingH    = 1
	MainPaddingH     = 2

	FooterHeight     = 1
	TabBarHeight     = 1
	MinCodeHeight    = 6
	ModalMargin      = 2
	RoleCardMinWidth = 28

	// Below CompactModeWidth role cards stack and the sidebar drops its key hints.
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 16
	CompactModeWidth      = 90
)

// Layout holds computed frame dimensions for one terminal size.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	IsCompact    bool
}

// NewLayout computes the frame for the terminal size. sidebar is the
// configured sidebar width; it is clamped so the main pane keeps at least
// two thirds of the screen.
func NewLayout(width, height, sidebar int) Layout {
	if sidebar < MinSidebarWidth {
		sidebar = DefaultSidebarWidth
	}
	if limit := width / 3; sidebar > limit {
		sidebar = max(limit, MinSidebarWidth)
	}
	return Layout{
		Width:        width,
		Height:       height,
		SidebarWidth: sidebar,
		IsCompact:    width < CompactModeWidth,
	}
}

// TooSmall reports whether the terminal cannot fit the frame.
func (l Layout) TooSmall() bool {
	return l.Width < MinimumTerminalWidth || l.Height < MinimumTerminalHeight
}

// MainWidth is the width right of the sidebar border.
func (l Layout) MainWidth() int {
	return max(l.Width-l.SidebarWidth-1, 0)
}

// MainContentWidth is the main pane width minus its padding.
func (l Layout) MainContentWidth() int {
	return max(l.MainWidth()-MainPaddingH*2, 0)
}

// BodyHeight is the height above the footer.
func (l Layout) BodyHeight() int {
	return max(l.Height-FooterHeight, 0)
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return max(panelWidth-PanelBorderWidth*2-PanelPaddingH*2, 0)
}

// RoleColumns is how many role cards fit side by side.
func (l Layout) RoleColumns() int {
	return max(min(l.MainContentWidth()/RoleCardMinWidth, 3), 1)
}

// ModalSize is the outer size of a fullscreen overlay.
func (l Layout) ModalSize() (width, height int) {
	return max(l.Width-ModalMargin*2, 0), max(l.BodyHeight()-ModalMargin, 0)
}
