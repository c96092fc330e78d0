package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"patternflow/cmd/patternflow/ui"
	"patternflow/internal/catalog"
	"patternflow/internal/navigation"
	"patternflow/internal/present"
)

type rowKind int

const (
	rowText rowKind = iota
	rowGroup
	rowItem
)

type sidebarRow struct {
	kind     rowKind
	text     string
	category catalog.Category
	id       string
	expanded bool
	active   bool
}

// sidebarRows lays out the accordion one row per line. The mouse handler
// indexes into the same slice, so row order is the screen order.
func sidebarRows(v present.View) []sidebarRow {
	rows := []sidebarRow{
		{kind: rowText, text: "PatternFlow"},
		{kind: rowText, text: "Design pattern catalog"},
		{kind: rowText},
	}
	for _, g := range v.Sidebar {
		rows = append(rows, sidebarRow{
			kind:     rowGroup,
			text:     string(g.Category),
			category: g.Category,
			expanded: g.Expanded,
			active:   g.HasActive,
		})
		if !g.Expanded {
			continue
		}
		for _, it := range g.Items {
			rows = append(rows, sidebarRow{kind: rowItem, text: it.Name, id: it.ID, active: it.Active})
		}
	}
	return rows
}

// View renders the frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading catalog..."
	}
	if m.layout.TooSmall() {
		return fmt.Sprintf("Terminal too small (%dx%d); need at least %dx%d.",
			m.layout.Width, m.layout.Height, ui.MinimumTerminalWidth, ui.MinimumTerminalHeight)
	}

	var body string
	if m.ctrl.State().ModalOpen() {
		body = m.modalView()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.mainView())
	}
	return body + "\n" + m.footerView()
}

func (m Model) sidebarView() string {
	s := m.styles
	inner := m.layout.SidebarWidth - 2
	clip := lipgloss.NewStyle().MaxWidth(inner)

	var lines []string
	for i, r := range sidebarRows(m.frame) {
		var line string
		switch r.kind {
		case rowText:
			switch i {
			case 0:
				line = s.Brand.Render(r.text)
			default:
				line = s.Muted.Render(r.text)
			}
		case rowGroup:
			arrow := "▸"
			if r.expanded {
				arrow = "▾"
			}
			style := s.GroupHeader
			if r.active {
				style = s.GroupHeaderActive
			}
			line = style.Render(arrow + " " + strings.ToUpper(r.text))
		case rowItem:
			if r.active {
				line = s.ItemActive.Width(inner).Render(r.text)
			} else {
				line = s.Item.Render(r.text)
			}
		}
		lines = append(lines, clip.Render(line))
	}

	height := m.layout.BodyHeight()
	if !m.layout.IsCompact {
		hints := []string{
			s.Shortcut.Render("↑↓") + s.Muted.Render(" navigate"),
			s.Shortcut.Render("tab") + s.Muted.Render(" language"),
		}
		if pad := height - len(lines) - len(hints); pad > 0 {
			lines = append(lines, make([]string, pad)...)
			lines = append(lines, hints...)
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	return s.Sidebar.
		Width(m.layout.SidebarWidth).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func (m Model) mainView() string {
	return m.styles.Main.
		Width(m.layout.MainWidth()).
		Render(m.detail.View())
}

// refreshContent rebuilds the scrollable detail pane and the modal body
// from the current frame.
func (m *Model) refreshContent() {
	w := m.layout.MainContentWidth()
	if w <= 0 {
		return
	}
	s := m.styles
	f := m.frame

	var b strings.Builder
	b.WriteString(s.Badge(f.Header.Category) + "\n")
	b.WriteString(s.Title.Render(f.Header.Name) + "\n")
	b.WriteString(s.Tagline.Render(f.Header.Tagline) + "\n")
	b.WriteString(m.markdown(f.Header.Description, w) + "\n\n")

	b.WriteString(s.Heading.Render("STRUCTURE") + "  " + s.Muted.Render("d expand") + "\n")
	b.WriteString(s.Panel.Width(w - 2).Render(m.clipLines(m.diagramBody(), ui.PanelContentWidth(w))) + "\n\n")

	b.WriteString(s.Heading.Render("PARTICIPANTS") + "\n")
	b.WriteString(m.rolesView(w) + "\n\n")

	m.tabRow = strings.Count(b.String(), "\n")
	bar, spans := m.tabBar()
	m.tabSpan = spans
	b.WriteString(bar + "\n")
	b.WriteString(s.Panel.Width(w - 2).Render(m.clipLines(m.codeBody(), ui.PanelContentWidth(w))))

	if f.Prev.ID != "" {
		b.WriteString("\n" + s.Muted.Render("↑ "+f.Prev.Name+"   ↓ "+f.Next.Name))
	}

	m.detail.SetContent(b.String())

	switch m.ctrl.State().Modal {
	case navigation.ModalDiagram:
		m.modal.SetContent(m.diagramBody())
	case navigation.ModalCode:
		m.modal.SetContent(m.codeBody())
	}
}

func (m Model) clipLines(text string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(text)
}

func (m Model) diagramBody() string {
	switch {
	case m.diagramID != m.frame.Header.ID:
		return m.styles.Muted.Render("rendering diagram...")
	case m.diagramErr != nil:
		return m.frame.Diagram + "\n\n" + m.styles.Warning.Render("diagram could not be drawn; showing source")
	case m.diagramText == "":
		return m.styles.Muted.Render("rendering diagram...")
	}
	return m.diagramText
}

func (m *Model) codeBody() string {
	f := m.frame
	k := ui.ComputeKey("code", f.Header.ID, string(f.Language), m.hl.StyleName())
	code := m.cache.GetOrCompute(k, func() string {
		return m.hl.Highlight(f.Code, f.Language)
	})

	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	width := len(strconv.Itoa(len(lines)))
	for i, l := range lines {
		lines[i] = m.styles.Muted.Render(fmt.Sprintf("%*d ", width, i+1)) + l
	}
	return strings.Join(lines, "\n")
}

func (m Model) rolesView(width int) string {
	cols := m.layout.RoleColumns()
	if m.layout.IsCompact {
		cols = 1
	}
	cardW := (width - (cols - 1)) / cols

	var rows, row []string
	for i, r := range m.frame.Roles {
		head := m.styles.RoleIcon.Render(present.Icon(r.Icon)) + " " + m.styles.RoleTitle.Render(r.Title)
		card := m.styles.RoleCard.Width(cardW - 2).Render(head + "\n" + m.styles.Muted.Render(r.Description))
		row = append(row, card)
		if len(row) == cols || i == len(m.frame.Roles)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, interleave(row, " ")...))
			row = nil
		}
	}
	return strings.Join(rows, "\n")
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

// tabBar renders the language tabs and returns the x span of each tab
// relative to the start of the line.
func (m Model) tabBar() (string, [][2]int) {
	var parts []string
	var spans [][2]int
	x := 0
	for i, t := range m.frame.Tabs {
		style := m.styles.Tab
		if t.Active {
			style = m.styles.TabActive
		}
		label := style.Render(fmt.Sprintf("%d %s", i+1, t.Label))
		w := lipgloss.Width(label)
		spans = append(spans, [2]int{x, x + w})
		parts = append(parts, label)
		x += w
	}
	bar := strings.Join(parts, "")

	status := m.styles.Muted.Render("y copy · f fullscreen")
	if m.copied {
		status = m.styles.Success.Render("✓ Copied")
	}
	return bar + "  " + status, spans
}

func (m Model) modalView() string {
	w, h := m.layout.ModalSize()
	p, err := m.ctrl.Catalog().Get(m.frame.Header.ID)
	title := ""
	if err == nil {
		title = present.ModalTitle(p, m.ctrl.State())
	}

	head := m.styles.Title.Render(title) + "  " + m.styles.Muted.Render("esc close")
	if m.ctrl.State().Modal == navigation.ModalCode {
		bar, _ := m.tabBar()
		head += "\n" + bar
	}
	box := m.styles.Modal.
		Width(w - 2).
		Height(h - 2).
		Render(head + "\n\n" + m.modal.View())
	return lipgloss.Place(m.layout.Width, m.layout.BodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) footerView() string {
	var keys help.KeyMap = m.keys
	if m.ctrl.State().ModalOpen() {
		keys = modalKeys{m.keys}
	}

	pos := ""
	if i, ok := m.ctrl.Index().Position(m.frame.Header.ID); ok {
		pos = fmt.Sprintf("%d/%d  ", i+1, m.ctrl.Index().Len())
	}
	return m.styles.Footer.Render(pos + m.help.View(keys))
}
