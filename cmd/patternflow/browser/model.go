// Package browser is the interactive terminal rendition of the catalog: a
// bubbletea program that owns the navigation controller and redraws the
// presentation view after every intent.
package browser

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"patternflow/cmd/patternflow/ui"
	"patternflow/internal/config"
	"patternflow/internal/diagram"
	"patternflow/internal/highlight"
	"patternflow/internal/logging"
	"patternflow/internal/navigation"
	"patternflow/internal/present"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Options configure a new Model.
type Options struct {
	Controller *navigation.Controller
	Config     *config.Config
	// Dark is the resolved theme at startup.
	Dark bool
	// Updates delivers reloaded configs; nil disables hot reload.
	Updates <-chan *config.Config
}

type copyResetMsg struct{ seq int }

type diagramRenderedMsg struct {
	seq  int
	id   string
	text string
	err  error
}

type configReloadedMsg struct{ cfg *config.Config }

// Model is the bubbletea model of the browser.
type Model struct {
	ctrl   *navigation.Controller
	cfg    *config.Config
	keys   keyMap
	help   help.Model
	styles ui.Styles
	layout ui.Layout
	dark   bool
	ready  bool

	hl      *highlight.Highlighter
	md      *glamour.TermRenderer
	mdWidth int
	cache   *ui.RenderCache

	detail viewport.Model
	modal  viewport.Model

	frame   present.View
	tabRow  int
	tabSpan [][2]int

	diagramSeq  int
	diagramID   string
	diagramText string
	diagramErr  error

	copied  bool
	copySeq int

	updates <-chan *config.Config
}

// New builds the model in the controller's current state.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := Model{
		ctrl:    opts.Controller,
		cfg:     cfg,
		keys:    defaultKeyMap(),
		help:    help.New(),
		cache:   ui.NewRenderCache(128),
		detail:  viewport.New(0, 0),
		modal:   viewport.New(0, 0),
		updates: opts.Updates,
	}
	m.applyTheme(opts.Dark)
	m.layout = ui.NewLayout(0, 0, cfg.UI.SidebarWidth)
	m.rebuildFrame()
	m.diagramSeq = 1
	m.diagramID = m.frame.Header.ID
	return m
}

// State is the selection the browser currently shows.
func (m Model) State() navigation.State {
	return m.ctrl.State()
}

// Init starts the first diagram render and the config listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.renderDiagram(m.diagramSeq, m.frame.Header.ID, m.frame.Diagram),
		m.waitForConfig(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case copyResetMsg:
		// Only the tick of the latest copy clears the flag.
		if msg.seq == m.copySeq {
			m.copied = false
			m.refreshContent()
		}
		return m, nil

	case diagramRenderedMsg:
		if msg.seq != m.diagramSeq {
			logging.RenderDebug("Dropping stale diagram %d for %s (latest %d)", msg.seq, msg.id, m.diagramSeq)
			return m, nil
		}
		m.diagramText, m.diagramErr = msg.text, msg.err
		if msg.err != nil {
			logging.RenderWarn("Diagram for %s fell back to source: %v", msg.id, msg.err)
		}
		m.refreshContent()
		return m, nil

	case configReloadedMsg:
		cmd := m.applyConfig(msg.cfg)
		return m, tea.Batch(cmd, m.waitForConfig())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modalOpen := m.ctrl.State().ModalOpen()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "q" && modalOpen {
			m.ctrl.CloseModal()
			cmd := m.sync()
			return m, cmd
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Close):
		m.ctrl.CloseModal()

	case key.Matches(msg, m.keys.Prev), key.Matches(msg, m.keys.Next):
		if modalOpen {
			// Arrows scroll the overlay instead of changing the selection.
			var cmd tea.Cmd
			m.modal, cmd = m.modal.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Prev) {
			m.ctrl.SelectPrevious()
		} else {
			m.ctrl.SelectNext()
		}

	case key.Matches(msg, m.keys.LangNext):
		m.ctrl.CycleLanguage(1)

	case key.Matches(msg, m.keys.LangPrev):
		m.ctrl.CycleLanguage(-1)

	case key.Matches(msg, m.keys.LangPick):
		n := int(msg.String()[0] - '1')
		if langs := m.ctrl.Catalog().Languages(); n < len(langs) {
			_ = m.ctrl.SetLanguage(langs[n])
		}

	case key.Matches(msg, m.keys.Toggle):
		_ = m.ctrl.ToggleCategory(m.frame.Header.Category)

	case key.Matches(msg, m.keys.Diagram):
		_ = m.ctrl.OpenModal(navigation.ModalDiagram)

	case key.Matches(msg, m.keys.Code):
		_ = m.ctrl.OpenModal(navigation.ModalCode)

	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyCode()
		return m, cmd

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		if modalOpen {
			m.modal, cmd = m.modal.Update(msg)
		} else {
			m.detail, cmd = m.detail.Update(msg)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	default:
		return m, nil
	}
	cmd := m.sync()
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.cfg.UI.Mouse {
		return m, nil
	}
	if m.ctrl.State().ModalOpen() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if msg.X < m.layout.SidebarWidth {
		rows := sidebarRows(m.frame)
		if msg.Y < 0 || msg.Y >= len(rows) {
			return m, nil
		}
		switch r := rows[msg.Y]; r.kind {
		case rowGroup:
			_ = m.ctrl.ToggleCategory(r.category)
		case rowItem:
			_ = m.ctrl.SelectPattern(r.id)
		default:
			return m, nil
		}
		cmd := m.sync()
		return m, cmd
	}

	if msg.Y+m.detail.YOffset != m.tabRow {
		return m, nil
	}
	x := msg.X - m.layout.SidebarWidth - 1 - ui.MainPaddingH
	for i, span := range m.tabSpan {
		if x >= span[0] && x < span[1] {
			_ = m.ctrl.SetLanguage(m.frame.Tabs[i].Language)
			cmd := m.sync()
			return m, cmd
		}
	}
	return m, nil
}

// sync rebuilds the frame after a controller change and requests a new
// diagram when the current pattern moved.
func (m *Model) sync() tea.Cmd {
	prevID := m.frame.Header.ID
	m.rebuildFrame()

	var cmd tea.Cmd
	if id := m.frame.Header.ID; id != m.diagramID {
		m.diagramSeq++
		m.diagramID = id
		m.diagramText, m.diagramErr = "", nil
		cmd = m.renderDiagram(m.diagramSeq, id, m.frame.Diagram)
	}
	m.refreshContent()
	if m.frame.Header.ID != prevID {
		m.detail.GotoTop()
	}
	return cmd
}

func (m *Model) rebuildFrame() {
	v, err := present.Build(m.ctrl.Catalog(), m.ctrl.Index(), m.ctrl.State())
	if err != nil {
		// Keep the previous frame.
		logging.Get(logging.CategoryNavigation).Warn("Cannot build frame: %v", err)
		return
	}
	m.frame = v
}

func (m Model) diagramOptions() diagram.Options {
	return diagram.Options{ASCII: m.cfg.Diagram.ASCII, MaxBoxWidth: m.cfg.Diagram.MaxBoxWidth}
}

// renderDiagram draws src off the update loop. The result carries seq so
// that only the latest request is applied.
func (m Model) renderDiagram(seq int, id, src string) tea.Cmd {
	opts := m.diagramOptions()
	cache := m.cache
	return func() tea.Msg {
		k := ui.ComputeKey("diagram", id, src, opts.ASCII, opts.MaxBoxWidth)
		if text, ok := cache.Get(k); ok {
			return diagramRenderedMsg{seq: seq, id: id, text: text}
		}
		text, err := diagram.Render(context.Background(), src, opts)
		if err == nil {
			cache.Set(k, text)
		}
		return diagramRenderedMsg{seq: seq, id: id, text: text, err: err}
	}
}

func (m Model) waitForConfig() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

func (m *Model) copyCode() tea.Cmd {
	code := m.frame.Code
	if code == "" {
		return nil
	}
	if err := clipboardWriteAll(code); err != nil {
		logging.ClipboardWarn("Copy of %s/%s failed: %v", m.frame.Header.ID, m.frame.Language, err)
		return nil
	}
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	m.refreshContent()
	return tea.Tick(m.cfg.GetCopyAck(), func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

// applyConfig swaps in a reloaded config. The catalog is never reloaded;
// theme, highlight and diagram settings take effect immediately.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	m.cfg = cfg
	m.applyTheme(cfg.IsDark(ui.DetectDark()))
	m.cache.Clear()
	m.layout = ui.NewLayout(m.layout.Width, m.layout.Height, cfg.UI.SidebarWidth)
	m.sizeViewports()
	logging.Config("Applied reloaded config (theme=%s)", cfg.UI.Theme)

	m.diagramSeq++
	m.diagramText, m.diagramErr = "", nil
	m.refreshContent()
	return m.renderDiagram(m.diagramSeq, m.frame.Header.ID, m.frame.Diagram)
}

func (m *Model) applyTheme(dark bool) {
	m.dark = dark
	m.styles = ui.NewStyles(ui.ThemeFor(dark))
	m.hl = highlight.New(m.cfg.HighlightStyle(dark), m.cfg.Highlight.Formatter)
	m.md = nil
	m.mdWidth = 0
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height, m.cfg.UI.SidebarWidth)
	m.sizeViewports()
	m.help.Width = width
	m.ready = true
	m.refreshContent()
}

func (m *Model) sizeViewports() {
	m.detail.Width = m.layout.MainContentWidth()
	m.detail.Height = m.layout.BodyHeight()
	w, h := m.layout.ModalSize()
	m.modal.Width = ui.PanelContentWidth(w)
	m.modal.Height = max(h-4, 1)
}

// markdown renders s through glamour, falling back to s on any failure.
func (m *Model) markdown(s string, width int) (out string) {
	if width <= 0 {
		return s
	}
	if m.md == nil || m.mdWidth != width {
		style := "light"
		if m.dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.RenderWarn("glamour renderer: %v", err)
			return s
		}
		m.md, m.mdWidth = r, width
	}

	defer func() {
		if r := recover(); r != nil {
			logging.RenderWarn("glamour panicked: %v", r)
			out = s
		}
	}()
	rendered, err := m.md.Render(s)
	if err != nil {
		return s
	}
	return strings.Trim(rendered, "\n")
}
