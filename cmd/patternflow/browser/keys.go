package browser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	LangNext key.Binding
	LangPrev key.Binding
	LangPick key.Binding
	Toggle   key.Binding
	Diagram  key.Binding
	Code     key.Binding
	Copy     key.Binding
	Close    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		LangNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "language"),
		),
		LangPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev language"),
		),
		LangPick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick language"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "fold category"),
		),
		Diagram: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "diagram"),
		),
		Code: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen code"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "c"),
			key.WithHelp("y", "copy"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.LangNext, k.Diagram, k.Code, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Toggle},
		{k.LangNext, k.LangPrev, k.LangPick},
		{k.Diagram, k.Code, k.Close},
		{k.Copy, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

// modalKeys is the help shown while an overlay is open.
type modalKeys struct{ keyMap }

func (k modalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.LangNext, k.Copy, k.PageUp, k.PageDown}
}
