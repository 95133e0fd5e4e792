package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Entries key.Binding
	New     key.Binding
	Refresh key.Binding
	Open    key.Binding
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Toggle  key.Binding
	Save    key.Binding
	Reset   key.Binding
	Append  key.Binding
	Remove  key.Binding
	Section key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Entries: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "entries")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new contract")),
		Refresh: key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "refresh")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Append:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add item")),
		Remove:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove item")),
		Section: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "add/clear section")),
	}
}

// helpKeys adapts the bindings of one page to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) forMode(mode Mode) helpKeys {
	switch mode {
	case ModeEntries:
		return helpKeys{k.Up, k.Down, k.Open, k.Refresh, k.New, k.Back, k.Quit}
	case ModeEntry:
		return helpKeys{k.Up, k.Down, k.Back, k.Quit}
	case ModeCreate:
		return helpKeys{k.Next, k.Prev, k.Toggle, k.Append, k.Remove, k.Section, k.Save, k.Reset, k.Back}
	}
	return helpKeys{k.Entries, k.New, k.Quit}
}
