package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Stage   key.Binding
	Dialog  key.Binding
	Browse  key.Binding
	Analyze key.Binding
	Reset   key.Binding
	Copy    key.Binding
	Scroll  key.Binding
	Quit    key.Binding
	Close   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Stage:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "stage image")),
		Dialog:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "file dialog")),
		Browse:  key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "browse")),
		Analyze: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analyze")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy result")),
		Scroll:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k keyMap) idleHelp() []key.Binding {
	return []key.Binding{k.Stage, k.Dialog, k.Browse, k.Quit}
}

func (k keyMap) previewHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Copy, k.Reset, k.Dialog, k.Browse, k.Scroll, k.Quit}
}

func (k keyMap) browserHelp() []key.Binding {
	return []key.Binding{k.Stage, k.Close, k.Scroll}
}
