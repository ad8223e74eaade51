package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	tab     key.Binding
	newItem key.Binding
	search  key.Binding
	remove  key.Binding
	share   key.Binding
	publish key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		newItem: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		search:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tracks")),
		remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove track")),
		share:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		publish: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "publish")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.tab, k.newItem},
		{k.search, k.remove, k.share},
		{k.publish, k.quit},
	}
}
