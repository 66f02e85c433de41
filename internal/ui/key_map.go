package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	back      key.Binding
	yes       key.Binding
	no        key.Binding
	edit      key.Binding
	remove    key.Binding
	cancel    key.Binding
	subscribe key.Binding
	add       key.Binding
	variant   key.Binding
	dashboard key.Binding
	wishlist  key.Binding
	refresh   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel subscription")),
		subscribe: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "subscribe")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add movie")),
		variant:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "card style")),
		dashboard: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dashboard")),
		wishlist:  key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "wishlist")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.enter},
		{k.back, k.yes, k.no, k.edit, k.remove},
		{k.cancel, k.subscribe, k.add, k.variant},
		{k.dashboard, k.wishlist, k.refresh, k.quit},
	}
}
