package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the console keybindings.
type KeyMap struct {
	Dashboard   key.Binding
	Vehicles    key.Binding
	Customers   key.Binding
	Rentals     key.Binding
	Maintenance key.Binding
	Reports     key.Binding
	Refresh     key.Binding
	Logout      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the standard binding set.
var DefaultKeyMap = KeyMap{
	Dashboard:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
	Vehicles:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "vehicles")),
	Customers:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "customers")),
	Rentals:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "rentals")),
	Maintenance: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "maintenance")),
	Reports:     key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "reports")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Logout:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
