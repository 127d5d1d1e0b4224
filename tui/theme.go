package tui

import "github.com/charmbracelet/lipgloss"

// Theme collects the lipgloss styles used by the console views.
type Theme struct {
	Title     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	StatusBar lipgloss.Style
}

// DefaultTheme is the standard color scheme.
var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	TabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
	TabIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1),
	Header:    lipgloss.NewStyle().Bold(true).Underline(true),
	Cell:      lipgloss.NewStyle(),
	Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}
