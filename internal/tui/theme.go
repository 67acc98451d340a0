package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles used by the browser.
type Theme struct {
	Title    lipgloss.Style
	ID       lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
	Faint    lipgloss.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		ID:       lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Notice:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Faint:    lipgloss.NewStyle().Faint(true),
	}
}
