package tui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles used by Render.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	WeekNumber lipgloss.Style
	Day        lipgloss.Style
	Weekend    lipgloss.Style
	Holiday    lipgloss.Style
	Disabled   lipgloss.Style
	Section    lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		WeekNumber: lipgloss.NewStyle().Faint(true),
		Day:        lipgloss.NewStyle(),
		Weekend:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Holiday:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Disabled:   lipgloss.NewStyle().Faint(true),
		Section:    lipgloss.NewStyle().Bold(true).Underline(true),
		Muted:      lipgloss.NewStyle().Faint(true),
	}
}
