// Package tui renders the calendar view in a terminal, either once (Render)
// or as an interactive bubbletea program (Model).
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/locale"
)

const (
	monthsPerRow = 3
	cellWidth    = 3
	// week number column plus seven day cells
	monthWidth = 2 + 7*cellWidth
)

// Render draws the month grid, three months per row, followed by the
// holiday list.
func Render(view calendar.View, f *locale.Formatter, s Styles) string {
	var rows []string
	for i := 0; i < len(view.Months); i += monthsPerRow {
		end := min(i+monthsPerRow, len(view.Months))
		blocks := make([]string, 0, 2*(end-i))
		for j, m := range view.Months[i:end] {
			if j > 0 {
				blocks = append(blocks, "   ")
			}
			blocks = append(blocks, renderMonth(m, s))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}

	var b strings.Builder
	b.WriteString(strings.Join(rows, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(s.Section.Render(f.T("publicHolidays")))
	b.WriteString("\n")
	if len(view.Holidays) == 0 {
		b.WriteString(s.Muted.Render(f.T("noHolidays")))
		b.WriteString("\n")
	}
	for _, h := range view.Holidays {
		b.WriteString(h.Label)
		b.WriteString("\n")
	}
	return b.String()
}

func renderMonth(m calendar.Month, s Styles) string {
	lines := make([]string, 0, len(m.Weeks)+2)
	lines = append(lines, s.Title.Width(monthWidth).Align(lipgloss.Center).Render(m.Title))

	header := "  "
	for _, h := range m.Headers {
		header += s.Header.Render(fmt.Sprintf("%*s", cellWidth, h))
	}
	lines = append(lines, header)

	for _, w := range m.Weeks {
		line := s.WeekNumber.Render(fmt.Sprintf("%02d", w.Number))
		for _, d := range w.Days {
			line += dayStyle(d, s).Render(fmt.Sprintf("%*s", cellWidth, d.Label))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func dayStyle(d calendar.Day, s Styles) lipgloss.Style {
	switch {
	case d.Disabled:
		return s.Disabled
	case d.Holiday:
		return s.Holiday
	case d.Weekend:
		return s.Weekend
	}
	return s.Day
}
