package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	WeekStart key.Binding
	Country   key.Binding
	Language  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous month")),
		Next:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next month")),
		WeekStart: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week start")),
		Country:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "country")),
		Language:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.WeekStart, k.Country, k.Language, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.WeekStart, k.Country, k.Language},
		{k.Help, k.Quit},
	}
}
