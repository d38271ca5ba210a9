package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/locale"
)

const loadTimeout = 30 * time.Second

// Renderer builds calendar views; calendar.Service satisfies it.
type Renderer interface {
	Render(ctx context.Context, settings calendar.Settings, f *locale.Formatter) calendar.View
}

// viewMsg carries a finished load. seq identifies the settings it was
// computed for.
type viewMsg struct {
	seq  int
	view calendar.View
}

// Model is the interactive calendar. The language lives in a shared
// locale.State; changes to it, whether from the l key or elsewhere, trigger
// a reload.
type Model struct {
	renderer Renderer
	state    *locale.State
	changes  chan locale.Lang
	cancel   func()

	settings calendar.Settings
	view     calendar.View
	seq      int
	loading  bool

	styles  Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// NewModel returns a Model showing settings. The language of settings is
// taken from state.
func NewModel(renderer Renderer, state *locale.State, settings calendar.Settings, styles Styles) Model {
	changes := make(chan locale.Lang, 1)
	cancel := state.OnChange(func(l locale.Lang) {
		select {
		case changes <- l:
		default:
			// A newer change replaces a pending one.
			select {
			case <-changes:
			default:
			}
			changes <- l
		}
	})

	settings.Lang = state.Lang()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		renderer: renderer,
		state:    state,
		changes:  changes,
		cancel:   cancel,
		settings: settings,
		loading:  true,
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
	}
}

// Settings returns the settings currently displayed or being loaded.
func (m Model) Settings() calendar.Settings { return m.settings }

// Loading reports whether a load for the current settings is in flight.
func (m Model) Loading() bool { return m.loading }

// Close unregisters the model from the language state.
func (m Model) Close() { m.cancel() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// load renders the view for the current settings off the update loop.
func (m Model) load() tea.Cmd {
	renderer, seq, settings, f := m.renderer, m.seq, m.settings, m.state.Formatter()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return viewMsg{seq: seq, view: renderer.Render(ctx, settings, f)}
	}
}

func (m Model) reload() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, m.load()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		// Results for superseded settings are dropped; the fetcher has
		// already cached them.
		if msg.seq == m.seq {
			m.view = msg.view
			m.loading = false
		}
		return m.syncLanguage(nil)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m.syncLanguage(cmd)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.settings.Start = calendar.AddMonths(m.settings.Start, -1)
			return m.reload()
		case key.Matches(msg, m.keys.Next):
			m.settings.Start = calendar.AddMonths(m.settings.Start, 1)
			return m.reload()
		case key.Matches(msg, m.keys.WeekStart):
			m.settings.WeekStart = (m.settings.WeekStart + 1) % 7
			return m.reload()
		case key.Matches(msg, m.keys.Country):
			m.settings.CountryCode = nextCountry(m.settings.CountryCode)
			return m.reload()
		case key.Matches(msg, m.keys.Language):
			m.state.Set(nextLang(m.state.Lang()))
			return m.syncLanguage(nil)
		}
	}
	return m, nil
}

// syncLanguage picks up a pending language change and reloads for it.
func (m Model) syncLanguage(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	select {
	case l := <-m.changes:
		if l == m.settings.Lang {
			return m, cmd
		}
		m.settings.Lang = l
		var load tea.Cmd
		m, load = m.reload()
		return m, tea.Batch(cmd, load)
	default:
		return m, cmd
	}
}

// View implements tea.Model.
func (m Model) View() string {
	f := m.state.Formatter()

	status := fmt.Sprintf("%s  %s: %s  %s: %s",
		m.styles.Title.Render(calendar.CountryName(m.settings.CountryCode)),
		f.T("fields.startDate"), f.Format(m.settings.Start, "d MMM yyyy"),
		f.T("fields.weeksStartOn"), f.WeekdayName(m.settings.WeekStart),
	)
	if m.loading {
		status += "  " + m.spinner.View()
	}

	body := ""
	if len(m.view.Months) > 0 {
		body = Render(m.view, f, m.styles)
	}

	return status + "\n\n" + body + "\n" + m.help.View(m.keys)
}

func nextCountry(code string) string {
	for i, c := range calendar.Countries {
		if c.Code == code {
			return calendar.Countries[(i+1)%len(calendar.Countries)].Code
		}
	}
	return calendar.Countries[0].Code
}

func nextLang(l locale.Lang) locale.Lang {
	langs := locale.Languages()
	for i, x := range langs {
		if x == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return locale.Default
}
