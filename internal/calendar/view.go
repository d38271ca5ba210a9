package calendar

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/neexbeast/yearcal/internal/holiday"
	"github.com/neexbeast/yearcal/internal/locale"
	"github.com/neexbeast/yearcal/internal/params"
)

// Settings are the user-adjustable inputs of a view.
type Settings struct {
	Lang        locale.Lang  `json:"lang"`
	Start       time.Time    `json:"start"`
	WeekStart   time.Weekday `json:"weekStartsOn"`
	CountryCode string       `json:"countryCode"`
}

// SettingsFrom reads Settings from p. Invalid values fall back silently:
// the start date to today, the week start to Monday, the language to English.
func SettingsFrom(p *params.Params, today time.Time) Settings {
	return Settings{
		Lang:        locale.Parse(p.Get(params.Lang)),
		Start:       ParseDate(p.Get(params.StartDate), today),
		WeekStart:   ParseWeekday(p.Get(params.WeekStartsOn)),
		CountryCode: strings.ToUpper(strings.TrimSpace(p.Get(params.CountryCode))),
	}
}

// ListedHoliday is an entry of the holiday list under the grid.
type ListedHoliday struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// View is everything needed to render the calendar page.
type View struct {
	Settings Settings        `json:"settings"`
	Interval Interval        `json:"interval"`
	Years    []int           `json:"years"`
	Months   []Month         `json:"months"`
	Holidays []ListedHoliday `json:"holidays"`
}

// Build derives the view for settings. holidays may span more than the
// interval and may include regional entries; both are filtered out.
func Build(settings Settings, holidays []holiday.PublicHoliday, f *locale.Formatter) View {
	iv := NewInterval(settings.Start)
	settings.Start = iv.Start

	shown := holiday.Filter(holidays, func(h holiday.PublicHoliday) bool {
		if !holiday.Nationwide(h) {
			return false
		}
		d, err := h.Day()
		return err == nil && iv.Contains(d)
	})
	slices.SortStableFunc(shown, func(a, b holiday.PublicHoliday) int {
		return strings.Compare(a.Date, b.Date)
	})

	v := View{
		Settings: settings,
		Interval: iv,
		Years:    iv.Years(),
		Holidays: make([]ListedHoliday, 0, len(shown)),
	}
	for _, m := range iv.Months() {
		v.Months = append(v.Months, BuildMonth(m, settings.WeekStart, shown, f))
	}
	for _, h := range shown {
		d, _ := h.Day()
		v.Holidays = append(v.Holidays, ListedHoliday{
			Date:      h.Date,
			Label:     f.Format(d, "d MMM yyyy") + " - " + h.LocalName,
			LocalName: h.LocalName,
			Name:      h.Name,
		})
	}
	return v
}

// HolidayFetcher returns the holidays of a country for the given years.
type HolidayFetcher interface {
	Fetch(ctx context.Context, years []int, countryCode string) []holiday.PublicHoliday
}

// Service renders views with holidays from a fetcher.
type Service struct {
	Fetcher HolidayFetcher
}

// NewService returns a Service backed by fetcher.
func NewService(fetcher HolidayFetcher) *Service {
	return &Service{Fetcher: fetcher}
}

// Render fetches the holidays of every year the interval spans and builds
// the view. Fetch failures only leave holidays out.
func (s *Service) Render(ctx context.Context, settings Settings, f *locale.Formatter) View {
	years := NewInterval(settings.Start).Years()
	return Build(settings, s.Fetcher.Fetch(ctx, years, settings.CountryCode), f)
}
