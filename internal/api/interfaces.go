package api

import (
	"context"
	"net/netip"

	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/holiday"
	"github.com/neexbeast/yearcal/internal/locale"
)

// CalendarRenderer builds the calendar view for a set of settings.
type CalendarRenderer interface {
	Render(ctx context.Context, settings calendar.Settings, f *locale.Formatter) calendar.View
}

// HolidayFetcher defines the holiday lookups needed by the JSON handlers.
type HolidayFetcher interface {
	Fetch(ctx context.Context, years []int, countryCode string) []holiday.PublicHoliday
	Prefetch(ctx context.Context, years []int, countryCode string) (int, error)
}

// HolidayArchive answers cross-country lookups from the persistent store.
type HolidayArchive interface {
	HolidaysOn(ctx context.Context, date string) ([]holiday.PublicHoliday, error)
}

// Locator maps a client address to an ISO 3166-1 alpha-2 country code, or ""
// when unknown.
type Locator interface {
	Country(addr netip.Addr) string
}
