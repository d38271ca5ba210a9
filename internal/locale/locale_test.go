package locale_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/yearcal/internal/locale"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---- Parse / Negotiate ----

func TestParse(t *testing.T) {
	assert.Equal(t, locale.French, locale.Parse("fr"))
	assert.Equal(t, locale.French, locale.Parse(" FR "))
	assert.Equal(t, locale.English, locale.Parse("en"))
	assert.Equal(t, locale.English, locale.Parse("de"))
	assert.Equal(t, locale.English, locale.Parse(""))
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   locale.Lang
	}{
		{"fr-FR,fr;q=0.9,en;q=0.8", locale.French},
		{"en-US,en;q=0.9", locale.English},
		{"de-DE", locale.English},
		{"", locale.English},
		{"not a header;;;", locale.English},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Negotiate(tt.header))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Français", locale.French.Label())
	assert.Equal(t, "English", locale.English.Label())
}

// ---- Formatter ----

func TestFormat_French(t *testing.T) {
	f := locale.NewFormatter(locale.French)
	d := date(2024, time.July, 14)

	assert.Equal(t, "14 juil. 2024", f.Format(d, "d MMM yyyy"))
	assert.Equal(t, "juillet 2024", f.Format(d, "MMMM yyyy"))
	assert.Equal(t, "dimanche", f.Format(d, "EEEE"))
	assert.Equal(t, "dim.", f.Format(d, "E"))
	assert.Equal(t, "2024-07-14", f.Format(d, "yyyy-MM-dd"))
}

func TestFormat_English(t *testing.T) {
	f := locale.NewFormatter(locale.English)
	d := date(2024, time.January, 5)

	assert.Equal(t, "5 Jan 2024", f.Format(d, "d MMM yyyy"))
	assert.Equal(t, "Fri", f.Format(d, "E"))
	assert.Equal(t, "05/01/24", f.Format(d, "dd/MM/yy"))
}

func TestFormat_WeekNumber(t *testing.T) {
	f := locale.NewFormatter(locale.English)

	assert.Equal(t, "01", f.Format(date(2024, time.January, 1), "ww"))
	assert.Equal(t, "1", f.Format(date(2024, time.January, 1), "w"))
	// 2021-01-01 belongs to ISO week 53 of 2020.
	assert.Equal(t, "53", f.Format(date(2021, time.January, 1), "ww"))
}

func TestFormat_QuotedLiteral(t *testing.T) {
	f := locale.NewFormatter(locale.English)
	assert.Equal(t, "week 02", f.Format(date(2024, time.January, 8), "'week' ww"))
}

func TestWeekdayShort(t *testing.T) {
	fr := locale.NewFormatter(locale.French)
	en := locale.NewFormatter(locale.English)

	assert.Equal(t, "Lu", fr.WeekdayShort(time.Monday))
	assert.Equal(t, "Di", fr.WeekdayShort(time.Sunday))
	assert.Equal(t, "Mo", en.WeekdayShort(time.Monday))
	assert.Equal(t, "Sa", en.WeekdayShort(time.Saturday))
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Mercredi", locale.NewFormatter(locale.French).WeekdayName(time.Wednesday))
	assert.Equal(t, "Wednesday", locale.NewFormatter(locale.English).WeekdayName(time.Wednesday))
}

func TestMonthTitle(t *testing.T) {
	d := date(2024, time.August, 1)
	assert.Equal(t, "Août 2024", locale.NewFormatter(locale.French).MonthTitle(d))
	assert.Equal(t, "August 2024", locale.NewFormatter(locale.English).MonthTitle(d))
}

func TestT(t *testing.T) {
	fr := locale.NewFormatter(locale.French)
	en := locale.NewFormatter(locale.English)

	assert.Equal(t, "Jours fériés", fr.T("publicHolidays"))
	assert.Equal(t, "Public Holidays", en.T("publicHolidays"))
	assert.Equal(t, "Date de début", fr.T("fields.startDate"))
	assert.Equal(t, "Lundi", fr.T("weekDays.1"))
	assert.Equal(t, "Sunday", en.T("weekDays.0"))
	assert.Equal(t, "missing.key", fr.T("missing.key"))
}

// ---- State ----

func TestState_SetNotifiesListeners(t *testing.T) {
	s := locale.NewState(locale.English)

	var got []locale.Lang
	cancel := s.OnChange(func(l locale.Lang) { got = append(got, l) })

	s.Set(locale.French)
	assert.Equal(t, locale.French, s.Lang())
	assert.Equal(t, locale.French, s.Formatter().Lang())
	require.Len(t, got, 1)
	assert.Equal(t, locale.French, got[0])

	cancel()
	s.Set(locale.English)
	assert.Len(t, got, 1, "cancelled listener must not be called")
}

func TestState_SameLanguageIsNoop(t *testing.T) {
	s := locale.NewState(locale.French)

	var calls atomic.Int32
	s.OnChange(func(locale.Lang) { calls.Add(1) })

	s.Set(locale.French)
	assert.Zero(t, calls.Load())
}

func TestState_ListenerMayReadState(t *testing.T) {
	s := locale.NewState(locale.English)

	var seen locale.Lang
	s.OnChange(func(locale.Lang) { seen = s.Formatter().Lang() })

	s.Set(locale.French)
	assert.Equal(t, locale.French, seen)
}
