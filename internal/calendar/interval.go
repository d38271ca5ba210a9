// Package calendar derives the twelve-month view (interval, month grids and
// holiday list) from the user's settings.
package calendar

import (
	"strconv"
	"strings"
	"time"
)

// MonthsShown is the number of months in an Interval.
const MonthsShown = 12

// Interval is an inclusive range of calendar dates, held at UTC midnight.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval runs from start to the last day of the month eleven months
// later.
func NewInterval(start time.Time) Interval {
	start = truncateDay(start)
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := first.AddDate(0, MonthsShown, -1)
	return Interval{Start: start, End: end}
}

// Contains reports whether date's calendar day lies within the interval.
func (iv Interval) Contains(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// Months returns the first day of every month the interval touches.
func (iv Interval) Months() []time.Time {
	var months []time.Time
	m := time.Date(iv.Start.Year(), iv.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !m.After(iv.End) {
		months = append(months, m)
		m = m.AddDate(0, 1, 0)
	}
	return months
}

// Years returns every calendar year the interval touches, ascending.
func (iv Interval) Years() []int {
	var years []int
	for y := iv.Start.Year(); y <= iv.End.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// ParseWeekday reads a weekday number "0" (Sunday) to "6" (Saturday).
// Anything else yields Monday.
func ParseWeekday(s string) time.Weekday {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 6 {
		return time.Monday
	}
	return time.Weekday(n)
}

// ParseDate reads a YYYY-MM-DD date or an RFC 3339 timestamp (truncated to
// its date). Empty or invalid input yields fallback's date.
func ParseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateDay(t)
	}
	return truncateDay(fallback)
}

// AddMonths shifts t by n months, clamping the day to the target month's
// length (Jan 31 + 1 month is Feb 29 in a leap year).
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
