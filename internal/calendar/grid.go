package calendar

import (
	"strings"
	"time"

	"github.com/neexbeast/yearcal/internal/holiday"
	"github.com/neexbeast/yearcal/internal/locale"
)

// Month is one rendered month table.
type Month struct {
	Title   string    `json:"title"`
	Key     string    `json:"key"`
	Headers [7]string `json:"headers"`
	Weeks   []Week    `json:"weeks"`
}

// Week is one row of a Month. Number is the ISO week of its first day.
type Week struct {
	Number int    `json:"number"`
	Days   [7]Day `json:"days"`
}

// Day is one cell. Days outside the month are Disabled and never Holiday.
type Day struct {
	Date        string `json:"date"`
	Label       string `json:"label"`
	Disabled    bool   `json:"disabled,omitempty"`
	Weekend     bool   `json:"weekend,omitempty"`
	Holiday     bool   `json:"holiday,omitempty"`
	HolidayName string `json:"holidayName,omitempty"`
}

// BuildMonth lays out the month containing month as weeks starting on
// weekStart. Days are matched to holidays by calendar date.
func BuildMonth(month time.Time, weekStart time.Weekday, holidays []holiday.PublicHoliday, f *locale.Formatter) Month {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	byDate := make(map[string][]string, len(holidays))
	for _, h := range holidays {
		byDate[h.Date] = append(byDate[h.Date], h.LocalName)
	}

	m := Month{
		Title: f.MonthTitle(first),
		Key:   first.Format("2006-01"),
	}
	for i := range m.Headers {
		m.Headers[i] = f.WeekdayShort((weekStart + time.Weekday(i)) % 7)
	}

	for ws := startOfWeek(first, weekStart); !ws.After(last); ws = ws.AddDate(0, 0, 7) {
		_, number := ws.ISOWeek()
		w := Week{Number: number}
		for i := range w.Days {
			d := ws.AddDate(0, 0, i)
			date := d.Format(holiday.DateLayout)
			day := Day{
				Date:     date,
				Label:    f.Format(d, "d"),
				Disabled: d.Month() != first.Month(),
				Weekend:  d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
			}
			if names, ok := byDate[date]; ok && !day.Disabled {
				day.Holiday = true
				day.HolidayName = strings.Join(names, ", ")
			}
			w.Days[i] = day
		}
		m.Weeks = append(m.Weeks, w)
	}

	return m
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return t.AddDate(0, 0, -back)
}
