package locale

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Formatter formats dates and looks up strings for one language.
type Formatter struct {
	lang  Lang
	names dateNames
}

// NewFormatter binds a Formatter to lang.
func NewFormatter(lang Lang) *Formatter {
	lang = Parse(string(lang))
	return &Formatter{lang: lang, names: names[lang]}
}

// Lang returns the bound language.
func (f *Formatter) Lang() Lang { return f.lang }

// T returns the translation of key, falling back to English and then to the
// key itself.
func (f *Formatter) T(key string) string {
	if s, ok := messages[f.lang][key]; ok {
		return s
	}
	if s, ok := messages[Default][key]; ok {
		return s
	}
	return key
}

// WeekdayName is the capitalised full name of wd.
func (f *Formatter) WeekdayName(wd time.Weekday) string {
	return capitalizeFirst(f.names.days[wd])
}

// WeekdayShort is the two-letter column header for wd ("Mo", "Lu").
func (f *Formatter) WeekdayShort(wd time.Weekday) string {
	s := f.names.daysShort[wd]
	if utf8.RuneCountInString(s) > 2 {
		s = string([]rune(s)[:2])
	}
	return capitalizeFirst(s)
}

// MonthTitle formats t as "MMMM yyyy" with a capital first letter.
func (f *Formatter) MonthTitle(t time.Time) string {
	return capitalizeFirst(f.Format(t, "MMMM yyyy"))
}

// Format renders t with a date-fns style pattern. Supported tokens:
//
//	yyyy  year             MMMM  month name      MMM  short month name
//	MM    month, 2 digits  M     month           dd   day, 2 digits
//	d     day              EEEE  weekday name    E    short weekday name
//	ww    ISO week, 2 digits                     w    ISO week
//
// Text between single quotes is copied verbatim, as are characters that are
// not pattern letters.
func (f *Formatter) Format(t time.Time, pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		r := runes[i]

		if r == '\'' {
			end := i + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			b.WriteString(string(runes[i+1 : min(end, len(runes))]))
			i = end + 1
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		b.WriteString(f.token(t, r, n))
		i += n
	}

	return b.String()
}

func (f *Formatter) token(t time.Time, r rune, n int) string {
	switch r {
	case 'y':
		if n == 2 {
			return fmt.Sprintf("%02d", t.Year()%100)
		}
		return fmt.Sprintf("%0*d", n, t.Year())
	case 'M':
		switch {
		case n >= 4:
			return f.names.months[t.Month()-1]
		case n == 3:
			return f.names.monthsShort[t.Month()-1]
		case n == 2:
			return fmt.Sprintf("%02d", int(t.Month()))
		}
		return strconv.Itoa(int(t.Month()))
	case 'd':
		if n >= 2 {
			return fmt.Sprintf("%02d", t.Day())
		}
		return strconv.Itoa(t.Day())
	case 'E':
		if n >= 4 {
			return f.names.days[t.Weekday()]
		}
		return f.names.daysShort[t.Weekday()]
	case 'w':
		_, week := t.ISOWeek()
		if n >= 2 {
			return fmt.Sprintf("%02d", week)
		}
		return strconv.Itoa(week)
	}
	return strings.Repeat(string(r), n)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
