package holiday

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of PublicHoliday.Date.
const DateLayout = "2006-01-02"

// PublicHoliday is one entry of the public holiday API, kept verbatim.
type PublicHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	LaunchYear  *int     `json:"launchYear"`
	Type        string   `json:"type"`
}

// UnmarshalJSON accepts both API generations: v2 sends "type", v3 sends a
// "types" list instead.
func (h *PublicHoliday) UnmarshalJSON(b []byte) error {
	type plain PublicHoliday
	var raw struct {
		plain
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*h = PublicHoliday(raw.plain)
	if h.Type == "" && len(raw.Types) > 0 {
		h.Type = raw.Types[0]
	}
	return nil
}

// Day parses Date as a calendar day in UTC.
func (h PublicHoliday) Day() (time.Time, error) {
	d, err := time.Parse(DateLayout, h.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing holiday date %q: %w", h.Date, err)
	}
	return d, nil
}

// Nationwide reports whether the holiday has no county restriction.
func Nationwide(h PublicHoliday) bool {
	return h.Counties == nil
}

// Filter returns the holidays for which keep returns true.
func Filter(hs []PublicHoliday, keep func(PublicHoliday) bool) []PublicHoliday {
	out := make([]PublicHoliday, 0, len(hs))
	for _, h := range hs {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

// Key identifies one cached year of holidays for one country.
type Key struct {
	Year        int
	CountryCode string
}

// NewKey normalises the country code to upper case.
func NewKey(year int, countryCode string) Key {
	return Key{Year: year, CountryCode: strings.ToUpper(strings.TrimSpace(countryCode))}
}

func (k Key) String() string {
	return strconv.Itoa(k.Year) + "/" + k.CountryCode
}
