package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"
)

// BuiltinSource computes national holidays locally. It only knows the
// countries offered by the calendar and serves as an offline fallback.
type BuiltinSource struct {
	sets map[string][]*cal.Holiday
}

// NewBuiltinSource constructs a BuiltinSource for FR, GB and US.
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{sets: map[string][]*cal.Holiday{
		"FR": fr.Holidays,
		"GB": gb.Holidays,
		"US": us.Holidays,
	}}
}

// Fetch returns the holidays of the year, sorted by date.
func (b *BuiltinSource) Fetch(_ context.Context, year int, countryCode string) ([]PublicHoliday, error) {
	cc := strings.ToUpper(countryCode)
	set, ok := b.sets[cc]
	if !ok {
		return nil, fmt.Errorf("no builtin holidays for country %q", countryCode)
	}

	out := make([]PublicHoliday, 0, len(set))
	for _, h := range set {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		out = append(out, PublicHoliday{
			Date:        actual.Format(DateLayout),
			LocalName:   h.Name,
			Name:        h.Name,
			CountryCode: cc,
			Global:      true,
			Type:        "Public",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out, nil
}

// FallbackSource asks Primary first and Fallback when Primary fails.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Log      *slog.Logger
}

// Fetch implements Source.
func (s *FallbackSource) Fetch(ctx context.Context, year int, countryCode string) ([]PublicHoliday, error) {
	hs, err := s.Primary.Fetch(ctx, year, countryCode)
	if err == nil {
		return hs, nil
	}

	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	log.Warn("primary holiday source failed, using fallback", "year", year, "country", countryCode, "err", err)

	hs, fbErr := s.Fallback.Fetch(ctx, year, countryCode)
	if fbErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fbErr)
	}
	return hs, nil
}
