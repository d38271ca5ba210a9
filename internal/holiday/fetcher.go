package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Source is anything that can produce one year of holidays for a country.
// Client and BuiltinSource satisfy it.
type Source interface {
	Fetch(ctx context.Context, year int, countryCode string) ([]PublicHoliday, error)
}

// Fetcher resolves holidays for a set of years through its cache, asking the
// source only for keys that are not cached yet.
type Fetcher struct {
	source Source
	cache  Cache
	group  singleflight.Group
	log    *slog.Logger
}

// NewFetcher constructs a Fetcher. A nil cache gets a fresh MemoryCache.
func NewFetcher(source Source, cache Cache, log *slog.Logger) *Fetcher {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{source: source, cache: cache, log: log}
}

// Fetch returns the holidays of all requested years, in ascending year order.
// Years are fetched in parallel. A year whose fetch fails is logged and left
// out of the result; failures are not cached, so a later call asks again.
func (f *Fetcher) Fetch(ctx context.Context, years []int, countryCode string) []PublicHoliday {
	years = distinctSorted(years)
	results := make([][]PublicHoliday, len(years))

	g, gCtx := errgroup.WithContext(ctx)
	for i, year := range years {
		i := i
		key := NewKey(year, countryCode)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					f.log.Error("holiday fetch panicked", "key", key.String(), "recover", r)
					err = fmt.Errorf("holiday fetch for %s panicked: %v", key, r)
				}
			}()
			hs, fetchErr := f.get(gCtx, key)
			if fetchErr != nil {
				f.log.Warn("holiday fetch failed", "year", key.Year, "country", key.CountryCode, "err", fetchErr)
				return nil
			}
			results[i] = hs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		f.log.Error("holiday fetch aborted", "country", countryCode, "err", err)
	}

	var out []PublicHoliday
	for _, hs := range results {
		out = append(out, hs...)
	}
	return out
}

// Prefetch makes sure every year is cached and reports how many are.
func (f *Fetcher) Prefetch(ctx context.Context, years []int, countryCode string) (int, error) {
	years = distinctSorted(years)
	f.Fetch(ctx, years, countryCode)

	cached := 0
	for _, year := range years {
		_, ok, err := f.cache.Get(ctx, NewKey(year, countryCode))
		if err != nil {
			return cached, fmt.Errorf("checking cache for %d/%s: %w", year, countryCode, err)
		}
		if ok {
			cached++
		}
	}
	if cached < len(years) {
		return cached, fmt.Errorf("cached %d of %d years for %s", cached, len(years), countryCode)
	}
	return cached, nil
}

// get serves one key from the cache or, on a miss, from the source.
// Concurrent misses for the same key share a single source call, which is
// detached from the caller's cancellation so a superseded request still
// fills the cache.
func (f *Fetcher) get(ctx context.Context, key Key) ([]PublicHoliday, error) {
	if hs, ok, err := f.cache.Get(ctx, key); err != nil {
		f.log.Warn("holiday cache get failed", "key", key.String(), "err", err)
	} else if ok {
		return hs, nil
	}

	v, err, _ := f.group.Do(key.String(), func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if hs, ok, _ := f.cache.Get(fetchCtx, key); ok {
			return hs, nil
		}

		hs, err := f.source.Fetch(fetchCtx, key.Year, key.CountryCode)
		if err != nil {
			return nil, err
		}
		if err := f.cache.Set(fetchCtx, key, hs); err != nil {
			f.log.Warn("holiday cache set failed", "key", key.String(), "err", err)
		}
		return hs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]PublicHoliday), nil
}

func distinctSorted(years []int) []int {
	out := slices.Clone(years)
	slices.Sort(out)
	return slices.Compact(out)
}
