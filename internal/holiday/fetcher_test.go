package holiday_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/yearcal/internal/holiday"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// apiServer mimics /PublicHolidays/{year}/{country} and counts requests per path.
type apiServer struct {
	*httptest.Server
	mu    sync.Mutex
	hits  map[string]int
	total atomic.Int32
}

func newAPIServer(t *testing.T, failYears ...string) *apiServer {
	t.Helper()
	s := &apiServer{hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.total.Add(1)
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()

		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/PublicHolidays/"), "/")
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		year, country := parts[0], parts[1]
		for _, y := range failYears {
			if y == year {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"date": year + "-07-14", "localName": "Fête nationale", "name": "Bastille Day",
				"countryCode": country, "fixed": true, "global": true, "counties": nil,
				"launchYear": nil, "types": []string{"Public"},
			},
			{
				"date": year + "-12-26", "localName": "Saint-Étienne", "name": "St. Stephen's Day",
				"countryCode": country, "fixed": true, "global": false, "counties": []string{"FR-57", "FR-67"},
				"launchYear": nil, "types": []string{"Public"},
			},
		})
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) hitsFor(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// ---- Client ----

func TestClient_Fetch_V3(t *testing.T) {
	srv := newAPIServer(t)

	c := holiday.NewClientWithURL(srv.URL)
	hs, err := c.Fetch(context.Background(), 2024, "FR")
	require.NoError(t, err)
	require.Len(t, hs, 2)

	assert.Equal(t, "2024-07-14", hs[0].Date)
	assert.Equal(t, "Fête nationale", hs[0].LocalName)
	assert.Equal(t, "Public", hs[0].Type, "type should be taken from the v3 types list")
	assert.Nil(t, hs[0].Counties)
	assert.Equal(t, []string{"FR-57", "FR-67"}, hs[1].Counties)
	assert.Equal(t, 1, srv.hitsFor("/PublicHolidays/2024/FR"))
}

func TestClient_Fetch_V2Schema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"date":"2024-01-01","localName":"New Year's Day","name":"New Year's Day",
			"countryCode":"US","fixed":false,"global":true,"counties":null,"launchYear":1870,"type":"Public"}]`)
	}))
	defer srv.Close()

	c := holiday.NewClientWithURL(srv.URL + "/")
	hs, err := c.Fetch(context.Background(), 2024, "US")
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, "Public", hs[0].Type)
	require.NotNil(t, hs[0].LaunchYear)
	assert.Equal(t, 1870, *hs[0].LaunchYear)
}

func TestClient_ServerError(t *testing.T) {
	srv := newAPIServer(t, "2024")

	c := holiday.NewClientWithURL(srv.URL)
	_, err := c.Fetch(context.Background(), 2024, "FR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer srv.Close()

	_, err := holiday.NewClientWithURL(srv.URL).Fetch(context.Background(), 2024, "FR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

// ---- Fetcher ----

func TestFetcher_FetchesEachUncachedYearOnce(t *testing.T) {
	srv := newAPIServer(t)
	f := holiday.NewFetcher(holiday.NewClientWithURL(srv.URL), nil, discardLog())
	ctx := context.Background()

	hs := f.Fetch(ctx, []int{2024, 2025}, "FR")
	assert.Len(t, hs, 4)
	assert.Equal(t, "2024-07-14", hs[0].Date, "years come back in ascending order")
	assert.Equal(t, "2025-07-14", hs[2].Date)
	assert.EqualValues(t, 2, srv.total.Load())

	// Same years and country again: served from cache.
	for i := 0; i < 3; i++ {
		f.Fetch(ctx, []int{2025, 2024}, "FR")
	}
	assert.EqualValues(t, 2, srv.total.Load())

	// New country: one request per year for that country only.
	f.Fetch(ctx, []int{2024, 2025}, "us")
	assert.EqualValues(t, 4, srv.total.Load())
	assert.Equal(t, 1, srv.hitsFor("/PublicHolidays/2024/US"))
	assert.Equal(t, 1, srv.hitsFor("/PublicHolidays/2025/US"))
}

func TestFetcher_DuplicateYearsRequestedOnce(t *testing.T) {
	srv := newAPIServer(t)
	f := holiday.NewFetcher(holiday.NewClientWithURL(srv.URL), nil, discardLog())

	hs := f.Fetch(context.Background(), []int{2024, 2024, 2024}, "FR")
	assert.Len(t, hs, 2)
	assert.EqualValues(t, 1, srv.total.Load())
}

func TestFetcher_FailedYearIsAbsentAndNotCached(t *testing.T) {
	srv := newAPIServer(t, "2025")
	cache := holiday.NewMemoryCache()
	f := holiday.NewFetcher(holiday.NewClientWithURL(srv.URL), cache, discardLog())

	hs := f.Fetch(context.Background(), []int{2024, 2025}, "FR")
	require.Len(t, hs, 2)
	for _, h := range hs {
		assert.True(t, strings.HasPrefix(h.Date, "2024-"))
	}
	assert.Equal(t, 1, cache.Len())

	f.Fetch(context.Background(), []int{2025}, "FR")
	assert.Equal(t, 2, srv.hitsFor("/PublicHolidays/2025/FR"), "a failed year is asked again on the next call")
}

func TestFetcher_ConcurrentMissesShareOneRequest(t *testing.T) {
	srv := newAPIServer(t)
	f := holiday.NewFetcher(holiday.NewClientWithURL(srv.URL), nil, discardLog())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Fetch(context.Background(), []int{2024}, "FR")
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, srv.total.Load())
}

func TestFetcher_CanceledCallerStillFillsCache(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	src := sourceFunc(func(ctx context.Context, year int, cc string) ([]holiday.PublicHoliday, error) {
		calls.Add(1)
		<-release
		return []holiday.PublicHoliday{{Date: fmt.Sprintf("%d-01-01", year), CountryCode: cc}}, ctx.Err()
	})
	cache := holiday.NewMemoryCache()
	f := holiday.NewFetcher(src, cache, discardLog())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Fetch(ctx, []int{2024}, "FR")
		close(done)
	}()
	cancel()
	close(release)
	<-done

	_, ok, err := cache.Get(context.Background(), holiday.NewKey(2024, "FR"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetcher_Prefetch(t *testing.T) {
	srv := newAPIServer(t, "2026")
	f := holiday.NewFetcher(holiday.NewClientWithURL(srv.URL), nil, discardLog())

	n, err := f.Prefetch(context.Background(), []int{2024, 2025}, "FR")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.Prefetch(context.Background(), []int{2025, 2026}, "FR")
	require.Error(t, err)
	assert.Equal(t, 1, n)
}

// ---- caches ----

type sourceFunc func(ctx context.Context, year int, cc string) ([]holiday.PublicHoliday, error)

func (f sourceFunc) Fetch(ctx context.Context, year int, cc string) ([]holiday.PublicHoliday, error) {
	return f(ctx, year, cc)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, holiday.Key) ([]holiday.PublicHoliday, bool, error) {
	return nil, false, errors.New("down")
}
func (brokenCache) Set(context.Context, holiday.Key, []holiday.PublicHoliday) error {
	return errors.New("down")
}

func TestMemoryCache_MissThenHit(t *testing.T) {
	c := holiday.NewMemoryCache()
	ctx := context.Background()
	key := holiday.NewKey(2024, "fr")

	hs, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, hs)

	require.NoError(t, c.Set(ctx, key, nil))
	hs, ok, err = c.Get(ctx, holiday.NewKey(2024, "FR"))
	require.NoError(t, err)
	assert.True(t, ok, "an empty year is still a cached year")
	assert.Empty(t, hs)
}

func TestTiered_BackfillsFasterTiers(t *testing.T) {
	fast, slow := holiday.NewMemoryCache(), holiday.NewMemoryCache()
	tiered := holiday.NewTiered(discardLog()).Add("memory", fast).Add("shared", slow)
	ctx := context.Background()
	key := holiday.NewKey(2024, "FR")

	require.NoError(t, slow.Set(ctx, key, []holiday.PublicHoliday{{Date: "2024-07-14"}}))

	hs, ok, err := tiered.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, hs, 1)

	_, ok, _ = fast.Get(ctx, key)
	assert.True(t, ok, "hit in the slow tier should be copied to the fast tier")
}

func TestTiered_SkipsBrokenTier(t *testing.T) {
	mem := holiday.NewMemoryCache()
	tiered := holiday.NewTiered(discardLog()).Add("redis", brokenCache{}).Add("memory", mem)
	ctx := context.Background()
	key := holiday.NewKey(2024, "FR")

	require.NoError(t, tiered.Set(ctx, key, []holiday.PublicHoliday{{Date: "2024-07-14"}}))
	hs, ok, err := tiered.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, hs, 1)
}

// ---- sources ----

func TestFallbackSource_UsesFallbackOnError(t *testing.T) {
	failing := sourceFunc(func(context.Context, int, string) ([]holiday.PublicHoliday, error) {
		return nil, errors.New("api down")
	})
	s := &holiday.FallbackSource{Primary: failing, Fallback: holiday.NewBuiltinSource(), Log: discardLog()}

	hs, err := s.Fetch(context.Background(), 2024, "FR")
	require.NoError(t, err)
	assert.NotEmpty(t, hs)
}

func TestFallbackSource_BothFail(t *testing.T) {
	failing := sourceFunc(func(context.Context, int, string) ([]holiday.PublicHoliday, error) {
		return nil, errors.New("api down")
	})
	s := &holiday.FallbackSource{Primary: failing, Fallback: holiday.NewBuiltinSource(), Log: discardLog()}

	_, err := s.Fetch(context.Background(), 2024, "ZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api down")
}

func TestBuiltinSource_KnownCountries(t *testing.T) {
	b := holiday.NewBuiltinSource()

	fr, err := b.Fetch(context.Background(), 2024, "fr")
	require.NoError(t, err)
	assert.Contains(t, dates(fr), "2024-07-14")
	assert.Contains(t, dates(fr), "2024-12-25")
	for _, h := range fr {
		assert.Equal(t, "FR", h.CountryCode)
		assert.True(t, holiday.Nationwide(h))
	}

	us, err := b.Fetch(context.Background(), 2024, "US")
	require.NoError(t, err)
	assert.Contains(t, dates(us), "2024-07-04")
}

func TestBuiltinSource_UnknownCountry(t *testing.T) {
	_, err := holiday.NewBuiltinSource().Fetch(context.Background(), 2024, "ZZ")
	require.Error(t, err)
}

// ---- helpers on PublicHoliday ----

func TestNationwideFilter(t *testing.T) {
	hs := []holiday.PublicHoliday{
		{Date: "2024-07-14"},
		{Date: "2024-12-26", Counties: []string{"FR-57"}},
	}
	got := holiday.Filter(hs, holiday.Nationwide)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-07-14", got[0].Date)
}

func TestPublicHoliday_Day(t *testing.T) {
	d, err := holiday.PublicHoliday{Date: "2024-07-14"}.Day()
	require.NoError(t, err)
	assert.Equal(t, 14, d.Day())

	_, err = holiday.PublicHoliday{Date: "14/07/2024"}.Day()
	require.Error(t, err)
}

func dates(hs []holiday.PublicHoliday) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Date)
	}
	return out
}
