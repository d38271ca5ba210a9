package api

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/holiday"
	"github.com/neexbeast/yearcal/internal/locale"
	"github.com/neexbeast/yearcal/internal/params"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"dayClass": dayClass,
}).ParseFS(templateFS, "templates/index.html"))

// Defaults are the settings used when the query does not name them.
type Defaults struct {
	CountryCode  string
	WeekStartsOn string
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	calendar CalendarRenderer
	fetcher  HolidayFetcher
	locator  Locator
	archive  HolidayArchive
	defaults Defaults
	log      *slog.Logger
	now      func() time.Time
}

// NewHandlers constructs Handlers with all required dependencies. locator
// may be nil, in which case the default country is never derived from the
// client address.
func NewHandlers(cal CalendarRenderer, fetcher HolidayFetcher, locator Locator, defaults Defaults, log *slog.Logger) *Handlers {
	return &Handlers{
		calendar: cal,
		fetcher:  fetcher,
		locator:  locator,
		defaults: defaults,
		log:      log,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the default start date.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

// WithArchive enables GET /api/v1/dates/{date}/holidays.
func (h *Handlers) WithArchive(a HolidayArchive) *Handlers {
	h.archive = a
	return h
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// params merges the request query over the defaults for this client.
func (h *Handlers) params(r *http.Request) *params.Params {
	return params.New(map[string]string{
		params.Lang:         string(locale.Negotiate(r.Header.Get("Accept-Language"))),
		params.StartDate:    h.now().Format(time.DateOnly),
		params.WeekStartsOn: h.defaults.WeekStartsOn,
		params.CountryCode:  h.defaultCountry(r),
	}, r.URL.Query())
}

func (h *Handlers) defaultCountry(r *http.Request) string {
	if h.locator == nil || r.URL.Query().Get(params.CountryCode) != "" {
		return h.defaults.CountryCode
	}
	addr, ok := clientAddr(r.RemoteAddr)
	if !ok {
		return h.defaults.CountryCode
	}
	if cc := h.locator.Country(addr); calendar.Supported(cc) {
		return cc
	}
	return h.defaults.CountryCode
}

func (h *Handlers) render(ctx context.Context, p *params.Params) (calendar.View, *locale.Formatter) {
	settings := calendar.SettingsFrom(p, h.now())
	f := locale.NewFormatter(settings.Lang)
	return h.calendar.Render(ctx, settings, f), f
}

// Index handles GET /.
// Renders the twelve-month calendar page for the query settings.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	p := h.params(r)
	view, f := h.render(r.Context(), p)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPage(p, view, f)); err != nil {
		h.log.Error("rendering page failed", "err", err)
	}
}

// Set handles GET /set?key=K&value=V&<current query>.
// Changes one setting and redirects to the canonical page URL.
func (h *Handlers) Set(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, value := q.Get("key"), q.Get("value")
	q.Del("key")
	q.Del("value")

	p := params.New(nil, q)
	if isSettingKey(key) {
		p.Set(key, value)
	}

	http.Redirect(w, r, p.URL("/"), http.StatusSeeOther)
}

func isSettingKey(key string) bool {
	switch key {
	case params.Lang, params.StartDate, params.WeekStartsOn, params.CountryCode:
		return true
	}
	return false
}

// Calendar handles GET /api/v1/calendar.
// Returns the same view as the page, as JSON.
func (h *Handlers) Calendar(w http.ResponseWriter, r *http.Request) {
	view, _ := h.render(r.Context(), h.params(r))
	writeJSON(w, http.StatusOK, view)
}

// Holidays handles GET /api/v1/holidays/{country}/{year}.
// Regional holidays are left out unless all=true.
func (h *Handlers) Holidays(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(chi.URLParam(r, "country"))
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
		return
	}

	hs := h.fetcher.Fetch(r.Context(), []int{year}, country)
	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); !all {
		hs = holiday.Filter(hs, holiday.Nationwide)
	}
	if hs == nil {
		hs = []holiday.PublicHoliday{}
	}

	writeJSON(w, http.StatusOK, hs)
}

// Prefetch handles POST /api/v1/holidays/{country}/prefetch?years=2024,2025.
// Warms the holiday caches for the listed years.
func (h *Handlers) Prefetch(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(chi.URLParam(r, "country"))

	var years []int
	for _, s := range strings.Split(r.URL.Query().Get("years"), ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		y, err := parseYear(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year " + strconv.Quote(s)})
			return
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "years is required"})
		return
	}

	cached, err := h.fetcher.Prefetch(r.Context(), years, country)
	if err != nil {
		h.log.Error("prefetch incomplete", "country", country, "years", years, "err", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  "failed to fetch some years",
			"cached": cached,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"country": country,
		"years":   years,
		"cached":  cached,
	})
}

// HolidaysOn handles GET /api/v1/dates/{date}/holidays.
// Lists every archived holiday falling on date, across countries.
func (h *Handlers) HolidaysOn(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		return
	}

	hs, err := h.archive.HolidaysOn(r.Context(), date)
	if err != nil {
		h.log.Error("archive lookup failed", "date", date, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if hs == nil {
		hs = []holiday.PublicHoliday{}
	}

	writeJSON(w, http.StatusOK, hs)
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if y < 1 || y > 9999 {
		return 0, strconv.ErrRange
	}
	return y, nil
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
// A nil pinger reports "disabled" and does not degrade the status.
func HealthHandlerFunc(db, redis Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		check := func(name string, p Pinger) string {
			if p == nil {
				return "disabled"
			}
			if err := p.Ping(ctx); err != nil {
				log.Error("health check: ping failed", "backend", name, "err", err)
				status = http.StatusServiceUnavailable
				return "error"
			}
			return "ok"
		}

		dbStatus := check("db", db)
		redisStatus := check("redis", redis)

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}

// ---- page model ----

type langLink struct {
	Label  string
	URL    string
	Active bool
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type page struct {
	f         *locale.Formatter
	View      calendar.View
	Languages []langLink
	Lang      string
	StartDate string
	Countries []option
	WeekDays  []option
}

// T translates key in the page language.
func (p page) T(key string) string { return p.f.T(key) }

func newPage(p *params.Params, view calendar.View, f *locale.Formatter) page {
	pg := page{
		f:         f,
		View:      view,
		Lang:      string(view.Settings.Lang),
		StartDate: view.Settings.Start.Format(time.DateOnly),
	}

	for _, l := range locale.Languages() {
		pg.Languages = append(pg.Languages, langLink{
			Label:  l.Label(),
			URL:    setURL(p, params.Lang, string(l)),
			Active: l == view.Settings.Lang,
		})
	}

	for _, c := range calendar.Countries {
		pg.Countries = append(pg.Countries, option{
			Value:    c.Code,
			Label:    c.Name,
			Selected: c.Code == view.Settings.CountryCode,
		})
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		pg.WeekDays = append(pg.WeekDays, option{
			Value:    strconv.Itoa(int(wd)),
			Label:    f.T("weekDays." + strconv.Itoa(int(wd))),
			Selected: wd == view.Settings.WeekStart,
		})
	}

	return pg
}

// setURL links to /set with the current settings and one key changed.
func setURL(p *params.Params, key, value string) string {
	q := make(url.Values)
	for k, v := range p.Values() {
		q.Set(k, v)
	}
	q.Set("key", key)
	q.Set("value", value)
	return "/set?" + q.Encode()
}

func dayClass(d calendar.Day) string {
	classes := []string{"day"}
	if d.Disabled {
		classes = append(classes, "disabled")
	}
	if d.Weekend {
		classes = append(classes, "weekend")
	}
	if d.Holiday {
		classes = append(classes, "holiday")
	}
	return strings.Join(classes, " ")
}
