package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// DefaultRateLimit is the per-IP request budget per minute.
const DefaultRateLimit = 120

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// Token protects the admin routes. They are not mounted when empty.
	Token string
	// RateLimit is requests per minute per IP; <= 0 means DefaultRateLimit.
	RateLimit int
	// DB and Redis are pinged by the health endpoint; nil reports "disabled".
	DB    Pinger
	Redis Pinger
}

// NewRouter builds and returns the Chi router with all routes configured.
// The page, calendar, holiday and health routes are public; prefetch
// requires bearer auth.
func NewRouter(handlers *Handlers, opts RouterOptions, log *slog.Logger) *chi.Mux {
	limit := opts.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(httprate.LimitByIP(limit, time.Minute))

	r.Get("/", handlers.Index)
	r.Get("/set", handlers.Set)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(opts.DB, opts.Redis, log))
		r.Get("/calendar", handlers.Calendar)
		r.Get("/holidays/{country}/{year}", handlers.Holidays)

		if handlers.archive != nil {
			r.Get("/dates/{date}/holidays", handlers.HolidaysOn)
		}

		if opts.Token != "" {
			r.Group(func(r chi.Router) {
				r.Use(BearerAuth(opts.Token))
				r.Post("/holidays/{country}/prefetch", handlers.Prefetch)
			})
		}
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
