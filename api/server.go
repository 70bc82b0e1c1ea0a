/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. logging:    Request scoped slog logger in the context
  5. Metrics:    Prometheus request counters and latency
  6. CORS:       Cross-origin requests for frontends

ROUTE GROUPS:
  /api/calendars/*      Calendar registry, periods, weeks, lookup
  /api/scenarios/*      Demo data loaders
  /metrics              Prometheus scrape endpoint
  /healthz              Liveness and database check

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/warp/fiscal-year/logging"
)

// DefaultAllowedOrigins is used when NewRouter gets no origins.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(h.Logger))
	r.Use(h.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", h.Metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", h.ListCalendars)
			r.Post("/", h.CreateCalendar)
			r.Post("/defaults", h.SeedDefaults)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetCalendar)
				r.Put("/", h.UpdateCalendar)
				r.Delete("/", h.DeleteCalendar)
				r.Get("/lookup", h.Lookup)
				r.Post("/rollover", h.RolloverCalendar)

				r.Get("/periods", h.ListPeriods)
				r.Get("/periods/{period}", h.GetPeriod)
				r.Get("/periods/{period}/weeks/{n}", h.GetPeriodWeek)

				r.Get("/weeks", h.ListWeeks)
				r.Get("/weeks/extra", h.GetExtraWeek)
				r.Get("/weeks/{week}", h.GetWeek)
			})
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
