package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. Each Metrics has its
// own registry so several routers can coexist in one process (tests).
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	lookups   *prometheus.CounterVec
	rollovers *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fiscal_year",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fiscal_year",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fiscal_year",
			Name:      "date_lookups_total",
			Help:      "Date to period/week lookups by outcome.",
		}, []string{"outcome"}),
		rollovers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fiscal_year",
			Name:      "rollovers_total",
			Help:      "Calendars advanced to the next financial year, by trigger.",
		}, []string{"trigger"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.lookups,
		m.rollovers,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveLookup counts one lookup with outcome "ok", "out_of_range",
// "invalid" or "error".
func (m *Metrics) ObserveLookup(outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}

// ObserveRollover counts one calendar rollover with trigger "manual" or
// "scheduled".
func (m *Metrics) ObserveRollover(trigger string) {
	m.rollovers.WithLabelValues(trigger).Inc()
}
