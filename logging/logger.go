// Package logging wraps log/slog with a component name and request scoped
// loggers.
package logging

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldCalendar  = "calendar_id"
	FieldDate      = "date"
	FieldError     = "error"
)

// Components
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentScheduler = "scheduler"
)

// Logger wraps slog.Logger with a component name.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Format    string // "text" or "json"
	Component string
	Output    io.Writer
}

// New creates a logger writing to cfg.Output (stdout when nil). Leave
// Component empty for a root logger that components derive from.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	l := &Logger{Logger: slog.New(handler)}
	if cfg.Component != "" {
		return l.WithComponent(cfg.Component)
	}
	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(Config{Output: io.Discard})
}

// With returns a new logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// WithComponent returns a logger tagged with another component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With(FieldComponent, component), component: component}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault sets the default logger for the application.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}

// =============================================================================
// CONTEXT
// =============================================================================

type contextKey struct{}

// NewContext returns ctx carrying l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext extracts a logger from ctx, falling back to slog's default.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return l
	}
	return &Logger{Logger: slog.Default(), component: "unknown"}
}

// Middleware stores a request scoped logger in the request context. Run it
// after chi's RequestID middleware so the id is attached.
func Middleware(l *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := l.WithComponent(ComponentHTTP)
			if id := middleware.GetReqID(r.Context()); id != "" {
				reqLogger = reqLogger.With(FieldRequestID, id)
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), reqLogger)))
		})
	}
}
