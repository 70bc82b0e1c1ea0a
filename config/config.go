// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all service settings.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	Server   Server
	Database Database
	Log      Log
	CORS     CORS
	Rollover Rollover
}

// Server configures the HTTP listener.
type Server struct {
	Port            int           `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Database configures the calendar registry.
type Database struct {
	// Path to the SQLite file. ":memory:" keeps everything in memory.
	Path string `env:"DB_PATH" env-default:"fiscal.db"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// CORS lists the origins allowed to call the API from a browser.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://localhost:8080" env-separator:","`
}

// Rollover configures the background job that advances expired calendars.
type Rollover struct {
	Enabled  bool          `env:"ROLLOVER_ENABLED" env-default:"false"`
	Interval time.Duration `env:"ROLLOVER_INTERVAL" env-default:"1h"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns every problem with the configuration in one error.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, "database path cannot be empty")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be one of [text json]", c.Log.Format))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "shutdown timeout must be positive")
	}
	if c.Rollover.Enabled && c.Rollover.Interval <= 0 {
		errs = append(errs, "rollover interval must be positive when rollover is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of [debug info warn error]", level)
}
