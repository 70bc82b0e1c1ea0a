package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Env: "test",
		Server: Server{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: Database{Path: ":memory:"},
		Log:      Log{Level: "info", Format: "text"},
		Rollover: Rollover{Enabled: true, Interval: time.Hour},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Server.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.Database.Path = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.Log.Level = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.Log.Format = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "enabled rollover without interval",
			mutate:      func(c *Config) { c.Rollover.Interval = 0 },
			wantErr:     true,
			errorString: "rollover interval must be positive",
		},
		{
			name:   "disabled rollover ignores interval",
			mutate: func(c *Config) { c.Rollover = Rollover{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "") // registers restore on cleanup
		require.NoError(t, os.Unsetenv(k))
	}
}

var allKeys = []string{
	"APP_ENV", "PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"HTTP_SHUTDOWN_TIMEOUT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS",
	"ROLLOVER_ENABLED", "ROLLOVER_INTERVAL",
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "fiscal.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.Rollover.Enabled)
	assert.Equal(t, time.Hour, cfg.Rollover.Interval)
}

func TestLoad_FromEnvironment(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ROLLOVER_ENABLED", "true")
	t.Setenv("ROLLOVER_INTERVAL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Rollover.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Rollover.Interval)

	level, err := ParseLevel(cfg.Log.Level)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}
