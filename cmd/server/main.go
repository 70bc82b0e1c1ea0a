/*
main.go - Application entry point

PURPOSE:
  Starts the financial year HTTP service: loads configuration, opens the
  SQLite calendar registry, wires the router and shuts down gracefully.

STARTUP SEQUENCE:
  1. Load .env (optional) and environment configuration
  2. Apply command-line flag overrides
  3. Initialize logger and SQLite store
  4. Configure HTTP router and the rollover scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for an in-memory database

ENVIRONMENT:
  PORT, DB_PATH, LOG_LEVEL, LOG_FORMAT, CORS_ALLOWED_ORIGINS,
  HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT,
  HTTP_SHUTDOWN_TIMEOUT, ROLLOVER_ENABLED, ROLLOVER_INTERVAL
  (see config/config.go)

EXAMPLES:
  ./server -db="./data/fiscal.db"
  LOG_FORMAT=json ./server -port=3000
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/warp/fiscal-year/api"
	"github.com/warp/fiscal-year/config"
	"github.com/warp/fiscal-year/logging"
	"github.com/warp/fiscal-year/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags
	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.Database.Path = *dbPath
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	root := logging.New(logging.Config{Level: level, Format: cfg.Log.Format})
	logging.SetDefault(root)
	logger := root.WithComponent(logging.ComponentApp)

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, root)
	router := api.NewRouter(handler, cfg.CORS.AllowedOrigins)

	scheduler := api.NewRolloverScheduler(handler)
	scheduler.Enabled = cfg.Rollover.Enabled
	scheduler.CheckInterval = cfg.Rollover.Interval
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr, "db", cfg.Database.Path, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
