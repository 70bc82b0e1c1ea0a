/*
Package sqlite provides a SQLite-backed registry of financial year calendars.

PURPOSE:
  The financial year engine itself is stateless arithmetic. The API keeps
  named calendar definitions (type, start date, 53 week flag) so clients can
  refer to them by id. This package persists those definitions.

KEY TABLES:
  calendars: One row per named calendar definition (versioned on update)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/fiscal.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - factory/calendar.go: JSON definitions stored in config_json
  - api/handlers.go: Registry endpoints
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCalendarExists is returned by CreateCalendar when the id is taken.
var ErrCalendarExists = errors.New("calendar already exists")

// Store implements calendar persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a fresh database.
	if strings.HasPrefix(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calendars (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		year_type TEXT NOT NULL CHECK (year_type IN ('calendar', 'business')),
		start_date TEXT NOT NULL,
		fifty_three_weeks INTEGER NOT NULL DEFAULT 0,
		config_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calendars_name ON calendars(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALENDAR STORE
// =============================================================================

// CalendarRecord is a stored calendar definition with its JSON config.
type CalendarRecord struct {
	ID              string
	Name            string
	YearType        string
	StartDate       string // YYYY-MM-DD
	FiftyThreeWeeks bool
	ConfigJSON      string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const calendarColumns = "id, name, year_type, start_date, fifty_three_weeks, config_json, version, created_at, updated_at"

// SaveCalendar inserts a calendar or replaces an existing one, bumping its
// version.
func (s *Store) SaveCalendar(ctx context.Context, c CalendarRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO calendars (` + calendarColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			year_type = excluded.year_type,
			start_date = excluded.start_date,
			fifty_three_weeks = excluded.fifty_three_weeks,
			config_json = excluded.config_json,
			version = calendars.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.YearType, c.StartDate, c.FiftyThreeWeeks, c.ConfigJSON, now, now,
	)
	return err
}

// CreateCalendar inserts a calendar and fails with ErrCalendarExists if the
// id is already taken.
func (s *Store) CreateCalendar(ctx context.Context, c CalendarRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calendars (`+calendarColumns+`) VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		c.ID, c.Name, c.YearType, c.StartDate, c.FiftyThreeWeeks, c.ConfigJSON, now, now,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", ErrCalendarExists, c.ID)
	}
	return err
}

// GetCalendar retrieves a calendar by ID. Returns nil, nil when missing.
func (s *Store) GetCalendar(ctx context.Context, id string) (*CalendarRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+calendarColumns+" FROM calendars WHERE id = ?", id)
	c, err := scanCalendar(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCalendars returns all calendars ordered by name.
func (s *Store) ListCalendars(ctx context.Context) ([]CalendarRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+calendarColumns+" FROM calendars ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calendars []CalendarRecord
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, c)
	}
	return calendars, rows.Err()
}

// DeleteCalendar removes a calendar. Reports whether a row was deleted.
func (s *Store) DeleteCalendar(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calendars WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Reset deletes every calendar.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM calendars")
	return err
}

// Helper functions

type scanner interface {
	Scan(dest ...any) error
}

func scanCalendar(row scanner) (CalendarRecord, error) {
	var c CalendarRecord
	var createdAt, updatedAt string
	if err := row.Scan(
		&c.ID, &c.Name, &c.YearType, &c.StartDate, &c.FiftyThreeWeeks,
		&c.ConfigJSON, &c.Version, &createdAt, &updatedAt,
	); err != nil {
		return CalendarRecord{}, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return c, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
