/*
scheduler.go - Automated financial year rollover

PURPOSE:
  Periodically checks stored calendars whose financial year has ended and
  advances them to the year that contains today, so "the current retail
  year" keeps pointing at the current year without manual edits.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Detects calendars whose end date is before today
  - Rolls each one forward with FinancialYear.NextYear until it covers today
  - The 53 week flag is dropped on rollover (see NextYear)

CONFIGURATION:
  - CheckInterval: How often to check (ROLLOVER_INTERVAL, default: 1 hour)
  - Enabled: Whether scheduler is active (ROLLOVER_ENABLED, default: false)

USAGE:
  scheduler := NewRolloverScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RolloverCalendar endpoint (manual rollover)
  - fiscalyear/financial_year.go: NextYear
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/warp/fiscal-year/factory"
	"github.com/warp/fiscal-year/generic"
	"github.com/warp/fiscal-year/logging"
)

// RolloverScheduler handles automated year-end rollover.
type RolloverScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	// Today returns the current date. Overridden in tests.
	Today func() generic.Date

	logger *logging.Logger
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRolloverScheduler creates a new scheduler.
func NewRolloverScheduler(handler *Handler) *RolloverScheduler {
	return &RolloverScheduler{
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		Today:         generic.Today,
		logger:        handler.Logger.WithComponent(logging.ComponentScheduler),
	}
}

// Start begins the scheduler.
func (rs *RolloverScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		rs.logger.Info("rollover scheduler disabled, not starting")
		return
	}
	if rs.ticker != nil {
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.stop = make(chan struct{})
	rs.wg.Add(1)

	go rs.run()

	rs.logger.Info("rollover scheduler started", "interval", rs.CheckInterval)
}

// Stop stops the scheduler and waits for an in-flight check to finish.
func (rs *RolloverScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		rs.logger.Info("rollover scheduler stopped")
	}
}

func (rs *RolloverScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndProcess()

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndProcess()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RolloverScheduler) checkAndProcess() {
	if _, err := rs.RunNow(context.Background()); err != nil {
		rs.logger.Error("rollover check failed", logging.FieldError, err)
	}
}

// RunNow rolls every expired calendar forward and returns how many were
// changed. A calendar that cannot be parsed or saved is logged and skipped.
func (rs *RolloverScheduler) RunNow(ctx context.Context) (int, error) {
	h := rs.Handler
	today := rs.Today()

	records, err := h.Store.ListCalendars(ctx)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for _, record := range records {
		def, fy, err := h.Factory.ParseCalendar(record.ConfigJSON)
		if err != nil {
			rs.logger.Warn("skipping invalid stored calendar",
				logging.FieldCalendar, record.ID, logging.FieldError, err)
			continue
		}
		if !fy.EndDate().Before(today) {
			continue
		}

		years := 0
		for fy.EndDate().Before(today) {
			if fy, err = fy.NextYear(); err != nil {
				break
			}
			years++
		}
		if err != nil {
			rs.logger.Error("rollover failed",
				logging.FieldCalendar, record.ID, logging.FieldError, err)
			continue
		}

		next := factory.DefinitionOf(def.ID, def.Name, fy)
		if err := h.saveDefinition(ctx, next); err != nil {
			rs.logger.Error("failed to save rolled calendar",
				logging.FieldCalendar, record.ID, logging.FieldError, err)
			continue
		}

		h.Metrics.ObserveRollover("scheduled")
		rs.logger.Info("calendar rolled over",
			logging.FieldCalendar, record.ID,
			"years", years,
			"start_date", fy.StartDate().String(),
			"end_date", fy.EndDate().String())
		rolled++
	}

	if rolled > 0 {
		rs.logger.Info("rollover check completed", "rolled", rolled, "checked", len(records))
	}
	return rolled, nil
}

// NextRunTime returns when the next scheduled check will occur.
func (rs *RolloverScheduler) NextRunTime() time.Time {
	return time.Now().Add(rs.CheckInterval)
}
