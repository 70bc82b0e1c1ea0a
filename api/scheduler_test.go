package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/fiscal-year/fiscalyear"
	"github.com/warp/fiscal-year/generic"
	"github.com/warp/fiscal-year/logging"
	"github.com/warp/fiscal-year/store/sqlite"
)

func newTestHandler(t *testing.T, definitions ...string) *Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, logging.Nop())
	for _, js := range definitions {
		def, _, err := h.Factory.ParseCalendar(js)
		require.NoError(t, err)
		require.NoError(t, h.saveDefinition(context.Background(), *def))
	}
	return h
}

func storedYear(t *testing.T, h *Handler, id string) *fiscalyear.FinancialYear {
	t.Helper()
	record, err := h.Store.GetCalendar(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, record)
	fy, err := h.Factory.Build(record.ConfigJSON)
	require.NoError(t, err)
	return fy
}

func TestRolloverScheduler_RollsExpiredCalendars(t *testing.T) {
	// GIVEN: One calendar three years behind and one still current
	h := newTestHandler(t,
		fiscalyear.RetailYearJSON("retail", "Retail", "2020-01-05", true),
		fiscalyear.UKTaxYearJSON(2022),
	)
	rs := NewRolloverScheduler(h)
	rs.Today = func() generic.Date { return generic.MustParseDate("2023-03-01") }

	// WHEN: Running a check
	rolled, err := rs.RunNow(context.Background())

	// THEN: Only the expired calendar moves, all the way to the current year
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)

	retail := storedYear(t, h, "retail")
	assert.Equal(t, generic.MustParseDate("2023-01-08"), retail.StartDate())
	assert.False(t, retail.FiftyThreeWeeks())
	assert.True(t, retail.Contains(rs.Today()))

	tax := storedYear(t, h, "uk-tax-2022")
	assert.Equal(t, generic.MustParseDate("2022-04-06"), tax.StartDate())

	// AND: A second run has nothing to do
	rolled, err = rs.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, rolled)
}

func TestRolloverScheduler_StartRunsImmediately(t *testing.T) {
	h := newTestHandler(t, fiscalyear.CalendarYearJSON("cal", "Cal", "2021-01-01"))
	rs := NewRolloverScheduler(h)
	rs.CheckInterval = time.Hour
	rs.Today = func() generic.Date { return generic.MustParseDate("2023-06-15") }

	rs.Start()
	rs.Stop()

	assert.Equal(t, generic.MustParseDate("2023-01-01"), storedYear(t, h, "cal").StartDate())
}

func TestRolloverScheduler_Disabled(t *testing.T) {
	h := newTestHandler(t, fiscalyear.CalendarYearJSON("cal", "Cal", "2021-01-01"))
	rs := NewRolloverScheduler(h)
	rs.Enabled = false

	rs.Start()
	rs.Stop()

	assert.Equal(t, generic.MustParseDate("2021-01-01"), storedYear(t, h, "cal").StartDate())
}

func TestRolloverCalendar_Endpoint(t *testing.T) {
	srv := newTestServer(t)
	createRetail(t, srv)

	resp := do(t, srv, http.MethodPost, "/api/calendars/retail-2023/rollover", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cal := decode[CalendarDTO](t, resp)
	assert.Equal(t, generic.MustParseDate("2023-12-31"), cal.StartDate)
	assert.Equal(t, generic.MustParseDate("2024-12-28"), cal.EndDate)
	assert.Equal(t, 2, cal.Version)

	resp = do(t, srv, http.MethodPost, "/api/calendars/missing/rollover", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
