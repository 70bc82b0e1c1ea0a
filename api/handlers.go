/*
handlers.go - HTTP API handlers for the financial year service

PURPOSE:
  Exposes the financial year engine via REST API. Calendars (named
  financial year definitions) live in the SQLite registry; every request
  rebuilds a fresh FinancialYear from the stored definition, so no
  FinancialYear is ever shared between requests.

ENDPOINTS:
  Calendars:
    GET    /api/calendars                       List calendars
    POST   /api/calendars                       Create calendar from JSON
    POST   /api/calendars/defaults              Seed preset calendars
    GET    /api/calendars/{id}                  Calendar with derived dates
    PUT    /api/calendars/{id}                  Change type/start/53 weeks
    DELETE /api/calendars/{id}                  Delete calendar
    POST   /api/calendars/{id}/rollover         Advance to the next financial year

  Periods and weeks:
    GET    /api/calendars/{id}/periods                     All 12 periods
    GET    /api/calendars/{id}/periods/{period}            One period (?days=true lists dates)
    GET    /api/calendars/{id}/periods/{period}/weeks/{n}  n-th week (1..4) of a period
    GET    /api/calendars/{id}/weeks                       All business weeks
    GET    /api/calendars/{id}/weeks/extra                 The 53rd week
    GET    /api/calendars/{id}/weeks/{week}                One business week

  Lookup:
    GET    /api/calendars/{id}/lookup?date=YYYY-MM-DD      Period, week and progress for a date

  Scenarios (scenarios.go):
    GET    /api/scenarios                       List demo scenarios
    GET    /api/scenarios/current               Currently loaded scenario
    POST   /api/scenarios/load                  Replace all calendars with a scenario

ERROR HANDLING:
  - 400: Invalid JSON, invalid date, invalid configuration or id
  - 404: Calendar not found
  - 409: Calendar id already exists
  - 422: Date outside the financial year
  - 500: Storage failures and boundary logic errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/fiscal-year/factory"
	"github.com/warp/fiscal-year/fiscalyear"
	"github.com/warp/fiscal-year/generic"
	"github.com/warp/fiscal-year/logging"
	"github.com/warp/fiscal-year/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.CalendarFactory
	Metrics *Metrics
	Logger  *logging.Logger

	mu              sync.Mutex // guards currentScenario and scenario loads
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		Store:   store,
		Factory: factory.NewCalendarFactory(),
		Metrics: NewMetrics(),
		Logger:  logger,
	}
}

// calendar is a stored definition together with the year built from it.
type calendar struct {
	record *sqlite.CalendarRecord
	def    *factory.Definition
	fy     *fiscalyear.FinancialYear
}

// loadCalendar resolves {id} and writes the error response itself when it
// returns false.
func (h *Handler) loadCalendar(w http.ResponseWriter, r *http.Request) (*calendar, bool) {
	id := chi.URLParam(r, "id")

	record, err := h.Store.GetCalendar(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load calendar", err)
		return nil, false
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "Calendar not found", nil)
		return nil, false
	}

	def, fy, err := h.Factory.ParseCalendar(record.ConfigJSON)
	if err != nil {
		logging.FromContext(r.Context()).Error("stored calendar is invalid",
			logging.FieldCalendar, id, logging.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Stored calendar is invalid", err)
		return nil, false
	}
	return &calendar{record: record, def: def, fy: fy}, true
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListCalendars returns all calendars.
// GET /api/calendars
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListCalendars(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list calendars", err)
		return
	}

	dtos := make([]CalendarDTO, 0, len(records))
	for i := range records {
		def, fy, err := h.Factory.ParseCalendar(records[i].ConfigJSON)
		if err != nil {
			logging.FromContext(r.Context()).Warn("skipping invalid stored calendar",
				logging.FieldCalendar, records[i].ID, logging.FieldError, err)
			continue
		}
		dtos = append(dtos, toCalendarDTO(*def, fy, records[i].Version))
	}

	writeJSON(w, http.StatusOK, map[string]any{"calendars": dtos})
}

// CreateCalendar creates a calendar from a JSON definition.
// POST /api/calendars
func (h *Handler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	var req factory.CalendarJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	def, fy, err := h.Factory.FromJSON(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	record, err := toRecord(*def)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode calendar", err)
		return
	}
	if err := h.Store.CreateCalendar(r.Context(), record); err != nil {
		if errors.Is(err, sqlite.ErrCalendarExists) {
			writeError(w, http.StatusConflict, "Calendar already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save calendar", err)
		return
	}

	logging.FromContext(r.Context()).Info("calendar created",
		logging.FieldCalendar, def.ID, "type", def.Type, "start_date", def.StartDate.String())
	writeJSON(w, http.StatusCreated, toCalendarDTO(*def, fy, 1))
}

// GetCalendar returns a calendar with its derived dates.
// GET /api/calendars/{id}
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCalendarDTO(*c.def, c.fy, c.record.Version))
}

// UpdateCalendar changes a calendar through the FinancialYear setters so the
// end date is recomputed by the engine, never by the handler.
// PUT /api/calendars/{id}
func (h *Handler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}

	var req UpdateCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	fy, err := applyUpdate(c.fy, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	name := c.def.Name
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}
	def := factory.DefinitionOf(c.def.ID, name, fy)

	if err := h.saveDefinition(r.Context(), def); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calendar", err)
		return
	}

	logging.FromContext(r.Context()).Info("calendar updated",
		logging.FieldCalendar, def.ID, "end_date", fy.EndDate().String())
	writeJSON(w, http.StatusOK, toCalendarDTO(def, fy, c.record.Version+1))
}

// applyUpdate applies req to fy. Changing type and start date together
// builds a new year, since either setter alone may reject the intermediate
// combination (e.g. a business year on the 30th becoming a calendar year on
// the 1st).
func applyUpdate(fy *fiscalyear.FinancialYear, req UpdateCalendarRequest) (*fiscalyear.FinancialYear, error) {
	if req.Type != nil && req.StartDate != nil {
		start, err := generic.ParseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		fiftyThree := fy.FiftyThreeWeeks()
		if req.FiftyThreeWeeks != nil {
			fiftyThree = *req.FiftyThreeWeeks
		}
		return fiscalyear.New(fiscalyear.YearType(*req.Type), start, fiftyThree)
	}

	if req.Type != nil {
		if err := fy.SetYearType(fiscalyear.YearType(*req.Type)); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil {
		if err := fy.SetStartDateString(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.FiftyThreeWeeks != nil {
		if err := fy.SetFiftyThreeWeeks(*req.FiftyThreeWeeks); err != nil {
			return nil, err
		}
	}
	return fy, nil
}

// DeleteCalendar deletes a calendar.
// DELETE /api/calendars/{id}
func (h *Handler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.Store.DeleteCalendar(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete calendar", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Calendar not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// RolloverCalendar advances a calendar to the following financial year.
// POST /api/calendars/{id}/rollover
func (h *Handler) RolloverCalendar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}

	fy, err := c.fy.NextYear()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	def := factory.DefinitionOf(c.def.ID, c.def.Name, fy)
	if err := h.saveDefinition(r.Context(), def); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calendar", err)
		return
	}

	h.Metrics.ObserveRollover("manual")
	logging.FromContext(r.Context()).Info("calendar rolled over",
		logging.FieldCalendar, def.ID, "start_date", fy.StartDate().String())
	writeJSON(w, http.StatusOK, toCalendarDTO(def, fy, c.record.Version+1))
}

// SeedDefaults stores the preset calendars for ?year= (default: this year).
// POST /api/calendars/defaults
func (h *Handler) SeedDefaults(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	ids := make([]string, 0)
	for _, preset := range fiscalyear.DefaultPresets(year) {
		def, _, err := h.Factory.ParseCalendar(preset)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := h.saveDefinition(r.Context(), *def); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save calendar", err)
			return
		}
		ids = append(ids, def.ID)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":    "created",
		"calendars": ids,
	})
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// ListPeriods returns all 12 periods with their share of the year.
// GET /api/calendars/{id}/periods
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}

	periods, err := c.fy.Periods()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]RangeDTO, 0, len(periods))
	for i, p := range periods {
		dto := toRangeDTO(i+1, p)
		share, err := c.fy.PeriodShare(i + 1)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		dto.Share = &share
		dtos = append(dtos, dto)
	}

	writeJSON(w, http.StatusOK, map[string]any{"periods": dtos})
}

// GetPeriod returns one period. With ?days=true the response lists every
// date in it.
// GET /api/calendars/{id}/periods/{period}
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}
	id, ok := intParam(w, r, "period")
	if !ok {
		return
	}

	p, err := c.fy.Period(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	share, err := c.fy.PeriodShare(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toRangeDTO(id, p)
	dto.Share = &share
	if wantDays(r) {
		dto.Dates = p.Days()
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetPeriodWeek returns the n-th week (1..4) of a period.
// GET /api/calendars/{id}/periods/{period}/weeks/{n}
func (h *Handler) GetPeriodWeek(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}
	periodID, ok := intParam(w, r, "period")
	if !ok {
		return
	}
	n, ok := intParam(w, r, "n")
	if !ok {
		return
	}

	week, err := c.fy.NthWeekOfPeriod(periodID, n)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toRangeDTO(fiscalyear.WeekIDForPeriod(periodID, n), week)
	if wantDays(r) {
		dto.Dates = week.Days()
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// WEEK HANDLERS
// =============================================================================

// ListWeeks returns every business week.
// GET /api/calendars/{id}/weeks
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}

	weeks, err := c.fy.Weeks()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]RangeDTO, 0, len(weeks))
	for i, wk := range weeks {
		dtos = append(dtos, toRangeDTO(i+1, wk))
	}
	writeJSON(w, http.StatusOK, map[string]any{"weeks": dtos})
}

// GetWeek returns one business week.
// GET /api/calendars/{id}/weeks/{week}
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}
	id, ok := intParam(w, r, "week")
	if !ok {
		return
	}

	week, err := c.fy.Week(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toRangeDTO(id, week)
	if wantDays(r) {
		dto.Dates = week.Days()
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetExtraWeek returns week 53, or 400 for a 52 week year.
// GET /api/calendars/{id}/weeks/extra
func (h *Handler) GetExtraWeek(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}

	week, err := c.fy.FiftyThirdWeek()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dto := toRangeDTO(fiscalyear.WeeksInLongYear, week)
	if wantDays(r) {
		dto.Dates = week.Days()
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// LOOKUP
// =============================================================================

// Lookup maps a date to its period and week.
// GET /api/calendars/{id}/lookup?date=YYYY-MM-DD
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCalendar(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.Metrics.ObserveLookup("invalid")
		writeError(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	dto, err := lookup(c.fy, raw)
	if err != nil {
		h.Metrics.ObserveLookup(lookupOutcome(err))
		if fiscalyear.IsDefect(err) {
			logging.FromContext(r.Context()).Error("lookup found no match",
				logging.FieldCalendar, c.def.ID, logging.FieldDate, raw, logging.FieldError, err)
		}
		writeDomainError(w, err)
		return
	}

	h.Metrics.ObserveLookup("ok")
	writeJSON(w, http.StatusOK, dto)
}

func lookup(fy *fiscalyear.FinancialYear, raw string) (LookupDTO, error) {
	d, err := generic.ParseDate(raw)
	if err != nil {
		return LookupDTO{}, err
	}

	periodID, err := fy.PeriodForDate(d)
	if err != nil {
		return LookupDTO{}, err
	}
	weekID, err := fy.WeekForDate(d)
	if err != nil {
		return LookupDTO{}, err
	}
	period, err := fy.Period(periodID)
	if err != nil {
		return LookupDTO{}, err
	}
	week, err := fy.Week(weekID)
	if err != nil {
		return LookupDTO{}, err
	}
	yearProgress, err := fy.YearProgress(d)
	if err != nil {
		return LookupDTO{}, err
	}
	periodProgress, err := fy.PeriodProgress(d)
	if err != nil {
		return LookupDTO{}, err
	}

	return LookupDTO{
		Date:           d,
		Period:         toRangeDTO(periodID, period),
		Week:           toRangeDTO(weekID, week),
		YearProgress:   yearProgress,
		PeriodProgress: periodProgress,
	}, nil
}

func lookupOutcome(err error) string {
	switch {
	case errors.Is(err, fiscalyear.ErrOutOfRange):
		return "out_of_range"
	case fiscalyear.IsClientError(err):
		return "invalid"
	default:
		return "error"
	}
}

// Healthz reports whether the registry is reachable.
// GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generic.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
	case errors.Is(err, fiscalyear.ErrConfig):
		writeError(w, http.StatusBadRequest, "Invalid financial year configuration", err)
	case errors.Is(err, fiscalyear.ErrOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "Date out of range", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" id", err)
		return 0, false
	}
	return v, true
}

func wantDays(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("days"))
	return v
}

// saveDefinition upserts def, bumping the stored version.
func (h *Handler) saveDefinition(ctx context.Context, def factory.Definition) error {
	record, err := toRecord(def)
	if err != nil {
		return err
	}
	return h.Store.SaveCalendar(ctx, record)
}

func toRecord(def factory.Definition) (sqlite.CalendarRecord, error) {
	configJSON, err := def.JSON()
	if err != nil {
		return sqlite.CalendarRecord{}, err
	}
	return sqlite.CalendarRecord{
		ID:              def.ID,
		Name:            def.Name,
		YearType:        string(def.Type),
		StartDate:       def.StartDate.String(),
		FiftyThreeWeeks: def.FiftyThreeWeeks,
		ConfigJSON:      configJSON,
	}, nil
}

func toCalendarDTO(def factory.Definition, fy *fiscalyear.FinancialYear, version int) CalendarDTO {
	next, _ := fy.NextYearStartDate()
	days, _ := fy.Days()
	return CalendarDTO{
		ID:                def.ID,
		Name:              def.Name,
		Type:              string(fy.Type()),
		StartDate:         fy.StartDate(),
		EndDate:           fy.EndDate(),
		NextYearStartDate: next,
		FiftyThreeWeeks:   fy.FiftyThreeWeeks(),
		WeekCount:         fy.WeekCount(),
		PeriodCount:       fy.PeriodCount(),
		Days:              days,
		Version:           version,
	}
}
