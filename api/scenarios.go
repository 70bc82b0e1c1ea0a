/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the registry with realistic
	calendars for demos. Each scenario replaces every stored calendar.

AVAILABLE SCENARIOS:

	retail-cycle: three consecutive retail years, the last one with 53 weeks
	uk-tax:       three consecutive UK tax years (calendar type, 6 April)
	presets:      the calendar, retail and UK tax presets for one year

HOW SCENARIOS WORK:
 1. Reset database (clear all calendars)
 2. Build the financial years through the factory / NextYear
 3. Save each one as a calendar definition

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "retail-cycle"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: xxxScenario() ([]factory.Definition, error)
 3. Add case to scenarioLoader

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - fiscalyear/presets.go: JSON definitions
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/fiscal-year/factory"
	"github.com/warp/fiscal-year/fiscalyear"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "retail-cycle",
		Name:        "Retail Cycle",
		Description: "Consecutive 4-week-period retail years 2022-2024, 2024 with a 53rd week",
		Category:    "business",
	},
	{
		ID:          "uk-tax",
		Name:        "UK Tax Years",
		Description: "Calendar type years starting 6 April, 2022-23 to 2024-25",
		Category:    "calendar",
	},
	{
		ID:          "presets",
		Name:        "Presets",
		Description: "Calendar, retail and UK tax presets for 2024",
		Category:    "mixed",
	},
}

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario replaces the registry with a predefined scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	load, ok := scenarioLoader(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}
	defs, err := load(h.Factory)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build scenario: %v", err), err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		if err := h.saveDefinition(ctx, def); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
			return
		}
		ids = append(ids, def.ID)
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "loaded",
		"scenario":  req.ScenarioID,
		"calendars": ids,
	})
}

type scenarioFunc func(f *factory.CalendarFactory) ([]factory.Definition, error)

func scenarioLoader(id string) (scenarioFunc, bool) {
	switch id {
	case "retail-cycle":
		return retailCycleScenario, true
	case "uk-tax":
		return ukTaxScenario, true
	case "presets":
		return presetsScenario, true
	}
	return nil, false
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// retailCycleScenario chains three retail years with NextYear so they abut
// exactly, then gives the last one its 53rd week.
func retailCycleScenario(f *factory.CalendarFactory) ([]factory.Definition, error) {
	fy, err := f.Build(fiscalyear.RetailYearJSON("retail-2022", "Retail 2022", "2022-01-02", false))
	if err != nil {
		return nil, err
	}

	defs := []factory.Definition{factory.DefinitionOf("retail-2022", "Retail 2022", fy)}
	for _, year := range []int{2023, 2024} {
		if fy, err = fy.NextYear(); err != nil {
			return nil, err
		}
		if year == 2024 {
			if err := fy.SetFiftyThreeWeeks(true); err != nil {
				return nil, err
			}
		}
		id := fmt.Sprintf("retail-%d", year)
		defs = append(defs, factory.DefinitionOf(id, fmt.Sprintf("Retail %d", year), fy))
	}
	return defs, nil
}

func ukTaxScenario(f *factory.CalendarFactory) ([]factory.Definition, error) {
	var defs []factory.Definition
	for year := 2022; year <= 2024; year++ {
		def, _, err := f.ParseCalendar(fiscalyear.UKTaxYearJSON(year))
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, nil
}

func presetsScenario(f *factory.CalendarFactory) ([]factory.Definition, error) {
	var defs []factory.Definition
	for _, js := range fiscalyear.DefaultPresets(2024) {
		def, _, err := f.ParseCalendar(js)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, nil
}
