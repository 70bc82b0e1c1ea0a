/*
Package factory provides JSON to Go financial year conversion.

PURPOSE:
  Converts JSON calendar definitions into fiscalyear.FinancialYear values.
  Definitions are what the API accepts and what the store persists; the
  FinancialYear itself is always rebuilt from the definition.

JSON SCHEMA:
  {
    "id": "retail-2023",
    "name": "Retail 2023",
    "type": "business",
    "start_date": "2023-01-01",
    "fifty_three_weeks": false
  }

KEY FEATURES:
  - Validates through the fiscalyear validator (same rules as New)
  - Assigns a uuid when id is empty
  - Round-trips definitions back to JSON for storage

USAGE:
  f := factory.NewCalendarFactory()
  def, fy, err := f.ParseCalendar(fiscalyear.RetailYearJSON("retail-2023", "Retail 2023", "2023-01-01", false))

SEE ALSO:
  - fiscalyear/presets.go: ready-made definitions
  - store/sqlite/sqlite.go: calendar persistence
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/warp/fiscal-year/fiscalyear"
	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a financial year definition.
type CalendarJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	StartDate       string `json:"start_date"`
	FiftyThreeWeeks bool   `json:"fifty_three_weeks,omitempty"`
}

// Definition is a validated calendar definition.
type Definition struct {
	ID              string
	Name            string
	Type            fiscalyear.YearType
	StartDate       generic.Date
	FiftyThreeWeeks bool
}

// Build constructs the financial year described by the definition.
func (d Definition) Build() (*fiscalyear.FinancialYear, error) {
	return fiscalyear.New(d.Type, d.StartDate, d.FiftyThreeWeeks)
}

// JSON returns the definition in its storage form.
func (d Definition) JSON() (string, error) {
	b, err := json.Marshal(CalendarJSON{
		ID:              d.ID,
		Name:            d.Name,
		Type:            string(d.Type),
		StartDate:       d.StartDate.String(),
		FiftyThreeWeeks: d.FiftyThreeWeeks,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DefinitionOf captures the current state of a financial year under the
// given id and name.
func DefinitionOf(id, name string, fy *fiscalyear.FinancialYear) Definition {
	return Definition{
		ID:              id,
		Name:            name,
		Type:            fy.Type(),
		StartDate:       fy.StartDate(),
		FiftyThreeWeeks: fy.FiftyThreeWeeks(),
	}
}

// =============================================================================
// FACTORY
// =============================================================================

// CalendarFactory creates financial years from JSON.
type CalendarFactory struct {
	newID func() string
}

// NewCalendarFactory creates a factory that assigns random uuids.
func NewCalendarFactory() *CalendarFactory {
	return &CalendarFactory{newID: func() string { return uuid.NewString() }}
}

// ParseCalendar parses and validates a JSON definition.
func (f *CalendarFactory) ParseCalendar(jsonStr string) (*Definition, *fiscalyear.FinancialYear, error) {
	var cj CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, nil, fmt.Errorf("invalid calendar JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// FromJSON validates an already decoded definition.
func (f *CalendarFactory) FromJSON(cj CalendarJSON) (*Definition, *fiscalyear.FinancialYear, error) {
	start, err := generic.ParseDate(strings.TrimSpace(cj.StartDate))
	if err != nil {
		return nil, nil, err
	}

	def := &Definition{
		ID:              strings.TrimSpace(cj.ID),
		Name:            strings.TrimSpace(cj.Name),
		Type:            fiscalyear.YearType(strings.ToLower(strings.TrimSpace(cj.Type))),
		StartDate:       start,
		FiftyThreeWeeks: cj.FiftyThreeWeeks,
	}
	if def.ID == "" {
		def.ID = f.newID()
	}
	if def.Name == "" {
		def.Name = def.ID
	}

	fy, err := def.Build()
	if err != nil {
		return nil, nil, err
	}
	return def, fy, nil
}

// Build parses a JSON definition and returns only the financial year.
func (f *CalendarFactory) Build(jsonStr string) (*fiscalyear.FinancialYear, error) {
	_, fy, err := f.ParseCalendar(jsonStr)
	return fy, err
}
