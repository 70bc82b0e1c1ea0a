/*
presets.go - JSON definitions for common financial year calendars

These produce the JSON accepted by factory.CalendarFactory, so presets go
through the same validation as user supplied definitions.

AVAILABLE PRESETS:
  CalendarYearJSON: month-aligned year starting on a given day (<= 28th)
  RetailYearJSON:   4-4-4... business year of 52 or 53 weeks
  UKTaxYearJSON:    calendar type year starting 6 April

EXAMPLE:
  fy, err := factory.NewCalendarFactory().Build(fiscalyear.RetailYearJSON("retail-2023", "Retail 2023", "2023-01-01", false))
*/
package fiscalyear

import (
	"encoding/json"
	"fmt"
)

// CalendarYearJSON returns JSON for a calendar type year.
func CalendarYearJSON(id, name, startDate string) string {
	cj := map[string]interface{}{
		"id":         id,
		"name":       name,
		"type":       string(Calendar),
		"start_date": startDate,
	}
	b, _ := json.MarshalIndent(cj, "", "  ")
	return string(b)
}

// RetailYearJSON returns JSON for a business type year.
func RetailYearJSON(id, name, startDate string, fiftyThreeWeeks bool) string {
	cj := map[string]interface{}{
		"id":                id,
		"name":              name,
		"type":              string(Business),
		"start_date":        startDate,
		"fifty_three_weeks": fiftyThreeWeeks,
	}
	b, _ := json.MarshalIndent(cj, "", "  ")
	return string(b)
}

// UKTaxYearJSON returns JSON for the UK tax year beginning 6 April of year.
func UKTaxYearJSON(year int) string {
	return CalendarYearJSON(
		fmt.Sprintf("uk-tax-%d", year),
		fmt.Sprintf("UK tax year %d-%02d", year, (year+1)%100),
		fmt.Sprintf("%d-04-06", year),
	)
}

// DefaultPresets returns the definitions seeded by the API defaults endpoint.
func DefaultPresets(year int) []string {
	return []string{
		CalendarYearJSON(fmt.Sprintf("calendar-%d", year), fmt.Sprintf("Calendar %d", year), fmt.Sprintf("%d-01-01", year)),
		RetailYearJSON(fmt.Sprintf("retail-%d", year), fmt.Sprintf("Retail %d", year), fmt.Sprintf("%d-01-01", year), false),
		UKTaxYearJSON(year),
	}
}
