package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// CALENDAR DTOs
// =============================================================================

// CalendarDTO is a stored calendar definition plus its derived dates.
type CalendarDTO struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              string       `json:"type"`
	StartDate         generic.Date `json:"start_date"`
	EndDate           generic.Date `json:"end_date"`
	NextYearStartDate generic.Date `json:"next_year_start_date"`
	FiftyThreeWeeks   bool         `json:"fifty_three_weeks"`
	WeekCount         int          `json:"week_count"`
	PeriodCount       int          `json:"period_count"`
	Days              int          `json:"days"`
	Version           int          `json:"version,omitempty"`
}

// UpdateCalendarRequest changes any subset of a calendar's settings.
type UpdateCalendarRequest struct {
	Name            *string `json:"name,omitempty"`
	Type            *string `json:"type,omitempty"`
	StartDate       *string `json:"start_date,omitempty"`
	FiftyThreeWeeks *bool   `json:"fifty_three_weeks,omitempty"`
}

// =============================================================================
// PERIOD / WEEK DTOs
// =============================================================================

// RangeDTO describes one period or business week.
type RangeDTO struct {
	ID        int              `json:"id"`
	StartDate generic.Date     `json:"start_date"`
	EndDate   generic.Date     `json:"end_date"`
	Days      int              `json:"days"`
	Share     *decimal.Decimal `json:"share,omitempty"`
	Dates     []generic.Date   `json:"dates,omitempty"`
}

// LookupDTO answers "where in the financial year is this date".
type LookupDTO struct {
	Date           generic.Date    `json:"date"`
	Period         RangeDTO        `json:"period"`
	Week           RangeDTO        `json:"week"`
	YearProgress   decimal.Decimal `json:"year_progress"`
	PeriodProgress decimal.Decimal `json:"period_progress"`
}

// =============================================================================
// SCENARIO DTOs
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toRangeDTO(id int, r generic.Range) RangeDTO {
	return RangeDTO{ID: id, StartDate: r.Start, EndDate: r.End, Days: r.Len()}
}
