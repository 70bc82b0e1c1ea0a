package fiscalyear

import (
	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// FINANCIAL YEAR - start date, derived end date, boundary arithmetic
// =============================================================================

// FinancialYear owns a start date and derives everything else from it.
//
// The end date is never set directly: every mutator that changes the type,
// the week count or the start date recomputes it from NextYearStartDate.
// A mutator that fails leaves the year exactly as it was.
//
// FinancialYear is not safe for concurrent mutation. Queries have no side
// effects and may run concurrently as long as no mutator is in flight;
// serializing mutators is the caller's job.
//
// The zero value is an unconfigured year: every query on it returns a
// *ConfigError. Use New or NewFromString.
type FinancialYear struct {
	yearType  YearType
	weekCount int
	start     generic.Date
	end       generic.Date
}

// New builds a configured financial year.
func New(t YearType, start generic.Date, fiftyThreeWeeks bool) (*FinancialYear, error) {
	weekCount := WeekCountFor(fiftyThreeWeeks)
	start = start.StartOfDay()
	if err := ValidateConfig(t, weekCount, start); err != nil {
		return nil, err
	}

	fy := &FinancialYear{yearType: t, weekCount: weekCount, start: start}
	fy.recomputeEndDate()
	return fy, nil
}

// NewFromString is New for a YYYY-MM-DD start date.
func NewFromString(t YearType, start string, fiftyThreeWeeks bool) (*FinancialYear, error) {
	d, err := generic.ParseDate(start)
	if err != nil {
		return nil, err
	}
	return New(t, d, fiftyThreeWeeks)
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (fy *FinancialYear) Type() YearType          { return fy.yearType }
func (fy *FinancialYear) WeekCount() int          { return fy.weekCount }
func (fy *FinancialYear) PeriodCount() int        { return PeriodCount }
func (fy *FinancialYear) StartDate() generic.Date { return fy.start }
func (fy *FinancialYear) EndDate() generic.Date   { return fy.end }
func (fy *FinancialYear) FiftyThreeWeeks() bool   { return fy.weekCount == WeeksInLongYear }

// Config returns the year's shape without its dates.
func (fy *FinancialYear) Config() Config {
	return Config{Type: fy.yearType, PeriodCount: PeriodCount, WeekCount: fy.weekCount}
}

// Range returns [StartDate, EndDate].
func (fy *FinancialYear) Range() (generic.Range, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Range{}, err
	}
	return generic.Range{Start: fy.start, End: fy.end}, nil
}

// =============================================================================
// MUTATORS
// =============================================================================

// SetStartDate normalizes d to the start of its day, validates it against
// the current type and recomputes the end date.
func (fy *FinancialYear) SetStartDate(d generic.Date) error {
	d = d.StartOfDay()
	if err := ValidateConfig(fy.yearType, fy.weekCount, d); err != nil {
		return err
	}
	fy.start = d
	fy.recomputeEndDate()
	return nil
}

// SetStartDateString is SetStartDate for a YYYY-MM-DD string.
func (fy *FinancialYear) SetStartDateString(s string) error {
	d, err := generic.ParseDate(s)
	if err != nil {
		return err
	}
	return fy.SetStartDate(d)
}

// SetWeekCount switches between 52 and 53 week years. The end date moves
// only when the count actually changes.
func (fy *FinancialYear) SetWeekCount(n int) error {
	if err := ValidateWeekCount(n); err != nil {
		return err
	}
	if n == fy.weekCount {
		return nil
	}
	fy.weekCount = n
	if !fy.start.IsZero() {
		fy.recomputeEndDate()
	}
	return nil
}

// SetFiftyThreeWeeks is SetWeekCount expressed as the extra-week flag.
func (fy *FinancialYear) SetFiftyThreeWeeks(fiftyThreeWeeks bool) error {
	return fy.SetWeekCount(WeekCountFor(fiftyThreeWeeks))
}

// SetYearType changes how the year is split. The current start date must be
// legal for the new type.
func (fy *FinancialYear) SetYearType(t YearType) error {
	if err := ValidateYearType(t); err != nil {
		return err
	}
	if t == fy.yearType {
		return nil
	}
	if !fy.start.IsZero() {
		if err := ValidateStartDate(t, fy.start); err != nil {
			return err
		}
	}
	fy.yearType = t
	if !fy.start.IsZero() {
		fy.recomputeEndDate()
	}
	return nil
}

// =============================================================================
// DERIVATION
// =============================================================================

// NextYearStartDate is the start of the following financial year: one
// calendar year on for calendar type, weekCount weeks on for business type.
func (fy *FinancialYear) NextYearStartDate() (generic.Date, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Date{}, err
	}
	return fy.nextStart(), nil
}

// NextYear returns the following financial year: same type, starting on
// NextYearStartDate. The 53rd week is not carried over since long years
// are the exception; set it again on the result when needed.
func (fy *FinancialYear) NextYear() (*FinancialYear, error) {
	next, err := fy.NextYearStartDate()
	if err != nil {
		return nil, err
	}
	return New(fy.yearType, next, false)
}

func (fy *FinancialYear) nextStart() generic.Date {
	if fy.yearType == Calendar {
		return fy.start.AddYears(1)
	}
	return fy.start.AddWeeks(fy.weekCount)
}

func (fy *FinancialYear) recomputeEndDate() {
	fy.end = fy.nextStart().AddDays(-1)
}

func (fy *FinancialYear) ensureConfigured() error {
	if fy == nil || fy.start.IsZero() {
		return configErr("start_date", "<unset>", "financial year has no start date")
	}
	return nil
}

// =============================================================================
// PERIOD BOUNDARIES
// =============================================================================

// FirstDateOfPeriod returns the first day of period id (1..12).
func (fy *FinancialYear) FirstDateOfPeriod(id int) (generic.Date, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Date{}, err
	}
	if err := ValidatePeriodID(id); err != nil {
		return generic.Date{}, err
	}
	return fy.periodStart(id), nil
}

// LastDateOfPeriod returns the last day of period id (1..12). Period 12
// always ends on the year end date.
func (fy *FinancialYear) LastDateOfPeriod(id int) (generic.Date, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Date{}, err
	}
	if err := ValidatePeriodID(id); err != nil {
		return generic.Date{}, err
	}
	return fy.periodEnd(id), nil
}

// Period returns period id as a day range.
func (fy *FinancialYear) Period(id int) (generic.Range, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Range{}, err
	}
	if err := ValidatePeriodID(id); err != nil {
		return generic.Range{}, err
	}
	return generic.Range{Start: fy.periodStart(id), End: fy.periodEnd(id)}, nil
}

// Periods returns all 12 periods in id order.
func (fy *FinancialYear) Periods() ([]generic.Range, error) {
	if err := fy.ensureConfigured(); err != nil {
		return nil, err
	}
	periods := make([]generic.Range, 0, PeriodCount)
	for id := 1; id <= PeriodCount; id++ {
		periods = append(periods, generic.Range{Start: fy.periodStart(id), End: fy.periodEnd(id)})
	}
	return periods, nil
}

// periodStart and periodEnd assume a configured year and a valid id.
func (fy *FinancialYear) periodStart(id int) generic.Date {
	if id == 1 {
		return fy.start
	}
	if fy.yearType == Calendar {
		return fy.start.AddMonths(id - 1)
	}
	return fy.start.AddWeeks((id - 1) * WeeksPerPeriod)
}

func (fy *FinancialYear) periodEnd(id int) generic.Date {
	if id == PeriodCount {
		return fy.end
	}
	if fy.yearType == Calendar {
		return fy.start.AddMonths(id).AddDays(-1)
	}
	return fy.start.AddWeeks(id * WeeksPerPeriod).AddDays(-1)
}

// =============================================================================
// BUSINESS WEEK BOUNDARIES
// =============================================================================
// Weeks are counted in 7 day steps from the start date for both year types.

// FirstDateOfWeek returns the first day of business week id.
func (fy *FinancialYear) FirstDateOfWeek(id int) (generic.Date, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Date{}, err
	}
	if err := ValidateWeekID(id, fy.weekCount); err != nil {
		return generic.Date{}, err
	}
	return fy.weekStart(id), nil
}

// LastDateOfWeek returns the last day of business week id. The final week
// always ends on the year end date.
func (fy *FinancialYear) LastDateOfWeek(id int) (generic.Date, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Date{}, err
	}
	if err := ValidateWeekID(id, fy.weekCount); err != nil {
		return generic.Date{}, err
	}
	return fy.weekEnd(id), nil
}

// Week returns business week id as a day range.
func (fy *FinancialYear) Week(id int) (generic.Range, error) {
	if err := fy.ensureConfigured(); err != nil {
		return generic.Range{}, err
	}
	if err := ValidateWeekID(id, fy.weekCount); err != nil {
		return generic.Range{}, err
	}
	return generic.Range{Start: fy.weekStart(id), End: fy.weekEnd(id)}, nil
}

// Weeks returns every business week in id order.
func (fy *FinancialYear) Weeks() ([]generic.Range, error) {
	if err := fy.ensureConfigured(); err != nil {
		return nil, err
	}
	weeks := make([]generic.Range, 0, fy.weekCount)
	for id := 1; id <= fy.weekCount; id++ {
		weeks = append(weeks, generic.Range{Start: fy.weekStart(id), End: fy.weekEnd(id)})
	}
	return weeks, nil
}

func (fy *FinancialYear) weekStart(id int) generic.Date {
	if id == 1 {
		return fy.start
	}
	return fy.start.AddWeeks(id - 1)
}

func (fy *FinancialYear) weekEnd(id int) generic.Date {
	if id == fy.weekCount {
		return fy.end
	}
	return fy.start.AddWeeks(id).AddDays(-1)
}
