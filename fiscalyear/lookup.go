package fiscalyear

import (
	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// LOOKUP - date -> period id / week id
// =============================================================================

// PeriodForDate returns the id of the period containing d.
//
// Dates outside [StartDate, EndDate] fail with a *RangeError before any
// period is examined.
func (fy *FinancialYear) PeriodForDate(d generic.Date) (int, error) {
	if err := fy.checkInYear(d); err != nil {
		return 0, err
	}
	d = d.StartOfDay()

	for id := 1; id <= PeriodCount; id++ {
		if d.Between(fy.periodStart(id), fy.periodEnd(id)) {
			return id, nil
		}
	}
	// Periods tile the year, so a date inside the year always matches.
	return 0, &LogicError{Op: "period lookup", Date: d}
}

// WeekForDate returns the id of the business week containing d.
func (fy *FinancialYear) WeekForDate(d generic.Date) (int, error) {
	if err := fy.checkInYear(d); err != nil {
		return 0, err
	}
	d = d.StartOfDay()

	for id := 1; id <= fy.weekCount; id++ {
		if d.Between(fy.weekStart(id), fy.weekEnd(id)) {
			return id, nil
		}
	}
	return 0, &LogicError{Op: "week lookup", Date: d}
}

// PeriodForDateString is PeriodForDate for a YYYY-MM-DD string.
func (fy *FinancialYear) PeriodForDateString(s string) (int, error) {
	d, err := generic.ParseDate(s)
	if err != nil {
		return 0, err
	}
	return fy.PeriodForDate(d)
}

// WeekForDateString is WeekForDate for a YYYY-MM-DD string.
func (fy *FinancialYear) WeekForDateString(s string) (int, error) {
	d, err := generic.ParseDate(s)
	if err != nil {
		return 0, err
	}
	return fy.WeekForDate(d)
}

// Contains reports whether d falls inside the financial year. An
// unconfigured year contains nothing.
func (fy *FinancialYear) Contains(d generic.Date) bool {
	return fy.checkInYear(d) == nil
}

func (fy *FinancialYear) checkInYear(d generic.Date) error {
	if err := fy.ensureConfigured(); err != nil {
		return err
	}
	d = d.StartOfDay()
	if !d.Between(fy.start, fy.end) {
		return &RangeError{Date: d, Start: fy.start, End: fy.end}
	}
	return nil
}

// =============================================================================
// WEEKS WITHIN A PERIOD
// =============================================================================
// A period's n-th week is global week (periodID-1)*4 + n. For calendar type
// years that is a fixed 4 week grid over the year, not the weeks of the
// month.

// NthWeekOfPeriod returns week n (1..4) of period periodID.
func (fy *FinancialYear) NthWeekOfPeriod(periodID, n int) (generic.Range, error) {
	if err := ValidatePeriodID(periodID); err != nil {
		return generic.Range{}, err
	}
	if n < 1 || n > WeeksPerPeriod {
		return generic.Range{}, configErr("week_of_period", n, "must be between 1 and 4")
	}
	return fy.Week(WeekIDForPeriod(periodID, n))
}

// WeekIDForPeriod maps (period, ordinal week) to a global week id. It does
// not validate its arguments.
func WeekIDForPeriod(periodID, n int) int {
	return (periodID-1)*WeeksPerPeriod + n
}

func (fy *FinancialYear) FirstWeekOfPeriod(periodID int) (generic.Range, error) {
	return fy.NthWeekOfPeriod(periodID, 1)
}

func (fy *FinancialYear) SecondWeekOfPeriod(periodID int) (generic.Range, error) {
	return fy.NthWeekOfPeriod(periodID, 2)
}

func (fy *FinancialYear) ThirdWeekOfPeriod(periodID int) (generic.Range, error) {
	return fy.NthWeekOfPeriod(periodID, 3)
}

func (fy *FinancialYear) FourthWeekOfPeriod(periodID int) (generic.Range, error) {
	return fy.NthWeekOfPeriod(periodID, 4)
}

// FiftyThirdWeek returns the extra week of a 53 week year and a
// *ConfigError for 52 week years.
func (fy *FinancialYear) FiftyThirdWeek() (generic.Range, error) {
	return fy.Week(WeeksInLongYear)
}
