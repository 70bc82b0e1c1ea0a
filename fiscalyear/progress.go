package fiscalyear

import (
	"github.com/shopspring/decimal"
	"github.com/warp/fiscal-year/generic"
)

// ProgressPlaces is the number of decimal places progress values are
// rounded to.
const ProgressPlaces = 4

// =============================================================================
// PROGRESS - how far through the year a date is
// =============================================================================

// Days returns the number of days in the year (364, 365, 366 or 371).
func (fy *FinancialYear) Days() (int, error) {
	r, err := fy.Range()
	if err != nil {
		return 0, err
	}
	return r.Len(), nil
}

// YearProgress returns the share of the year elapsed by the end of d, so
// the start date gives 1/days and the end date gives exactly 1.
func (fy *FinancialYear) YearProgress(d generic.Date) (decimal.Decimal, error) {
	if err := fy.checkInYear(d); err != nil {
		return decimal.Zero, err
	}
	elapsed := fy.start.DaysUntil(d.StartOfDay()) + 1
	total := fy.start.DaysUntil(fy.end) + 1
	return ratio(elapsed, total), nil
}

// PeriodShare returns the length of period id as a share of the year.
func (fy *FinancialYear) PeriodShare(id int) (decimal.Decimal, error) {
	p, err := fy.Period(id)
	if err != nil {
		return decimal.Zero, err
	}
	total := fy.start.DaysUntil(fy.end) + 1
	return ratio(p.Len(), total), nil
}

// PeriodProgress returns the share of d's period elapsed by the end of d.
func (fy *FinancialYear) PeriodProgress(d generic.Date) (decimal.Decimal, error) {
	id, err := fy.PeriodForDate(d)
	if err != nil {
		return decimal.Zero, err
	}
	start := fy.periodStart(id)
	elapsed := start.DaysUntil(d.StartOfDay()) + 1
	return ratio(elapsed, start.DaysUntil(fy.periodEnd(id))+1), nil
}

func ratio(part, whole int) decimal.Decimal {
	return decimal.NewFromInt(int64(part)).
		DivRound(decimal.NewFromInt(int64(whole)), ProgressPlaces)
}
