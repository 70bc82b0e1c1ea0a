package fiscalyear

import "github.com/warp/fiscal-year/generic"

// =============================================================================
// CONFIGURATION VALIDATOR
// =============================================================================
// Pure checks. Every mutator and query runs these before touching any date
// arithmetic.

// ValidateYearType fails unless t is Calendar or Business.
func ValidateYearType(t YearType) error {
	switch t {
	case Calendar, Business:
		return nil
	}
	return configErr("type", string(t), "must be one of calendar, business")
}

// ValidateWeekCount fails unless n is 52 or 53.
func ValidateWeekCount(n int) error {
	if n != WeeksInShortYear && n != WeeksInLongYear {
		return configErr("week_count", n, "must be 52 or 53")
	}
	return nil
}

// ValidateStartDate rejects calendar type years starting on the 29th, 30th
// or 31st. Month-by-month period boundaries are ambiguous from those days
// because not every month has them.
func ValidateStartDate(t YearType, d generic.Date) error {
	if d.IsZero() {
		return configErr("start_date", d, "is required")
	}
	if t == Calendar && d.Day() > 28 {
		return configErr("start_date", d,
			"calendar type financial years cannot start on the 29th, 30th or 31st of a month")
	}
	return nil
}

// ValidatePeriodID fails unless 1 <= id <= PeriodCount.
func ValidatePeriodID(id int) error {
	if id < 1 || id > PeriodCount {
		return configErr("period_id", id, "must be between 1 and 12")
	}
	return nil
}

// ValidateWeekID fails unless 1 <= id <= weekCount. Week 53 therefore only
// exists in 53 week years.
func ValidateWeekID(id, weekCount int) error {
	if id < 1 || id > weekCount {
		return configErr("week_id", id, "must be between 1 and the year's week count")
	}
	return nil
}

// ValidateConfig checks a whole configuration together with its start date.
func ValidateConfig(t YearType, weekCount int, start generic.Date) error {
	if err := ValidateYearType(t); err != nil {
		return err
	}
	if err := ValidateWeekCount(weekCount); err != nil {
		return err
	}
	return ValidateStartDate(t, start)
}
