/*
Package fiscalyear computes the structure of a financial year that need not
line up with the calendar year.

PURPOSE:
  Given a start date, a year type and a 52/53 week setting, a FinancialYear
  derives its end date, splits the year into 12 periods and 52 or 53
  business weeks, and maps any date inside the year back to its period and
  week.

YEAR TYPES:
  calendar: 12 month-aligned periods. Period p starts p-1 months after the
            year start. The year ends one calendar year after it starts.
  business: 12 periods of 4 weeks. The year ends 52 or 53 weeks after it
            starts; period 12 absorbs everything after week 44.

TAIL RULE:
  The first period/week always starts on the year start date and the last
  period/week always ends on the year end date. Remainder days (leap years,
  the 53rd week) land in the last period/week, never spread out.

USAGE:
  fy, err := fiscalyear.New(fiscalyear.Business, generic.MustParseDate("2023-01-01"), false)
  fy.EndDate()                 // 2023-12-31
  fy.FirstDateOfPeriod(2)      // 2023-01-29
  fy.PeriodForDate(someDate)   // 1..12

SEE ALSO:
  - validator.go: configuration checks
  - financial_year.go: boundaries and mutators
  - lookup.go: date -> period/week
  - presets.go: JSON definitions for common calendars
*/
package fiscalyear

// =============================================================================
// YEAR TYPE
// =============================================================================

// YearType selects how the year is split into periods.
type YearType string

const (
	Calendar YearType = "calendar" // 12 month-aligned periods
	Business YearType = "business" // 12 periods of 4 weeks
)

func (t YearType) String() string { return string(t) }

// =============================================================================
// SHAPE CONSTANTS
// =============================================================================

const (
	// PeriodCount is fixed for both year types.
	PeriodCount = 12

	// WeeksPerPeriod is the number of business weeks in a business period
	// and the number of ordinal weeks addressable within any period.
	WeeksPerPeriod = 4

	WeeksInShortYear = 52
	WeeksInLongYear  = 53
)

// WeekCountFor converts the fifty-three weeks flag into a week count.
func WeekCountFor(fiftyThreeWeeks bool) int {
	if fiftyThreeWeeks {
		return WeeksInLongYear
	}
	return WeeksInShortYear
}

// =============================================================================
// CONFIG
// =============================================================================

// Config is the validated shape of a financial year, without its dates.
type Config struct {
	Type        YearType
	PeriodCount int
	WeekCount   int
}

// FiftyThreeWeeks reports whether the configuration carries the extra week.
func (c Config) FiftyThreeWeeks() bool { return c.WeekCount == WeeksInLongYear }
