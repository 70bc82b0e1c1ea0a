/*
Package generic provides the date primitives the financial year engine is built on.

PURPOSE:
  A financial year is pure calendar arithmetic: start dates, end dates and
  day offsets. This package owns the one date value the rest of the module
  passes around, plus the inclusive day range used to describe periods and
  weeks. Nothing here knows about financial years.

KEY CONCEPTS:
  - Date:  A calendar day, always stored as UTC midnight (start of day)
  - Range: An inclusive [Start, End] run of days (see period.go)

DESIGN PRINCIPLES:
  1. Immutability: every arithmetic method returns a new Date
  2. Day granularity: time-of-day is dropped on construction
  3. One canonical text form: YYYY-MM-DD

USAGE:
  d, err := generic.ParseDate("2023-01-01")
  end := d.AddYears(1).AddDays(-1)

SEE ALSO:
  - period.go: Range type built from two Dates
  - errors.go: InvalidDateError
*/
package generic

import (
	"time"
)

// DateLayout is the only textual form a Date is parsed from or printed as.
const DateLayout = "2006-01-02"

// =============================================================================
// DATE - Calendar day at start of day
// =============================================================================

// Date is a calendar day. The zero value is not a valid date; use IsZero to
// check for it.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the time-of-day of t, keeping the calendar date t has in its
// own location.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s, Err: err}
	}
	return FromTime(t), nil
}

// MustParseDate is ParseDate for fixtures and presets. It panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func Today() Date { return FromTime(time.Now()) }

// StartOfDay is the identity on an already normalized Date. It exists so
// callers holding a Date can state the normalization explicitly.
func (d Date) StartOfDay() Date { return FromTime(d.t) }

// Comparison
func (d Date) Before(other Date) bool       { return d.t.Before(other.t) }
func (d Date) After(other Date) bool        { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool        { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Between reports whether d lies in [from, to], both ends included.
func (d Date) Between(from, to Date) bool {
	return d.AfterOrEqual(from) && d.BeforeOrEqual(to)
}

// Arithmetic. Month and year steps follow time.AddDate normalization, so
// Jan 31 + 1 month is Mar 3 (or Mar 2 in a leap year).
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddWeeks(n int) Date  { return Date{t: d.t.AddDate(0, 0, 7*n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Time() time.Time        { return d.t }
func (d Date) String() string         { return d.t.Format(DateLayout) }

// DaysUntil returns the number of days from d to other. Negative when other
// is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// =============================================================================
// ENCODING
// =============================================================================

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
