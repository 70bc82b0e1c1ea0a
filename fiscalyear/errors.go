/*
errors.go - Error types for financial year configuration and lookups

ERROR CATEGORIES:
  1. Config errors   - invalid type, week count, start day or period/week id
  2. Range errors    - a lookup date outside [start, end]
  3. Logic errors    - a boundary computation bug (never the caller's fault)

Invalid date strings surface as *generic.InvalidDateError.

USAGE:
  if errors.Is(err, fiscalyear.ErrOutOfRange) {
      // the date belongs to another financial year
  }
*/
package fiscalyear

import (
	"errors"
	"fmt"

	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrConfig is returned for any configuration that cannot be represented
	// unambiguously, and for period/week ids outside the configured range.
	ErrConfig = errors.New("financial year configuration error")

	// ErrOutOfRange is returned when a lookup date is outside the year.
	ErrOutOfRange = errors.New("date out of range")

	// ErrLogic signals a broken boundary invariant.
	ErrLogic = errors.New("financial year logic error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError names the offending setting.
type ConfigError struct {
	Field   string // "type", "week_count", "start_date", "period_id", "week_id"
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// RangeError is returned by the lookups when the date lies outside the year.
type RangeError struct {
	Date  generic.Date
	Start generic.Date
	End   generic.Date
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("date out of range: %s is not within financial year [%s, %s]",
		e.Date, e.Start, e.End)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// LogicError is returned when a date passed the range check but no period
// or week claimed it.
type LogicError struct {
	Op   string
	Date generic.Date
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("%s: no match found for %s inside the financial year", e.Op, e.Date)
}

func (e *LogicError) Unwrap() error {
	return ErrLogic
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrConfig) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, generic.ErrInvalidDate)
}

// IsDefect returns true if the error points at a bug in this package.
func IsDefect(err error) bool {
	return errors.Is(err, ErrLogic)
}

func configErr(field string, value any, message string) error {
	return &ConfigError{Field: field, Value: value, Message: message}
}
