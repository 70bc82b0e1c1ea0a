/*
errors.go - Error types for the date primitives

Domain packages wrap or inspect these with errors.Is / errors.As:

    if errors.Is(err, generic.ErrInvalidDate) {
        // reject the request, the input was not YYYY-MM-DD
    }
*/
package generic

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when a date string is not a valid YYYY-MM-DD day.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a range would end before it starts.
	ErrInvalidRange = errors.New("invalid range: end before start")
)

// InvalidDateError carries the rejected input.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected %s", e.Input, "YYYY-MM-DD")
}

func (e *InvalidDateError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidDate}
	}
	return []error{ErrInvalidDate, e.Err}
}
