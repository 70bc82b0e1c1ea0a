package generic

import "iter"

// =============================================================================
// RANGE - Inclusive run of days
// =============================================================================

// Range is the inclusive span [Start, End]. Financial year periods and
// business weeks are both handed out as Ranges.
//
// Examples:
//   - Business period 2 of a year starting 2023-01-01: [2023-01-29, 2023-02-25]
//   - Week 53 of a 53-week year: seven days ending on the year end date
type Range struct {
	Start Date
	End   Date
}

// NewRange returns [start, end] or ErrInvalidRange when end is before start.
func NewRange(start, end Date) (Range, error) {
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Contains returns true if the date is within [Start, End].
func (r Range) Contains(d Date) bool {
	return d.Between(r.Start, r.End)
}

// Len returns the number of days in the range, both ends counted.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return r.Start.DaysUntil(r.End) + 1
}

// All yields every day from Start to End. The sequence can be ranged over
// any number of times.
func (r Range) All() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for current := r.Start; current.BeforeOrEqual(r.End); current = current.AddDays(1) {
			if !yield(current) {
				return
			}
		}
	}
}

// Days returns all days in the range as a slice.
func (r Range) Days() []Date {
	days := make([]Date, 0, r.Len())
	for d := range r.All() {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether the two ranges share at least one day.
func (r Range) Overlaps(other Range) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

// String returns a string representation of the range.
func (r Range) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
