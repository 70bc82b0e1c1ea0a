package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/fiscal-year/generic"
)

func week(start string) generic.Range {
	s := generic.MustParseDate(start)
	return generic.Range{Start: s, End: s.AddDays(6)}
}

func TestRange_Contains(t *testing.T) {
	r := week("2023-01-01")

	if !r.Contains(r.Start) || !r.Contains(r.End) {
		t.Error("range must include both ends")
	}
	if r.Contains(r.Start.AddDays(-1)) || r.Contains(r.End.AddDays(1)) {
		t.Error("range must exclude neighbours")
	}
}

func TestRange_DaysAndLen(t *testing.T) {
	r := week("2023-12-28")

	days := r.Days()
	if len(days) != 7 || r.Len() != 7 {
		t.Fatalf("expected 7 days, got %d (Len %d)", len(days), r.Len())
	}
	if days[0].String() != "2023-12-28" || days[6].String() != "2024-01-03" {
		t.Errorf("unexpected days %v", days)
	}
}

func TestRange_AllIsRestartable(t *testing.T) {
	r := week("2024-02-26")

	count := func() int {
		n := 0
		for range r.All() {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 7 || second != 7 {
		t.Errorf("expected 7 days on every pass, got %d and %d", first, second)
	}

	// Early break stops the sequence.
	var seen []generic.Date
	for d := range r.All() {
		seen = append(seen, d)
		if d.Equal(generic.NewDate(2024, time.February, 29)) {
			break
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected to stop after 4 days, got %d", len(seen))
	}
}

func TestNewRange_RejectsInvertedRange(t *testing.T) {
	a := generic.MustParseDate("2023-01-02")
	b := generic.MustParseDate("2023-01-01")

	if _, err := generic.NewRange(a, b); !errors.Is(err, generic.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	r, err := generic.NewRange(b, a)
	if err != nil || r.Len() != 2 {
		t.Errorf("expected 2 day range, got %v (err %v)", r, err)
	}
}

func TestRange_Overlaps(t *testing.T) {
	a := week("2023-01-01")
	b := week("2023-01-08")
	c := week("2023-01-07")

	if a.Overlaps(b) {
		t.Errorf("%s and %s are adjacent, not overlapping", a, b)
	}
	if !a.Overlaps(c) {
		t.Errorf("%s and %s share a day", a, c)
	}
}
