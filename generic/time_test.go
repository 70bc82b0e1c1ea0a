package generic_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// DATE TESTS
// =============================================================================

func TestParseDate_Canonical(t *testing.T) {
	d, err := generic.ParseDate("2023-07-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2023 || d.Month() != time.July || d.Day() != 4 {
		t.Errorf("expected 2023-07-04, got %s", d)
	}
	if d.String() != "2023-07-04" {
		t.Errorf("expected canonical string, got %s", d)
	}
}

func TestParseDate_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "2023-7-4", "04/07/2023", "2023-02-30", "2023-13-01", "2023-01-01T10:00:00Z"} {
		_, err := generic.ParseDate(input)
		if err == nil {
			t.Errorf("%q: expected error", input)
			continue
		}
		if !errors.Is(err, generic.ErrInvalidDate) {
			t.Errorf("%q: expected ErrInvalidDate, got %v", input, err)
		}
		var invalid *generic.InvalidDateError
		if !errors.As(err, &invalid) || invalid.Input != input {
			t.Errorf("%q: expected InvalidDateError carrying the input, got %v", input, err)
		}
	}
}

func TestFromTime_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	tm := time.Date(2023, time.March, 5, 23, 59, 59, 999, loc)

	d := generic.FromTime(tm)
	if !d.Equal(generic.NewDate(2023, time.March, 5)) {
		t.Errorf("expected 2023-03-05, got %s", d)
	}
	if !d.StartOfDay().Equal(d) {
		t.Error("StartOfDay should be idempotent")
	}
	if d.Time().Hour() != 0 || d.Time().Location() != time.UTC {
		t.Errorf("expected UTC midnight, got %v", d.Time())
	}
}

func TestDate_Arithmetic(t *testing.T) {
	start := generic.NewDate(2023, time.January, 1)

	tests := []struct {
		name string
		got  generic.Date
		want string
	}{
		{"add days", start.AddDays(30), "2023-01-31"},
		{"subtract day", start.AddDays(-1), "2022-12-31"},
		{"add weeks", start.AddWeeks(4), "2023-01-29"},
		{"add months", start.AddMonths(11), "2023-12-01"},
		{"add years", start.AddYears(1), "2024-01-01"},
		{"leap day", generic.NewDate(2024, time.February, 28).AddDays(1), "2024-02-29"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, tt.got)
		}
	}

	if start.AddDays(1).Equal(start) {
		t.Error("arithmetic must not mutate the receiver")
	}
}

func TestDate_Comparison(t *testing.T) {
	a := generic.NewDate(2023, time.January, 1)
	b := generic.NewDate(2023, time.January, 2)

	if !a.Before(b) || a.After(b) || !b.After(a) {
		t.Error("ordering is wrong")
	}
	if !a.BeforeOrEqual(a) || !a.AfterOrEqual(a) {
		t.Error("equal dates must satisfy both inclusive comparisons")
	}
	if !a.Between(a, b) || !b.Between(a, b) {
		t.Error("Between must include both ends")
	}
	if a.AddDays(-1).Between(a, b) || b.AddDays(1).Between(a, b) {
		t.Error("Between must exclude dates outside the range")
	}
	if got := a.DaysUntil(b); got != 1 {
		t.Errorf("expected 1 day, got %d", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date generic.Date `json:"date"`
	}

	b, err := json.Marshal(payload{Date: generic.NewDate(2023, time.December, 31)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date":"2023-12-31"}` {
		t.Errorf("unexpected JSON %s", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"date":"2023-12-31T00:00:00Z"}`), &p); err == nil {
		t.Error("expected timestamps to be rejected")
	}
}
