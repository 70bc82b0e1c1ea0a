package fiscalyear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/fiscal-year/fiscalyear"
	"github.com/warp/fiscal-year/generic"
)

// =============================================================================
// INVERSE CONSISTENCY
// =============================================================================

func TestLookup_InverseOfBoundaries(t *testing.T) {
	for _, c := range yearCases() {
		t.Run(c.String(), func(t *testing.T) {
			fy := mustYear(t, c.typ, c.start, c.fiftyThree)
			year, err := fy.Range()
			require.NoError(t, err)

			for d := range year.All() {
				periodID, err := fy.PeriodForDate(d)
				require.NoError(t, err, d.String())
				period, err := fy.Period(periodID)
				require.NoError(t, err)
				require.Truef(t, period.Contains(d), "%s not in period %d %s", d, periodID, period)

				weekID, err := fy.WeekForDate(d)
				require.NoError(t, err, d.String())
				week, err := fy.Week(weekID)
				require.NoError(t, err)
				require.Truef(t, week.Contains(d), "%s not in week %d %s", d, weekID, week)
			}
		})
	}
}

func TestLookup_RejectsDatesOutsideYear(t *testing.T) {
	fy := mustYear(t, fiscalyear.Business, "2023-01-01", false)

	for _, d := range []generic.Date{fy.StartDate().AddDays(-1), fy.EndDate().AddDays(1), date("2030-06-01")} {
		_, err := fy.PeriodForDate(d)
		var rangeErr *fiscalyear.RangeError
		require.ErrorAs(t, err, &rangeErr, d.String())
		assert.Equal(t, d, rangeErr.Date)
		assert.Equal(t, fy.StartDate(), rangeErr.Start)
		assert.Equal(t, fy.EndDate(), rangeErr.End)
		assert.ErrorIs(t, err, fiscalyear.ErrOutOfRange)
		assert.True(t, fiscalyear.IsClientError(err))

		_, err = fy.WeekForDate(d)
		assert.ErrorIs(t, err, fiscalyear.ErrOutOfRange, d.String())
		assert.False(t, fy.Contains(d))
	}
}

func TestLookup_Boundaries(t *testing.T) {
	fy := mustYear(t, fiscalyear.Business, "2023-01-01", true)

	tests := []struct {
		date   string
		period int
		week   int
	}{
		{"2023-01-01", 1, 1},
		{"2023-01-28", 1, 4},
		{"2023-01-29", 2, 5},
		{"2023-11-04", 11, 44},
		{"2023-11-05", 12, 45},
		{"2023-12-31", 12, 53},
		{"2024-01-06", 12, 53},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			period, err := fy.PeriodForDateString(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.period, period)

			week, err := fy.WeekForDateString(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.week, week)
		})
	}
}

func TestLookup_MalformedDateString(t *testing.T) {
	fy := mustYear(t, fiscalyear.Calendar, "2023-01-01", false)

	_, err := fy.PeriodForDateString("July 4th")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)

	_, err = fy.WeekForDateString("2023-02-29")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
	assert.True(t, fiscalyear.IsClientError(err))
}

// =============================================================================
// WEEKS WITHIN A PERIOD
// =============================================================================

func TestNthWeekOfPeriod(t *testing.T) {
	fy := mustYear(t, fiscalyear.Business, "2023-01-01", false)

	// Period 2's first week is global week 5.
	w, err := fy.FirstWeekOfPeriod(2)
	require.NoError(t, err)
	week5, err := fy.Week(5)
	require.NoError(t, err)
	assert.Equal(t, week5, w)
	assert.Equal(t, generic.Range{Start: date("2023-01-29"), End: date("2023-02-04")}, w)

	second, err := fy.SecondWeekOfPeriod(2)
	require.NoError(t, err)
	third, err := fy.ThirdWeekOfPeriod(2)
	require.NoError(t, err)
	fourth, err := fy.FourthWeekOfPeriod(2)
	require.NoError(t, err)
	assert.Equal(t, w.End.AddDays(1), second.Start)
	assert.Equal(t, second.End.AddDays(1), third.Start)
	assert.Equal(t, third.End.AddDays(1), fourth.Start)

	last, err := fy.LastDateOfPeriod(2)
	require.NoError(t, err)
	assert.Equal(t, last, fourth.End)
}

func TestNthWeekOfPeriod_InvalidArguments(t *testing.T) {
	fy := mustYear(t, fiscalyear.Business, "2023-01-01", false)

	_, err := fy.NthWeekOfPeriod(1, 5)
	var cfgErr *fiscalyear.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "week_of_period", cfgErr.Field)

	_, err = fy.NthWeekOfPeriod(13, 1)
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "period_id", cfgErr.Field)
}

func TestWeekIDForPeriod(t *testing.T) {
	assert.Equal(t, 1, fiscalyear.WeekIDForPeriod(1, 1))
	assert.Equal(t, 5, fiscalyear.WeekIDForPeriod(2, 1))
	assert.Equal(t, 48, fiscalyear.WeekIDForPeriod(12, 4))
}

// =============================================================================
// 53RD WEEK
// =============================================================================

func TestFiftyThirdWeek_OnlyInLongYears(t *testing.T) {
	short := mustYear(t, fiscalyear.Business, "2023-01-01", false)

	_, err := short.FiftyThirdWeek()
	assert.ErrorIs(t, err, fiscalyear.ErrConfig)
	_, err = short.FirstDateOfWeek(53)
	assert.ErrorIs(t, err, fiscalyear.ErrConfig)

	long := mustYear(t, fiscalyear.Business, "2023-01-01", true)

	w, err := long.FiftyThirdWeek()
	require.NoError(t, err)
	assert.Equal(t, 7, w.Len())
	assert.Equal(t, long.EndDate(), w.End)
	assert.Equal(t, generic.Range{Start: date("2023-12-31"), End: date("2024-01-06")}, w)
}
