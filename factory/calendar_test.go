package factory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/fiscal-year/fiscalyear"
	"github.com/warp/fiscal-year/generic"
)

func TestParseCalendar_Business(t *testing.T) {
	f := NewCalendarFactory()

	def, fy, err := f.ParseCalendar(fiscalyear.RetailYearJSON("retail-2023", "Retail 2023", "2023-01-01", true))
	require.NoError(t, err)

	assert.Equal(t, "retail-2023", def.ID)
	assert.Equal(t, "Retail 2023", def.Name)
	assert.Equal(t, fiscalyear.Business, def.Type)
	assert.True(t, def.FiftyThreeWeeks)
	assert.Equal(t, 53, fy.WeekCount())
	assert.Equal(t, generic.MustParseDate("2024-01-06"), fy.EndDate())
}

func TestParseCalendar_NormalizesInput(t *testing.T) {
	f := &CalendarFactory{newID: func() string { return "generated" }}

	def, fy, err := f.ParseCalendar(`{"type": " Calendar ", "start_date": " 2023-04-06 "}`)
	require.NoError(t, err)

	assert.Equal(t, "generated", def.ID)
	assert.Equal(t, "generated", def.Name)
	assert.Equal(t, fiscalyear.Calendar, fy.Type())
	assert.Equal(t, generic.MustParseDate("2024-04-05"), fy.EndDate())
}

func TestNewCalendarFactory_AssignsUUID(t *testing.T) {
	def, _, err := NewCalendarFactory().ParseCalendar(`{"type":"business","start_date":"2023-01-01"}`)
	require.NoError(t, err)

	_, err = uuid.Parse(def.ID)
	assert.NoError(t, err)
}

func TestParseCalendar_Errors(t *testing.T) {
	f := NewCalendarFactory()

	tests := []struct {
		name   string
		json   string
		target error
	}{
		{"bad date", `{"type":"business","start_date":"2023/01/01"}`, generic.ErrInvalidDate},
		{"missing date", `{"type":"business"}`, generic.ErrInvalidDate},
		{"bad type", `{"type":"lunar","start_date":"2023-01-01"}`, fiscalyear.ErrConfig},
		{"calendar on the 30th", `{"type":"calendar","start_date":"2023-01-30"}`, fiscalyear.ErrConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.ParseCalendar(tt.json)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, _, err := f.ParseCalendar(`{not json`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid calendar JSON")
}

func TestDefinition_JSONRoundTrip(t *testing.T) {
	f := NewCalendarFactory()
	fy, err := fiscalyear.NewFromString(fiscalyear.Business, "2022-07-03", true)
	require.NoError(t, err)

	def := DefinitionOf("retail", "Retail", fy)
	js, err := def.JSON()
	require.NoError(t, err)

	parsed, rebuilt, err := f.ParseCalendar(js)
	require.NoError(t, err)
	assert.Equal(t, def, *parsed)
	assert.Equal(t, fy.EndDate(), rebuilt.EndDate())
}

func TestBuild_Presets(t *testing.T) {
	f := NewCalendarFactory()

	for _, js := range fiscalyear.DefaultPresets(2024) {
		fy, err := f.Build(js)
		require.NoError(t, err, js)
		assert.Equal(t, 2024, fy.StartDate().Year())
	}
}
