package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannahwr/nestcare/internal/clock"
)

func TestHours(t *testing.T) {
	type testCase struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}

	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	tests := []testCase{
		{name: "WholeHours", start: base, end: base.Add(8 * time.Hour), want: 8},
		{name: "HalfHour", start: base, end: base.Add(90 * time.Minute), want: 1.5},
		{name: "RoundsToTwoDecimals", start: base, end: base.Add(100 * time.Minute), want: 1.67},
		{name: "ZeroSpan", start: base, end: base, want: 0},
		{name: "NegativeSpan", start: base, end: base.Add(-time.Hour), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clock.Hours(tt.start, tt.end))
		})
	}
}

func TestParseHHMM(t *testing.T) {
	h, m, err := clock.ParseHHMM("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 30, m)

	_, _, err = clock.ParseHHMM("25:00")
	assert.Error(t, err)

	_, _, err = clock.ParseHHMM("8am")
	assert.Error(t, err)
}

func TestCompose(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// 08:00 local at UTC-4 is 12:00 UTC.
	got, err := clock.Compose(day, "08:00", -240)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), got)

	// Offset zero reads the wall clock as UTC.
	got, err = clock.Compose(day, "17:15", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 17, 15, 0, 0, time.UTC), got)
}

func TestDayRange(t *testing.T) {
	day := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	start, end := clock.DayRange(day, -240)
	assert.Equal(t, time.Date(2024, 6, 10, 4, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 11, 4, 0, 0, 0, time.UTC), end)
}

func TestMonthRange(t *testing.T) {
	start, end := clock.MonthRange(2024, time.February)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestYearRange(t *testing.T) {
	start, end := clock.YearRange(2024)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, clock.Fixed(at).Now())
}
