// ABOUTME: Tests for the month grid.
// ABOUTME: Covers offsets, week starts, month lengths, and month arithmetic.

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		weekStart time.Weekday
		offset    int
		days      int
	}{
		{
			name:      "31-day month starting wednesday",
			anchor:    time.Date(2025, time.October, 17, 15, 4, 0, 0, time.Local),
			weekStart: time.Sunday,
			offset:    3,
			days:      31,
		},
		{
			name:      "monday week start shifts offset",
			anchor:    time.Date(2025, time.October, 1, 0, 0, 0, 0, time.Local),
			weekStart: time.Monday,
			offset:    2,
			days:      31,
		},
		{
			name:      "leap february",
			anchor:    time.Date(2024, time.February, 29, 12, 0, 0, 0, time.Local),
			weekStart: time.Sunday,
			offset:    4,
			days:      29,
		},
		{
			name:      "february starting on week start has no padding",
			anchor:    time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local),
			weekStart: time.Sunday,
			offset:    0,
			days:      28,
		},
		{
			name:      "six display rows",
			anchor:    time.Date(2025, time.March, 31, 0, 0, 0, 0, time.Local),
			weekStart: time.Sunday,
			offset:    6,
			days:      31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := MonthGrid(tt.anchor, tt.weekStart)
			require.Len(t, cells, tt.offset+tt.days)

			for i := 0; i < tt.offset; i++ {
				assert.True(t, cells[i].Empty(), "cell %d should be empty", i)
			}
			first := cells[tt.offset]
			require.False(t, first.Empty())
			assert.Equal(t, 1, first.Date.Day())
			assert.Equal(t, tt.weekStart, time.Weekday((int(first.Date.Weekday())-tt.offset+7)%7))

			last := cells[len(cells)-1].Date
			assert.Equal(t, tt.days, last.Day())
			assert.Equal(t, tt.anchor.Month(), last.Month())
			for _, c := range cells[tt.offset:] {
				assert.Equal(t, NormalizeDay(c.Date), c.Date)
			}
		})
	}
}

func TestMonthGridSixRows(t *testing.T) {
	cells := MonthGrid(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), time.Sunday)
	rows := Weeks(cells)

	require.Len(t, rows, 6)
	assert.Len(t, rows[5], 37-35)
}

func TestWeeks(t *testing.T) {
	cells := MonthGrid(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), time.Sunday)
	rows := Weeks(cells)

	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Len(t, row, DaysPerWeek)
	}
	assert.Empty(t, Weeks(nil))
}

func TestAddMonthsYearRollover(t *testing.T) {
	dec := time.Date(2025, time.December, 31, 10, 0, 0, 0, time.Local)
	next := AddMonths(dec, 1)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), next)

	jan := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local)
	prev := AddMonths(jan, -1)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.Local), prev)

	// Day 31 must not overflow into March.
	endOfJan := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)
	assert.Equal(t, time.February, AddMonths(endOfJan, 1).Month())
}

func TestNormalizeDayUsesLocalMidnight(t *testing.T) {
	at := time.Date(2025, time.October, 25, 22, 30, 45, 99, time.Local)

	got := NormalizeDay(at)
	assert.Equal(t, time.Date(2025, time.October, 25, 0, 0, 0, 0, time.Local), got)
	assert.Equal(t, time.Local, got.Location())

	// The same instant in another location lands on the same local day.
	assert.Equal(t, got, NormalizeDay(at.UTC()))
	assert.Equal(t, got, NormalizeDay(at.In(time.FixedZone("far", 13*3600))))
}

func TestMonthGridForeignAnchorUsesLocalMonth(t *testing.T) {
	local := time.Date(2025, time.October, 31, 22, 0, 0, 0, time.Local)
	anchor := local.In(time.FixedZone("far", 13*3600))

	cells := MonthGrid(anchor, time.Sunday)
	last := cells[len(cells)-1].Date
	assert.Equal(t, time.October, last.Month())
	assert.Equal(t, 31, last.Day())
	assert.Equal(t, time.Local, last.Location())
	assert.Equal(t, FirstOfMonth(local), FirstOfMonth(anchor))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(time.Date(2024, time.February, 3, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, 28, DaysIn(time.Date(2025, time.February, 3, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, 30, DaysIn(time.Date(2025, time.April, 30, 0, 0, 0, 0, time.Local)))
}

func TestWeekdayHeaders(t *testing.T) {
	assert.Equal(t, []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}, WeekdayHeaders(time.Sunday))
	assert.Equal(t, []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}, WeekdayHeaders(time.Monday))
}

func TestParseWeekStart(t *testing.T) {
	ws, err := ParseWeekStart("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, ws)

	ws, err = ParseWeekStart("")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, ws)

	_, err = ParseWeekStart("friday")
	assert.Error(t, err)
}
