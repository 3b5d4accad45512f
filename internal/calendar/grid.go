// ABOUTME: Month grid layout for calendar blocks.
// ABOUTME: Aligns the days of a month to weekday columns with leading empty cells.

package calendar

import (
	"fmt"
	"strings"
	"time"
)

const DaysPerWeek = 7

// Cell is one slot of a month grid. A zero Date marks a leading empty slot.
type Cell struct {
	Date time.Time
}

func (c Cell) Empty() bool {
	return c.Date.IsZero()
}

// NormalizeDay truncates t to local midnight of the local calendar date
// containing it. The same instant always yields the same day, whatever
// location t carries.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// FirstOfMonth returns local midnight of day 1 of the local month containing t.
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.In(time.Local).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
}

// DaysIn returns the number of days in the local month containing t.
func DaysIn(t time.Time) int {
	y, m, _ := t.In(time.Local).Date()
	// Day 0 of the next month is the last day of this one.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// AddMonths moves from the month containing anchor by n months and returns
// the first of the resulting month. Working from day 1 keeps Jan 31 + 1 in
// February and handles year rollover in both directions.
func AddMonths(anchor time.Time, n int) time.Time {
	return FirstOfMonth(anchor).AddDate(0, n, 0)
}

// MonthGrid lays out the month containing anchor as a 7-column grid. The
// result holds one empty cell per column before day 1 followed by every day
// of the month at local midnight. The trailing week is not padded.
func MonthGrid(anchor time.Time, weekStart time.Weekday) []Cell {
	first := FirstOfMonth(anchor)
	offset := (int(first.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
	days := DaysIn(first)

	cells := make([]Cell, offset, offset+days)
	y, m, _ := first.Date()
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Date: time.Date(y, m, d, 0, 0, 0, 0, time.Local)})
	}
	return cells
}

// Weeks splits a grid into display rows of seven cells. The last row may be short.
func Weeks(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, (len(cells)+DaysPerWeek-1)/DaysPerWeek)
	for start := 0; start < len(cells); start += DaysPerWeek {
		end := min(start+DaysPerWeek, len(cells))
		rows = append(rows, cells[start:end])
	}
	return rows
}

// WeekdayHeaders returns short weekday names in column order.
func WeekdayHeaders(weekStart time.Weekday) []string {
	headers := make([]string, DaysPerWeek)
	for i := range headers {
		headers[i] = time.Weekday((int(weekStart) + i) % DaysPerWeek).String()[:2]
	}
	return headers
}

// ParseWeekStart accepts "sunday" or "monday". Empty means sunday.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("unsupported week start %q", s)
	}
}
