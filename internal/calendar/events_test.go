// ABOUTME: Tests for day-keyed calendar events.
// ABOUTME: Covers normalization, upserts, removal, ordering, and the agenda.

package calendar

import (
	"testing"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetEventNormalizesDay(t *testing.T) {
	b := models.NewBlock(models.BlockTypeCalendar, "")

	afternoon := time.Date(2025, time.October, 25, 15, 30, 0, 0, time.Local)
	require.True(t, SetEvent(b, afternoon, "  x  "))

	events := EventsSorted(*b)
	require.Len(t, events, 1)
	assert.Equal(t, models.DayKey("2025-10-25"), events[0].Day)
	assert.Equal(t, "x", events[0].Text)

	midnight, err := events[0].Day.Time(time.Local)
	require.NoError(t, err)
	assert.Equal(t, NormalizeDay(afternoon), midnight)

	morning := time.Date(2025, time.October, 25, 9, 0, 0, 0, time.Local)
	require.True(t, SetEvent(b, morning, ""))
	assert.Empty(t, b.Events)
}

func TestSetEventSameMomentAcrossLocations(t *testing.T) {
	b := models.NewBlock(models.BlockTypeCalendar, "")

	local := time.Date(2025, time.October, 25, 22, 30, 0, 0, time.Local)
	utc := local.UTC()
	assert.Equal(t, KeyOf(local), KeyOf(utc))

	require.True(t, SetEvent(b, local, "x"))
	require.True(t, SetEvent(b, utc, ""))
	assert.Empty(t, b.Events)

	require.True(t, SetEvent(b, local.In(time.FixedZone("far", -11*3600)), "y"))
	text, ok := EventOn(*b, local)
	require.True(t, ok)
	assert.Equal(t, "y", text)
}

func TestSetEventUpsert(t *testing.T) {
	b := models.NewBlock(models.BlockTypeCalendar, "")
	day := time.Date(2025, time.November, 1, 10, 0, 0, 0, time.Local)

	SetEvent(b, day, "Doctor")
	assert.True(t, SetEvent(b, day.Add(3*time.Hour), "Doctor 10am"))
	assert.False(t, SetEvent(b, day, "Doctor 10am"), "same text is not a change")

	text, ok := EventOn(*b, day)
	require.True(t, ok)
	assert.Equal(t, "Doctor 10am", text)
	assert.Len(t, b.Events, 1)
}

func TestSetEventClearMissingIsNoop(t *testing.T) {
	b := models.NewBlock(models.BlockTypeCalendar, "")

	assert.False(t, SetEvent(b, time.Now(), "   "))
	assert.Empty(t, b.Events)
}

func TestSetEventIgnoresNonCalendarBlocks(t *testing.T) {
	b := models.NewBlock(models.BlockTypeTodo, "Task")

	assert.False(t, SetEvent(b, time.Now(), "x"))
	assert.Nil(t, b.Events)
	assert.False(t, SetEvent(nil, time.Now(), "x"))
}

func TestEventsSortedAscending(t *testing.T) {
	b := models.NewBlock(models.BlockTypeCalendar, "")
	SetEvent(b, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.Local), "c")
	SetEvent(b, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local), "b")
	SetEvent(b, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local), "a")

	events := EventsSorted(*b)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{events[0].Text, events[1].Text, events[2].Text})
	assert.Len(t, b.Events, 3, "listing must not mutate")
}

func TestAgenda(t *testing.T) {
	work := models.NewBlock(models.BlockTypeCalendar, "")
	SetEvent(work, time.Date(2025, time.October, 27, 0, 0, 0, 0, time.Local), "Standup")
	home := models.NewBlock(models.BlockTypeCalendar, "")
	SetEvent(home, time.Date(2025, time.October, 25, 0, 0, 0, 0, time.Local), "Groceries")
	SetEvent(home, time.Date(2025, time.October, 27, 0, 0, 0, 0, time.Local), "Gym")

	pages := []*models.Page{
		models.NewPage("Work", []models.Block{*work, *models.NewBlock(models.BlockTypeText, "notes")}),
		models.NewPage("Home", []models.Block{*home}),
	}

	items := Agenda(pages)
	require.Len(t, items, 3)
	assert.Equal(t, "Groceries", items[0].Text)
	assert.Equal(t, "Standup", items[1].Text, "same-day items keep page order")
	assert.Equal(t, "Work", items[1].PageTitle)
	assert.Equal(t, "Gym", items[2].Text)
	assert.Equal(t, home.ID, items[2].BlockID)
}
