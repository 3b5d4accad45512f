// ABOUTME: Day-keyed event storage inside calendar blocks.
// ABOUTME: Every read and write goes through day normalization.

package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

// Event is one day's note in a calendar block.
type Event struct {
	Day  models.DayKey `json:"day"`
	Text string        `json:"text"`
}

// KeyOf returns the storage key for the local day containing t.
func KeyOf(t time.Time) models.DayKey {
	return models.DayKeyOf(NormalizeDay(t))
}

// SetEvent upserts the trimmed text for the day of date, or removes that
// day's entry when the trimmed text is empty. It reports whether the block
// changed. Non-calendar blocks are left untouched.
func SetEvent(b *models.Block, date time.Time, text string) bool {
	if b == nil || b.Type != models.BlockTypeCalendar {
		return false
	}
	key := KeyOf(date)
	text = strings.TrimSpace(text)

	if text == "" {
		if _, ok := b.Events[key]; !ok {
			return false
		}
		delete(b.Events, key)
		return true
	}

	if b.Events == nil {
		b.Events = make(map[models.DayKey]string)
	}
	if b.Events[key] == text {
		return false
	}
	b.Events[key] = text
	return true
}

// EventOn returns the note stored for the day of date.
func EventOn(b models.Block, date time.Time) (string, bool) {
	text, ok := b.Events[KeyOf(date)]
	return text, ok
}

// EventsSorted lists a block's events in ascending day order.
func EventsSorted(b models.Block) []Event {
	events := make([]Event, 0, len(b.Events))
	for day, text := range b.Events {
		events = append(events, Event{Day: day, Text: text})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Day < events[j].Day
	})
	return events
}

// AgendaItem is an event together with the page and block that hold it.
type AgendaItem struct {
	PageID    uuid.UUID
	PageTitle string
	BlockID   uuid.UUID
	Event
}

// Agenda flattens the events of every calendar block across pages. Items
// are ordered by day, then by page and block order.
func Agenda(pages []*models.Page) []AgendaItem {
	var items []AgendaItem
	for _, p := range pages {
		for _, b := range p.Blocks {
			if b.Type != models.BlockTypeCalendar {
				continue
			}
			for _, ev := range EventsSorted(b) {
				items = append(items, AgendaItem{
					PageID:    p.ID,
					PageTitle: p.Title,
					BlockID:   b.ID,
					Event:     ev,
				})
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Day < items[j].Day
	})
	return items
}
