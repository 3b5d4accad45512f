// ABOUTME: iCalendar export and import for calendar block events.
// ABOUTME: Each day note becomes one all-day VEVENT.

package interchange

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
)

const productID = "-//harper//notebook//EN"

// EncodeICS writes the events of a calendar block as an iCalendar feed named
// after title.
func EncodeICS(w io.Writer, title string, b models.Block) error {
	if b.Type != models.BlockTypeCalendar {
		return fmt.Errorf("block %s is %s, not calendar", b.ID, b.Type)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if title != "" {
		cal.SetName(title)
	}

	stamp := time.Now().UTC()
	for _, ev := range calendar.EventsSorted(b) {
		day, err := ev.Day.Time(time.UTC)
		if err != nil {
			return err
		}
		vevent := cal.AddEvent(fmt.Sprintf("%s-%s@notebook", b.ID, ev.Day))
		vevent.SetDtStampTime(stamp)
		vevent.SetAllDayStartAt(day)
		vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
		vevent.SetSummary(ev.Text)
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

// DecodeICS reads VEVENTs and returns one event per start day in loc.
// Timed events are placed on the local day they start. Events without a
// summary or start are skipped; later events on the same day are joined
// onto earlier ones.
func DecodeICS(r io.Reader, loc *time.Location) ([]calendar.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	byDay := make(map[models.DayKey]string)
	var order []models.DayKey
	for _, ve := range cal.Events() {
		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = strings.TrimSpace(p.Value)
		}
		if summary == "" {
			continue
		}
		day, ok := startDay(ve, loc)
		if !ok {
			continue
		}
		key := models.DayKeyOf(day)
		if existing, seen := byDay[key]; seen {
			byDay[key] = existing + "; " + summary
			continue
		}
		byDay[key] = summary
		order = append(order, key)
	}

	events := make([]calendar.Event, 0, len(order))
	for _, key := range order {
		events = append(events, calendar.Event{Day: key, Text: byDay[key]})
	}
	return events, nil
}

func startDay(ve *ical.VEvent, loc *time.Location) (time.Time, bool) {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return time.Time{}, false
	}
	// All-day values carry no time part.
	if !strings.Contains(prop.Value, "T") {
		day, err := time.ParseInLocation("20060102", strings.TrimSpace(prop.Value), loc)
		if err != nil {
			return time.Time{}, false
		}
		return day, true
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, false
	}
	return start.In(loc), true
}
