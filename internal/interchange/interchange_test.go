// ABOUTME: Tests for YAML, ICS, and markdown interchange.
// ABOUTME: Covers round-trips, id handling, and malformed input.

package interchange

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePages() []*models.Page {
	meeting := models.NewPage("Standup", models.Expand(models.TemplateMeeting))
	meeting.Blocks[1].IsCompleted = true
	meeting.Blocks[2].Events["2025-10-07"] = "Retro"
	meeting.Blocks[2].Events["2025-10-01"] = "Planning"
	blank := models.NewPage("", models.Expand(models.TemplateBlank))
	return []*models.Page{meeting, blank}
}

func TestYAMLRoundTrip(t *testing.T) {
	pages := samplePages()

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, pages))
	assert.Contains(t, buf.String(), "version: \"1.0\"")

	got, err := DecodeYAML(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(pages))
	for i := range pages {
		assert.Equal(t, pages[i].ID, got[i].ID)
		assert.Equal(t, pages[i].Title, got[i].Title)
		assert.True(t, pages[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.Equal(t, pages[i].Blocks, got[i].Blocks)
	}
}

func TestDecodeYAMLMintsMissingIDs(t *testing.T) {
	doc := `
version: "1.0"
pages:
  - title: Handwritten
    blocks:
      - type: todo
        content: Buy milk
        done: true
      - type: calendar
        events:
          "2025-12-25": Holiday
`
	pages, err := DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	require.Len(t, p.Blocks, 2)
	assert.NotEqual(t, uuid.Nil, p.Blocks[0].ID)
	assert.True(t, p.Blocks[0].IsCompleted)
	assert.Equal(t, "Holiday", p.Blocks[1].Events["2025-12-25"])
}

func TestDecodeYAMLRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown block type", "pages:\n  - title: x\n    blocks:\n      - type: image\n"},
		{"bad day key", "pages:\n  - title: x\n    blocks:\n      - type: calendar\n        events:\n          tomorrow: x\n"},
		{"not yaml", "pages: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestICSRoundTrip(t *testing.T) {
	b := models.NewBlock(models.BlockTypeCalendar, "")
	b.Events["2025-10-07"] = "Dentist"
	b.Events["2025-09-30"] = "Quarter end"

	var buf bytes.Buffer
	require.NoError(t, EncodeICS(&buf, "Appointments", *b))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, buf.String(), "20251007")

	events, err := DecodeICS(&buf, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Event{
		{Day: "2025-09-30", Text: "Quarter end"},
		{Day: "2025-10-07", Text: "Dentist"},
	}, events)
}

func TestEncodeICSRejectsNonCalendarBlock(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeICS(&buf, "", *models.NewBlock(models.BlockTypeTodo, "x"))
	assert.Error(t, err)
}

func TestDecodeICSTimedEventsUseLocalDay(t *testing.T) {
	feed := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:late@example.com",
		"DTSTAMP:20251001T000000Z",
		"DTSTART:20251007T230000Z",
		"SUMMARY:Late call",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:nosummary@example.com",
		"DTSTAMP:20251001T000000Z",
		"DTSTART:20251009T120000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	ahead := time.FixedZone("ahead", 3*60*60)
	events, err := DecodeICS(strings.NewReader(feed), ahead)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Event{{Day: "2025-10-08", Text: "Late call"}}, events)

	behind := time.FixedZone("behind", -5*60*60)
	events, err = DecodeICS(strings.NewReader(feed), behind)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Event{{Day: "2025-10-07", Text: "Late call"}}, events)
}

func TestMarkdown(t *testing.T) {
	p := samplePages()[0]
	md := Markdown(p)

	assert.True(t, strings.HasPrefix(md, "# Standup\n"))
	assert.Contains(t, md, "Agenda")
	assert.Contains(t, md, "- [x] Action item")
	planning := strings.Index(md, "Planning")
	retro := strings.Index(md, "Retro")
	assert.True(t, planning > 0 && planning < retro)
}

func TestWriteMarkdownFrontMatter(t *testing.T) {
	p := samplePages()[0]
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, p))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "---\nid: "+p.ID.String()))
	assert.Contains(t, out, "title: Standup")
	assert.Contains(t, out, "# Standup")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b-c", SanitizeFilename("a/b:c"))
	assert.Equal(t, "page", SanitizeFilename("  "))
	assert.Len(t, SanitizeFilename(strings.Repeat("x", 150)), 100)
}
