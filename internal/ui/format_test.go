// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates page, block, and calendar display.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
)

func init() {
	color.NoColor = true
}

func TestFormatPageListItem(t *testing.T) {
	page := models.NewPage("Test Page", models.Expand(models.TemplateTodo))

	output := FormatPageListItem(page)

	if !strings.Contains(output, page.ID.String()[:6]) {
		t.Error("expected output to contain ID prefix")
	}
	if !strings.Contains(output, "Test Page") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "Blocks: 2") {
		t.Errorf("expected block count, got %q", output)
	}
}

func TestFormatPage(t *testing.T) {
	page := models.NewPage("Standup", models.Expand(models.TemplateMeeting))
	page.Blocks[1].IsCompleted = true
	page.Blocks[2].Events["2025-10-07"] = "Retro"

	output := FormatPage(page)

	for _, want := range []string{"Standup", "  1  Agenda", "[x] Action item", "Calendar", "2025-10-07 Retro"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFormatBlockEmptyCalendar(t *testing.T) {
	output := FormatBlock(1, *models.NewBlock(models.BlockTypeCalendar, ""))
	if !strings.Contains(output, "No events") {
		t.Errorf("expected empty calendar notice, got %q", output)
	}
}

func TestFormatMarkdown(t *testing.T) {
	content := "# Hello\n\nThis is **bold** text."

	output, err := FormatMarkdown(content)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}

	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatMonth(t *testing.T) {
	anchor := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.Local)

	output := FormatMonth(anchor, time.Sunday, nil, anchor)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	if lines[0] != "October 2025" {
		t.Errorf("expected month title, got %q", lines[0])
	}
	if lines[1] != "Su Mo Tu We Th Fr Sa" {
		t.Errorf("expected weekday header, got %q", lines[1])
	}
	// October 1st 2025 is a Wednesday.
	if lines[2] != "          1  2  3  4" {
		t.Errorf("unexpected first week %q", lines[2])
	}
	if len(lines) != 2+len(calendar.Weeks(calendar.MonthGrid(anchor, time.Sunday))) {
		t.Errorf("unexpected line count %d", len(lines))
	}
}

func TestFormatAgenda(t *testing.T) {
	items := []calendar.AgendaItem{{
		PageTitle: "Home",
		Event:     calendar.Event{Day: "2025-12-25", Text: "Holiday"},
	}}

	output := FormatAgenda(items)

	if !strings.Contains(output, "2025-12-25  Holiday (Home)") {
		t.Errorf("unexpected agenda %q", output)
	}
}

func TestFormatTemplateList(t *testing.T) {
	output := FormatTemplateList(models.Templates())

	if !strings.Contains(output, "Meeting Notes") {
		t.Error("expected meeting template display name")
	}
	if !strings.Contains(output, "[todo, todo]") {
		t.Error("expected todo template recipe")
	}
}
