// ABOUTME: Terminal UI formatting for notebook output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatPageListItem(page *models.Page) string {
	var sb strings.Builder

	idPrefix := page.ID.String()[:6]
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(idPrefix), bold(page.Title)))
	sb.WriteString(fmt.Sprintf("         %s %s  %s %d\n",
		faint("Created:"),
		faint(page.CreatedAt.Format("2006-01-02 15:04")),
		faint("Blocks:"),
		len(page.Blocks)))

	return sb.String()
}

func FormatPageHeader(page *models.Page) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(page.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(page.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(page.CreatedAt.Format("2006-01-02 15:04"))))

	sb.WriteString(Separator())
	return sb.String()
}

// FormatBlock renders one block with its 1-based position.
func FormatBlock(pos int, b models.Block) string {
	prefix := faint(fmt.Sprintf("%3d", pos))

	switch b.Type {
	case models.BlockTypeTodo:
		box := "[ ]"
		text := b.Content
		if b.IsCompleted {
			box = green("[x]")
			text = faint(text)
		}
		return fmt.Sprintf("%s  %s %s\n", prefix, box, text)
	case models.BlockTypeCalendar:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s  %s\n", prefix, cyan("Calendar")))
		events := calendar.EventsSorted(b)
		if len(events) == 0 {
			sb.WriteString(fmt.Sprintf("       %s\n", faint("No events")))
		}
		for _, ev := range events {
			sb.WriteString(fmt.Sprintf("       %s %s\n", yellow(string(ev.Day)), ev.Text))
		}
		return sb.String()
	default:
		text := b.Content
		if text == "" {
			text = faint("(empty)")
		}
		return fmt.Sprintf("%s  %s\n", prefix, text)
	}
}

func FormatPage(page *models.Page) string {
	var sb strings.Builder
	sb.WriteString(FormatPageHeader(page))
	for i, b := range page.Blocks {
		sb.WriteString(FormatBlock(i+1, b))
	}
	return sb.String()
}

func FormatMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// FormatMonth draws the month containing anchor as a grid of day numbers.
// Days with an entry in events are highlighted and today is bold.
func FormatMonth(anchor time.Time, weekStart time.Weekday, events map[models.DayKey]string, today time.Time) string {
	var sb strings.Builder

	title := calendar.FirstOfMonth(anchor).Format("January 2006")
	sb.WriteString(fmt.Sprintf("%s\n", bold(title)))
	sb.WriteString(faint(strings.Join(calendar.WeekdayHeaders(weekStart), " ")) + "\n")

	todayKey := calendar.KeyOf(today)
	for _, week := range calendar.Weeks(calendar.MonthGrid(anchor, weekStart)) {
		cells := make([]string, len(week))
		for i, cell := range week {
			if cell.Empty() {
				cells[i] = "  "
				continue
			}
			day := fmt.Sprintf("%2d", cell.Date.Day())
			key := calendar.KeyOf(cell.Date)
			switch {
			case events[key] != "":
				day = yellow(day)
			case key == todayKey:
				day = bold(day)
			}
			cells[i] = day
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " ") + "\n")
	}

	return sb.String()
}

func FormatAgenda(items []calendar.AgendaItem) string {
	var sb strings.Builder

	for _, it := range items {
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
			yellow(string(it.Day)),
			it.Text,
			faint(fmt.Sprintf("(%s)", it.PageTitle))))
	}

	return sb.String()
}

func FormatTemplateList(templates []models.Template) string {
	var sb strings.Builder

	for _, t := range templates {
		var kinds []string
		for _, b := range models.Expand(t) {
			kinds = append(kinds, string(b.Type))
		}
		sb.WriteString(fmt.Sprintf("  %-10s %s %s\n",
			cyan(string(t)),
			t.DisplayName(),
			faint(fmt.Sprintf("[%s]", strings.Join(kinds, ", ")))))
	}

	return sb.String()
}

func FormatUndoPrompt(msg string, window time.Duration) string {
	return yellow(fmt.Sprintf("%s. Press Enter within %s to undo. ", msg, window))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
