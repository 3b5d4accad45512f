// ABOUTME: Markdown rendering of a page for display and export.
// ABOUTME: Todo blocks become task list items and calendar blocks become dated lists.

package interchange

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
	"gopkg.in/yaml.v3"
)

// Markdown renders a page as a markdown document.
func Markdown(p *models.Page) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", p.Title))

	for _, b := range p.Blocks {
		switch b.Type {
		case models.BlockTypeText:
			if b.Content == "" {
				continue
			}
			sb.WriteString(b.Content)
			sb.WriteString("\n\n")
		case models.BlockTypeTodo:
			mark := " "
			if b.IsCompleted {
				mark = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n\n", mark, b.Content))
		case models.BlockTypeCalendar:
			events := calendar.EventsSorted(b)
			if len(events) == 0 {
				sb.WriteString("_No events_\n\n")
				continue
			}
			for _, ev := range events {
				sb.WriteString(fmt.Sprintf("- **%s** %s\n", ev.Day, ev.Text))
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// WriteMarkdown writes Markdown(p) after a YAML front matter header.
func WriteMarkdown(w io.Writer, p *models.Page) error {
	frontmatter, err := yaml.Marshal(struct {
		ID      string    `yaml:"id"`
		Title   string    `yaml:"title"`
		Created time.Time `yaml:"created"`
	}{p.ID.String(), p.Title, p.CreatedAt})
	if err != nil {
		return fmt.Errorf("encode front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")
	sb.WriteString(Markdown(p))
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// SanitizeFilename makes a page title safe to use as a file name.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = strings.TrimSpace(replacer.Replace(name))
	if name == "" {
		name = "page"
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
