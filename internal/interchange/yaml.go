// ABOUTME: YAML export and import of the whole page collection.
// ABOUTME: Used for human-readable backups and for moving notebooks between backends.

package interchange

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every export.
const FormatVersion = "1.0"

type ExportData struct {
	Version    string       `yaml:"version"`
	ExportedAt time.Time    `yaml:"exported_at"`
	Pages      []ExportPage `yaml:"pages"`
}

type ExportPage struct {
	ID      string        `yaml:"id"`
	Title   string        `yaml:"title"`
	Created time.Time     `yaml:"created"`
	Blocks  []ExportBlock `yaml:"blocks"`
}

type ExportBlock struct {
	ID      string            `yaml:"id"`
	Type    string            `yaml:"type"`
	Content string            `yaml:"content,omitempty"`
	Done    bool              `yaml:"done,omitempty"`
	Events  map[string]string `yaml:"events,omitempty"`
}

// EncodeYAML writes pages as a YAML export document.
func EncodeYAML(w io.Writer, pages []*models.Page) error {
	export := ExportData{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC().Round(0),
		Pages:      make([]ExportPage, 0, len(pages)),
	}
	for _, p := range pages {
		ep := ExportPage{
			ID:      p.ID.String(),
			Title:   p.Title,
			Created: p.CreatedAt,
			Blocks:  make([]ExportBlock, 0, len(p.Blocks)),
		}
		for _, b := range p.Blocks {
			eb := ExportBlock{
				ID:      b.ID.String(),
				Type:    string(b.Type),
				Content: b.Content,
				Done:    b.IsCompleted,
			}
			if len(b.Events) > 0 {
				eb.Events = make(map[string]string, len(b.Events))
				for day, text := range b.Events {
					eb.Events[string(day)] = text
				}
			}
			ep.Blocks = append(ep.Blocks, eb)
		}
		export.Pages = append(export.Pages, ep)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a YAML export. Ids that are missing or invalid are
// replaced with fresh ones; a missing creation time becomes now.
func DecodeYAML(r io.Reader) ([]*models.Page, error) {
	var export ExportData
	if err := yaml.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	pages := make([]*models.Page, 0, len(export.Pages))
	for i, ep := range export.Pages {
		blocks := make([]models.Block, 0, len(ep.Blocks))
		for j, eb := range ep.Blocks {
			b, err := eb.toModel()
			if err != nil {
				return nil, fmt.Errorf("page %d block %d: %w", i+1, j+1, err)
			}
			blocks = append(blocks, b)
		}

		page := models.NewPage(ep.Title, blocks)
		// Try to preserve original ID if valid
		if id, err := uuid.Parse(ep.ID); err == nil {
			page.ID = id
		}
		if !ep.Created.IsZero() {
			page.CreatedAt = ep.Created.Round(0)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (eb ExportBlock) toModel() (models.Block, error) {
	blockType, err := models.ParseBlockType(eb.Type)
	if err != nil {
		return models.Block{}, err
	}
	b := models.NewBlock(blockType, eb.Content)
	if id, err := uuid.Parse(eb.ID); err == nil {
		b.ID = id
	}
	if blockType == models.BlockTypeTodo {
		b.IsCompleted = eb.Done
	}
	if blockType == models.BlockTypeCalendar {
		for day, text := range eb.Events {
			key := models.DayKey(day)
			if _, err := key.Time(time.UTC); err != nil {
				return models.Block{}, err
			}
			b.Events[key] = text
		}
	}
	return *b, nil
}
