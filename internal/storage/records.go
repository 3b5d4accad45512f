// ABOUTME: Serialized form of pages and blocks.
// ABOUTME: Converts between stored records and models, keeping block order and day keys.

package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

// CollectionVersion is bumped whenever the record layout changes.
const CollectionVersion = 1

// CollectionData is the blob stored under the collection key.
type CollectionData struct {
	Version int        `json:"version"`
	Pages   []PageData `json:"pages"`
}

// PageData represents a page stored in the blob.
type PageData struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	CreatedAt int64       `json:"created_at"` // unix nanoseconds
	Blocks    []BlockData `json:"blocks"`
}

// BlockData represents a block stored in the blob.
type BlockData struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Content     string            `json:"content,omitempty"`
	IsCompleted bool              `json:"is_completed,omitempty"`
	Events      map[string]string `json:"events,omitempty"` // YYYY-MM-DD -> text
}

// FromPages creates CollectionData from models.
func FromPages(pages []*models.Page) *CollectionData {
	data := &CollectionData{
		Version: CollectionVersion,
		Pages:   make([]PageData, 0, len(pages)),
	}
	for _, p := range pages {
		data.Pages = append(data.Pages, FromPageModel(p))
	}
	return data
}

// FromPageModel creates PageData from a models.Page.
func FromPageModel(p *models.Page) PageData {
	pd := PageData{
		ID:        p.ID.String(),
		Title:     p.Title,
		CreatedAt: p.CreatedAt.UnixNano(),
		Blocks:    make([]BlockData, 0, len(p.Blocks)),
	}
	for _, b := range p.Blocks {
		bd := BlockData{
			ID:          b.ID.String(),
			Type:        string(b.Type),
			Content:     b.Content,
			IsCompleted: b.IsCompleted,
		}
		if len(b.Events) > 0 {
			bd.Events = make(map[string]string, len(b.Events))
			for day, text := range b.Events {
				bd.Events[string(day)] = text
			}
		}
		pd.Blocks = append(pd.Blocks, bd)
	}
	return pd
}

// ToModels converts CollectionData to models.
func (c *CollectionData) ToModels() ([]*models.Page, error) {
	pages := make([]*models.Page, 0, len(c.Pages))
	seen := make(map[uuid.UUID]bool, len(c.Pages))
	for i := range c.Pages {
		p, err := c.Pages[i].ToModel()
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate page ID %s", p.ID)
		}
		seen[p.ID] = true
		pages = append(pages, p)
	}
	return pages, nil
}

// ToModel converts PageData to a models.Page.
func (p *PageData) ToModel() (*models.Page, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("parse page ID: %w", err)
	}
	page := &models.Page{
		ID:        id,
		Title:     p.Title,
		CreatedAt: time.Unix(0, p.CreatedAt),
		Blocks:    make([]models.Block, 0, len(p.Blocks)),
	}
	for i := range p.Blocks {
		b, err := p.Blocks[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", p.ID, err)
		}
		page.Blocks = append(page.Blocks, b)
	}
	return page, nil
}

// ToModel converts BlockData to a models.Block.
func (b *BlockData) ToModel() (models.Block, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return models.Block{}, fmt.Errorf("parse block ID: %w", err)
	}
	blockType, err := models.ParseBlockType(b.Type)
	if err != nil {
		return models.Block{}, err
	}
	block := models.Block{
		ID:          id,
		Type:        blockType,
		Content:     b.Content,
		IsCompleted: b.IsCompleted,
	}
	// Events only exist on calendar blocks.
	if blockType == models.BlockTypeCalendar {
		block.Events = make(map[models.DayKey]string, len(b.Events))
		for day, text := range b.Events {
			key := models.DayKey(day)
			if _, err := key.Time(time.UTC); err != nil {
				return models.Block{}, err
			}
			block.Events[key] = text
		}
	}
	return block, nil
}
