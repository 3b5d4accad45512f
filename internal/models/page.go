// ABOUTME: Page model, an ordered and titled sequence of blocks.
// ABOUTME: Pages are the unit a user navigates to and are created from templates.

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const DefaultPageTitle = "New Page"

var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrUnknownTemplate  = errors.New("unknown template")
)

type Page struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	Blocks    []Block
}

func NewPage(title string, blocks []Block) *Page {
	if title == "" {
		title = DefaultPageTitle
	}
	if blocks == nil {
		blocks = []Block{}
	}
	return &Page{
		ID:    uuid.New(),
		Title: title,
		// Round(0) drops the monotonic reading so persisted copies compare equal.
		CreatedAt: time.Now().Round(0),
		Blocks:    blocks,
	}
}

// Clone returns a deep copy of the page and its blocks.
func (p *Page) Clone() *Page {
	c := *p
	c.Blocks = make([]Block, len(p.Blocks))
	for i, b := range p.Blocks {
		c.Blocks[i] = b.Clone()
	}
	return &c
}

// BlockIndex returns the position of the block with id, or -1.
func (p *Page) BlockIndex(id uuid.UUID) int {
	for i := range p.Blocks {
		if p.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}
