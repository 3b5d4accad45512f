// ABOUTME: Block model, the unit of content inside a page.
// ABOUTME: Text, todo, and calendar blocks share one struct keyed by a uuid.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BlockType string

const (
	BlockTypeText     BlockType = "text"
	BlockTypeTodo     BlockType = "todo"
	BlockTypeCalendar BlockType = "calendar"
)

// BlockTypes lists the supported block types in picker order.
func BlockTypes() []BlockType {
	return []BlockType{BlockTypeText, BlockTypeTodo, BlockTypeCalendar}
}

// ParseBlockType validates a user-supplied block type name.
func ParseBlockType(s string) (BlockType, error) {
	for _, t := range BlockTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
}

// DayKey is a calendar date in YYYY-MM-DD form. It always denotes local
// midnight of that date, never a time of day.
type DayKey string

const dayKeyLayout = "2006-01-02"

// Time returns midnight of the day in loc.
func (k DayKey) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayKeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", k, err)
	}
	return t, nil
}

// DayKeyOf returns the key for the calendar date of t in t's own location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

type Block struct {
	ID          uuid.UUID
	Type        BlockType
	Content     string
	IsCompleted bool
	Events      map[DayKey]string
}

func NewBlock(blockType BlockType, content string) *Block {
	b := &Block{
		ID:   uuid.New(),
		Type: blockType,
	}
	switch blockType {
	case BlockTypeCalendar:
		b.Events = make(map[DayKey]string)
	default:
		b.Content = content
	}
	return b
}

// Clone returns a deep copy so callers never alias the events map.
func (b Block) Clone() Block {
	c := b
	if b.Events != nil {
		c.Events = make(map[DayKey]string, len(b.Events))
		for k, v := range b.Events {
			c.Events[k] = v
		}
	}
	return c
}

// Conform clears fields the block's type does not use. Calendar blocks
// carry no text and always have an events map; other blocks carry no events,
// and only todo blocks can be completed.
func (b *Block) Conform() {
	switch b.Type {
	case BlockTypeCalendar:
		b.Content = ""
		b.IsCompleted = false
		if b.Events == nil {
			b.Events = make(map[DayKey]string)
		}
	case BlockTypeTodo:
		b.Events = nil
	default:
		b.IsCompleted = false
		b.Events = nil
	}
}

// Toggle flips completion on todo blocks. It reports whether anything changed.
func (b *Block) Toggle() bool {
	if b.Type != BlockTypeTodo {
		return false
	}
	b.IsCompleted = !b.IsCompleted
	return true
}
