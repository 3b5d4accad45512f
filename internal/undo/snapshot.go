// ABOUTME: Position-preserving removal and restoration of page blocks.
// ABOUTME: Snapshots record each removed block with its original index.

package undo

import (
	"slices"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

// Entry is a removed block and the index it occupied before removal.
type Entry struct {
	Index int
	Block models.Block
}

// Snapshot captures one delete action on one page. Entries are kept in
// ascending index order.
type Snapshot struct {
	PageID  uuid.UUID
	Entries []Entry
}

func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Remove deletes the blocks at positions, which may be scattered and
// unordered. Duplicate and out-of-range positions are ignored. It returns the
// remaining blocks and the removed entries in ascending index order.
func Remove(blocks []models.Block, positions []int) ([]models.Block, []Entry) {
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(blocks) {
			marked[p] = true
		}
	}
	if len(marked) == 0 {
		return blocks, nil
	}

	remaining := make([]models.Block, 0, len(blocks)-len(marked))
	entries := make([]Entry, 0, len(marked))
	for i, b := range blocks {
		if marked[i] {
			entries = append(entries, Entry{Index: i, Block: b.Clone()})
			continue
		}
		remaining = append(remaining, b)
	}
	return remaining, entries
}

// Restore re-inserts entries at their original indices. Entries are applied
// lowest index first so each insertion lands where it was before removal.
// Indices past the current end are clamped, which only happens when the page
// shrank after the delete.
func Restore(blocks []models.Block, entries []Entry) []models.Block {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		return a.Index - b.Index
	})

	out := slices.Clone(blocks)
	for _, e := range sorted {
		idx := min(e.Index, len(out))
		out = slices.Insert(out, idx, e.Block.Clone())
	}
	return out
}
