// ABOUTME: Reordering of blocks by offset.
// ABOUTME: Moves a set of positions before a target index, keeping relative order.

package notebook

import (
	"slices"

	"github.com/harper/notebook/internal/models"
)

// moveOffsets relocates the blocks at offsets to just before the block that
// was at index to. Out-of-range offsets are ignored and to is clamped to the
// slice length. It returns how many distinct blocks were moved, or zero when
// the order would not change.
func moveOffsets(blocks []models.Block, offsets []int, to int) ([]models.Block, int) {
	picked := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if o >= 0 && o < len(blocks) {
			picked[o] = true
		}
	}
	if len(picked) == 0 {
		return blocks, 0
	}
	to = max(0, min(to, len(blocks)))

	var moving, rest []models.Block
	before := 0
	for i, b := range blocks {
		if picked[i] {
			moving = append(moving, b)
			continue
		}
		if i < to {
			before++
		}
		rest = append(rest, b)
	}

	out := slices.Insert(rest, before, moving...)
	for i := range out {
		if out[i].ID != blocks[i].ID {
			return out, len(moving)
		}
	}
	return blocks, 0
}
