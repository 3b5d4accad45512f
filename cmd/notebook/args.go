// ABOUTME: Shared argument parsing for page references and block positions.
// ABOUTME: Positions are 1-based on the command line and 0-based in the store.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/models"
)

func resolvePage(ref string) (*models.Page, error) {
	id, err := store.ResolvePage(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	page, ok := store.Page(id)
	if !ok {
		return nil, fmt.Errorf("failed to get page: %s", id)
	}
	return page, nil
}

// parsePositions accepts "2", "1,3" or several such arguments and returns
// 0-based offsets.
func parsePositions(args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid block position %q", field)
			}
			out = append(out, n-1)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no block positions given")
	}
	return out, nil
}

// blockAt returns the block at a 1-based position argument.
func blockAt(page *models.Page, arg string) (models.Block, error) {
	positions, err := parsePositions([]string{arg})
	if err != nil {
		return models.Block{}, err
	}
	if len(positions) != 1 {
		return models.Block{}, fmt.Errorf("expected one block position, got %q", arg)
	}
	pos := positions[0]
	if pos >= len(page.Blocks) {
		return models.Block{}, fmt.Errorf("position %d out of range 1-%d", pos+1, len(page.Blocks))
	}
	return page.Blocks[pos], nil
}

// findBlock returns the first block of blockType on the page.
func findBlock(page *models.Page, blockType models.BlockType) (uuid.UUID, bool) {
	for _, b := range page.Blocks {
		if b.Type == blockType {
			return b.ID, true
		}
	}
	return uuid.Nil, false
}

func parseDay(s string) (time.Time, error) {
	if s == "" || s == "today" {
		return time.Now(), nil
	}
	day, err := models.DayKey(s).Time(time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return day, nil
}
