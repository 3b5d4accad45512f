// ABOUTME: Tests for template expansion.
// ABOUTME: Validates structure, fresh ids, and name parsing.

package models

import (
	"errors"
	"testing"
)

func TestExpandTodo(t *testing.T) {
	blocks := Expand(TemplateTodo)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	for i, want := range []string{"Task 1", "Task 2"} {
		if blocks[i].Type != BlockTypeTodo {
			t.Errorf("block %d: expected todo, got %q", i, blocks[i].Type)
		}
		if blocks[i].Content != want {
			t.Errorf("block %d: expected %q, got %q", i, want, blocks[i].Content)
		}
		if blocks[i].IsCompleted {
			t.Errorf("block %d: expected not completed", i)
		}
	}
	if blocks[0].ID == blocks[1].ID {
		t.Error("expected distinct block ids")
	}
}

func TestExpandMintsFreshIDs(t *testing.T) {
	for _, tmpl := range Templates() {
		first := Expand(tmpl)
		second := Expand(tmpl)

		if len(first) != len(second) {
			t.Fatalf("%s: expected equal lengths, got %d and %d", tmpl, len(first), len(second))
		}
		seen := make(map[string]bool)
		for i := range first {
			if first[i].Type != second[i].Type || first[i].Content != second[i].Content {
				t.Errorf("%s: block %d differs in structure", tmpl, i)
			}
			seen[first[i].ID.String()] = true
		}
		for _, b := range second {
			if seen[b.ID.String()] {
				t.Errorf("%s: id %s reused across expansions", tmpl, b.ID)
			}
		}
	}
}

func TestExpandCalendarStartsEmpty(t *testing.T) {
	blocks := Expand(TemplateCalendar)

	if len(blocks) != 1 || blocks[0].Type != BlockTypeCalendar {
		t.Fatalf("expected one calendar block, got %+v", blocks)
	}
	if blocks[0].Events == nil || len(blocks[0].Events) != 0 {
		t.Errorf("expected empty events map, got %v", blocks[0].Events)
	}

	// Events maps must not be shared between expansions.
	blocks[0].Events["2025-01-01"] = "x"
	if again := Expand(TemplateCalendar); len(again[0].Events) != 0 {
		t.Error("expected fresh events map on each expansion")
	}
}

func TestExpandUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for undeclared template")
		}
	}()
	Expand(Template("kanban"))
}

func TestParseTemplate(t *testing.T) {
	got, err := ParseTemplate("  ToDo ")
	if err != nil || got != TemplateTodo {
		t.Errorf("expected todo, got %q (%v)", got, err)
	}
	if _, err := ParseTemplate("kanban"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	if TemplateTodo.DisplayName() != "To-Do List" {
		t.Errorf("unexpected display name %q", TemplateTodo.DisplayName())
	}
}
