// ABOUTME: Page templates and their expansion into fresh block sequences.
// ABOUTME: Templates are immutable recipes; every expansion mints new block ids.

package models

import (
	"fmt"
	"strings"
)

type Template string

const (
	TemplateBlank    Template = "blank"
	TemplateTodo     Template = "todo"
	TemplateCalendar Template = "calendar"
	TemplateMeeting  Template = "meeting"
	TemplateJournal  Template = "journal"
)

type blockRecipe struct {
	blockType BlockType
	content   string
}

var recipes = map[Template][]blockRecipe{
	TemplateBlank: {
		{BlockTypeText, ""},
	},
	TemplateTodo: {
		{BlockTypeTodo, "Task 1"},
		{BlockTypeTodo, "Task 2"},
	},
	TemplateCalendar: {
		{BlockTypeCalendar, ""},
	},
	TemplateMeeting: {
		{BlockTypeText, "Agenda"},
		{BlockTypeTodo, "Action item"},
		{BlockTypeCalendar, ""},
	},
	TemplateJournal: {
		{BlockTypeCalendar, ""},
		{BlockTypeText, ""},
	},
}

var displayNames = map[Template]string{
	TemplateBlank:    "Blank",
	TemplateTodo:     "To-Do List",
	TemplateCalendar: "Calendar",
	TemplateMeeting:  "Meeting Notes",
	TemplateJournal:  "Journal",
}

// Templates returns every template in picker order.
func Templates() []Template {
	return []Template{TemplateBlank, TemplateTodo, TemplateCalendar, TemplateMeeting, TemplateJournal}
}

// ParseTemplate resolves a template name, case-insensitively.
func ParseTemplate(name string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := recipes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

func (t Template) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// Expand instantiates the template. Each call yields the same block types,
// contents and order with fresh ids. Expanding an undeclared template panics.
func Expand(t Template) []Block {
	recipe, ok := recipes[t]
	if !ok {
		panic(fmt.Sprintf("models: expand of undeclared template %q", t))
	}
	blocks := make([]Block, 0, len(recipe))
	for _, r := range recipe {
		blocks = append(blocks, *NewBlock(r.blockType, r.content))
	}
	return blocks
}
