// ABOUTME: Tests for the MCP tool, resource, and prompt handlers.
// ABOUTME: Calls handlers directly against an in-memory store.

package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *notebook.Store) {
	t.Helper()
	backend, err := storage.OpenBadgerInMemory(zerolog.Nop())
	require.NoError(t, err)
	gw := storage.NewGateway(backend)
	t.Cleanup(func() { _ = gw.Close() })

	store := notebook.Open(context.Background(), gw)
	return NewServer(store, time.Sunday), store
}

type handler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args any) *mcp.CallToolResult {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	res, err := h(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: raw},
	})
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestCreateAndGetPage(t *testing.T) {
	s, store := newTestServer(t)

	res := call(t, s.handleCreatePage, map[string]any{"title": "Standup", "template": "meeting"})
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "Standup")

	pages := store.Pages()
	require.Len(t, pages, 1)

	res = call(t, s.handleGetPage, map[string]any{"id": pages[0].ID.String()[:8]})
	require.False(t, res.IsError)
	var view pageView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &view))
	assert.Equal(t, "Standup", view.Title)
	require.Len(t, view.Blocks, 3)
	assert.Equal(t, "todo", view.Blocks[1].Type)
	assert.Equal(t, 3, view.Blocks[2].Position)
}

func TestCreatePageUnknownTemplate(t *testing.T) {
	s, store := newTestServer(t)

	res := call(t, s.handleCreatePage, map[string]any{"template": "poster"})
	assert.True(t, res.IsError)
	assert.Empty(t, store.Pages())
}

func TestDeleteBlocksThenUndo(t *testing.T) {
	s, store := newTestServer(t)
	p := store.AddPage("Todos", models.TemplateTodo)

	res := call(t, s.handleDeleteBlocks, map[string]any{"page_id": p.ID.String(), "positions": []int{1}})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "1 block deleted")

	got, _ := store.Page(p.ID)
	require.Len(t, got.Blocks, 1)

	res = call(t, s.handleUndo, map[string]any{})
	require.False(t, res.IsError)
	got, _ = store.Page(p.ID)
	assert.Equal(t, p.Blocks, got.Blocks)

	res = call(t, s.handleUndo, map[string]any{})
	assert.True(t, res.IsError)
}

func TestBlockToolsUsePositions(t *testing.T) {
	s, store := newTestServer(t)
	p := store.AddPage("Mixed", models.TemplateMeeting)
	id := p.ID.String()

	res := call(t, s.handleEditBlock, map[string]any{"page_id": id, "position": 1, "content": "Budget"})
	require.False(t, res.IsError)
	res = call(t, s.handleToggleBlock, map[string]any{"page_id": id, "position": 2})
	require.False(t, res.IsError)
	res = call(t, s.handleToggleBlock, map[string]any{"page_id": id, "position": 1})
	assert.True(t, res.IsError)
	res = call(t, s.handleEditBlock, map[string]any{"page_id": id, "position": 9, "content": "x"})
	assert.True(t, res.IsError)

	res = call(t, s.handleMoveBlocks, map[string]any{"page_id": id, "positions": []int{3, 3, 9}, "to": 1})
	require.False(t, res.IsError)
	assert.Equal(t, "Moved 1 block(s)", text(t, res))

	got, _ := store.Page(p.ID)
	assert.Equal(t, models.BlockTypeCalendar, got.Blocks[0].Type)
	assert.Equal(t, "Budget", got.Blocks[1].Content)
	assert.True(t, got.Blocks[2].IsCompleted)
}

func TestSetEventAndMonthGrid(t *testing.T) {
	s, store := newTestServer(t)
	p := store.AddPage("Cal", models.TemplateCalendar)
	id := p.ID.String()

	res := call(t, s.handleSetEvent, map[string]any{"page_id": id, "position": 1, "date": "2025-10-07", "text": "Dentist"})
	require.False(t, res.IsError, text(t, res))
	res = call(t, s.handleSetEvent, map[string]any{"page_id": id, "position": 1, "date": "Oct 7", "text": "x"})
	assert.True(t, res.IsError)

	res = call(t, s.handleMonthGrid, map[string]any{"month": "2025-10"})
	require.False(t, res.IsError)
	var grid monthGrid
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &grid))
	assert.Equal(t, "2025-10", grid.Month)
	assert.Equal(t, []string{"", "", "", "1", "2", "3", "4"}, grid.Weeks[0])
	assert.Equal(t, map[string]string{"2025-10-07": "Dentist"}, grid.Events)

	res = call(t, s.handleMonthGrid, map[string]any{"month": "2025-11"})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &grid))
	assert.Empty(t, grid.Events)
}

func TestReadPageResource(t *testing.T) {
	s, store := newTestServer(t)
	p := store.AddPage("Readable", models.TemplateTodo)

	res, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: pageURIPrefix + p.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "# Readable")
	assert.Contains(t, res.Contents[0].Text, "- [ ] Task 1")

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "other://page/abc"},
	})
	assert.Error(t, err)
}

func TestSummarizePagePrompt(t *testing.T) {
	s, store := newTestServer(t)
	p := store.AddPage("Summarize me", models.TemplateBlank)

	res, err := s.getSummarizePagePrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: map[string]string{"page_id": p.ID.String()}},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	tc, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "# Summarize me")
}
