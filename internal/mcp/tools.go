// ABOUTME: MCP tools for page, block, and calendar operations.
// ABOUTME: Maps the notebook store contracts onto the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_pages
	s.server.AddTool(&mcp.Tool{
		Name:        "list_pages",
		Description: "List all pages in notebook order",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListPages)

	// get_page
	s.server.AddTool(&mcp.Tool{
		Name:        "get_page",
		Description: "Get a page and its blocks by ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Page ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetPage)

	// create_page
	s.server.AddTool(&mcp.Tool{
		Name:        "create_page",
		Description: "Create a page from a template",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Page title, defaults to New Page"},
				"template": {"type": "string", "description": "blank, todo, calendar, meeting or journal", "default": "blank"}
			}
		}`),
	}, s.handleCreatePage)

	// rename_page
	s.server.AddTool(&mcp.Tool{
		Name:        "rename_page",
		Description: "Change a page title",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Page ID or prefix"},
				"title": {"type": "string", "description": "New title"}
			},
			"required": ["id", "title"]
		}`),
	}, s.handleRenamePage)

	// delete_page
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_page",
		Description: "Delete a page",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Page ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeletePage)

	// add_block
	s.server.AddTool(&mcp.Tool{
		Name:        "add_block",
		Description: "Append a block to a page",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page_id": {"type": "string", "description": "Page ID or prefix"},
				"type": {"type": "string", "description": "text, todo or calendar"},
				"content": {"type": "string", "description": "Block text, ignored for calendar blocks"}
			},
			"required": ["page_id", "type"]
		}`),
	}, s.handleAddBlock)

	// delete_blocks
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_blocks",
		Description: "Delete blocks by 1-based position. The delete can be undone for a short time with the undo tool",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page_id": {"type": "string", "description": "Page ID or prefix"},
				"positions": {"type": "array", "items": {"type": "integer"}, "description": "1-based block positions"}
			},
			"required": ["page_id", "positions"]
		}`),
	}, s.handleDeleteBlocks)

	// move_blocks
	s.server.AddTool(&mcp.Tool{
		Name:        "move_blocks",
		Description: "Move blocks so they sit before the block currently at position 'to'. Use block count + 1 to move to the end",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page_id": {"type": "string", "description": "Page ID or prefix"},
				"positions": {"type": "array", "items": {"type": "integer"}, "description": "1-based block positions to move"},
				"to": {"type": "integer", "description": "1-based destination position"}
			},
			"required": ["page_id", "positions", "to"]
		}`),
	}, s.handleMoveBlocks)

	// edit_block
	s.server.AddTool(&mcp.Tool{
		Name:        "edit_block",
		Description: "Replace the text of a text or todo block",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page_id": {"type": "string", "description": "Page ID or prefix"},
				"position": {"type": "integer", "description": "1-based block position"},
				"content": {"type": "string", "description": "New text"}
			},
			"required": ["page_id", "position", "content"]
		}`),
	}, s.handleEditBlock)

	// toggle_block
	s.server.AddTool(&mcp.Tool{
		Name:        "toggle_block",
		Description: "Flip the completion state of a todo block",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page_id": {"type": "string", "description": "Page ID or prefix"},
				"position": {"type": "integer", "description": "1-based block position"}
			},
			"required": ["page_id", "position"]
		}`),
	}, s.handleToggleBlock)

	// set_event
	s.server.AddTool(&mcp.Tool{
		Name:        "set_event",
		Description: "Set or clear the note for a day on a calendar block. Empty text clears it",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"page_id": {"type": "string", "description": "Page ID or prefix"},
				"position": {"type": "integer", "description": "1-based position of the calendar block"},
				"date": {"type": "string", "description": "Day in YYYY-MM-DD form"},
				"text": {"type": "string", "description": "Event note"}
			},
			"required": ["page_id", "position", "date"]
		}`),
	}, s.handleSetEvent)

	// month_grid
	s.server.AddTool(&mcp.Tool{
		Name:        "month_grid",
		Description: "Get the calendar grid for a month with every event on it",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"month": {"type": "string", "description": "Month in YYYY-MM form, defaults to the current month"}
			}
		}`),
	}, s.handleMonthGrid)

	// agenda
	s.server.AddTool(&mcp.Tool{
		Name:        "agenda",
		Description: "List events from every calendar block in day order",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleAgenda)

	// undo
	s.server.AddTool(&mcp.Tool{
		Name:        "undo",
		Description: "Restore the most recent block delete if it is still undoable",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleUndo)
}

type pageSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Blocks    int       `json:"blocks"`
}

type blockView struct {
	Position  int              `json:"position"`
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Content   string           `json:"content,omitempty"`
	Completed bool             `json:"completed,omitempty"`
	Events    []calendar.Event `json:"events,omitempty"`
}

type pageView struct {
	pageSummary
	Blocks []blockView `json:"blocks"`
}

func summarize(p *models.Page) pageSummary {
	return pageSummary{ID: p.ID.String(), Title: p.Title, CreatedAt: p.CreatedAt, Blocks: len(p.Blocks)}
}

func viewPage(p *models.Page) pageView {
	v := pageView{pageSummary: summarize(p), Blocks: make([]blockView, 0, len(p.Blocks))}
	for i, b := range p.Blocks {
		v.Blocks = append(v.Blocks, blockView{
			Position:  i + 1,
			ID:        b.ID.String(),
			Type:      string(b.Type),
			Content:   b.Content,
			Completed: b.IsCompleted,
			Events:    calendar.EventsSorted(b),
		})
	}
	return v
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

// blockAt resolves a 1-based position on a page to a block.
func (s *Server) blockAt(pageID uuid.UUID, position int) (models.Block, error) {
	p, ok := s.store.Page(pageID)
	if !ok {
		return models.Block{}, fmt.Errorf("page %s not found", pageID)
	}
	if position < 1 || position > len(p.Blocks) {
		return models.Block{}, fmt.Errorf("position %d out of range 1-%d", position, len(p.Blocks))
	}
	return p.Blocks[position-1], nil
}

func toOffsets(positions []int) []int {
	offsets := make([]int, len(positions))
	for i, p := range positions {
		offsets[i] = p - 1
	}
	return offsets
}

// Tool handlers.
func (s *Server) handleListPages(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages := s.store.Pages()
	out := make([]pageSummary, len(pages))
	for i, p := range pages {
		out[i] = summarize(p)
	}
	return jsonResult(out), nil
}

func (s *Server) handleGetPage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.ID)
	if err != nil {
		return errorResult("failed to get page: %v", err), nil
	}
	p, _ := s.store.Page(id)
	return jsonResult(viewPage(p)), nil
}

func (s *Server) handleCreatePage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title    string `json:"title"`
		Template string `json:"template"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	tmpl := models.TemplateBlank
	if params.Template != "" {
		parsed, err := models.ParseTemplate(params.Template)
		if err != nil {
			return errorResult("failed to create page: %v", err), nil
		}
		tmpl = parsed
	}

	p := s.store.AddPage(params.Title, tmpl)
	return textResult(fmt.Sprintf("Created page %s (%s)", p.ID.String(), p.Title)), nil
}

func (s *Server) handleRenamePage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.ID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	s.store.RenamePage(id, params.Title)
	p, _ := s.store.Page(id)
	return textResult(fmt.Sprintf("Renamed page %s to %s", id.String(), p.Title)), nil
}

func (s *Server) handleDeletePage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.ID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	s.store.DeletePage(id)
	return textResult(fmt.Sprintf("Deleted page %s", id.String())), nil
}

func (s *Server) handleAddBlock(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		PageID  string `json:"page_id"`
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	blockType, err := models.ParseBlockType(params.Type)
	if err != nil {
		return errorResult("failed to add block: %v", err), nil
	}
	id, err := s.store.ResolvePage(params.PageID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	b, ok := s.store.AddBlock(id, blockType, params.Content)
	if !ok {
		return errorResult("page %s not found", id), nil
	}
	return textResult(fmt.Sprintf("Added %s block %s", b.Type, b.ID.String())), nil
}

func (s *Server) handleDeleteBlocks(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		PageID    string `json:"page_id"`
		Positions []int  `json:"positions"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.PageID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	if s.store.DeleteBlocks(id, toOffsets(params.Positions)) == 0 {
		return errorResult("no blocks at positions %v", params.Positions), nil
	}

	pending, ok := s.store.Pending()
	if !ok {
		return textResult("Blocks deleted"), nil
	}
	return textResult(fmt.Sprintf("%s. Call undo before %s to restore.",
		pending.Message(), pending.ExpiresAt.Format(time.RFC3339))), nil
}

func (s *Server) handleMoveBlocks(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		PageID    string `json:"page_id"`
		Positions []int  `json:"positions"`
		To        int    `json:"to"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.PageID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	moved := s.store.MoveBlocks(id, toOffsets(params.Positions), params.To-1)
	if moved == 0 {
		return textResult("Nothing moved"), nil
	}
	return textResult(fmt.Sprintf("Moved %d block(s)", moved)), nil
}

func (s *Server) handleEditBlock(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		PageID   string `json:"page_id"`
		Position int    `json:"position"`
		Content  string `json:"content"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.PageID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	b, err := s.blockAt(id, params.Position)
	if err != nil {
		return errorResult("failed to edit block: %v", err), nil
	}
	if !s.store.EditBlockContent(id, b.ID, params.Content) {
		return errorResult("block %d is a %s block and has no text", params.Position, b.Type), nil
	}
	return textResult(fmt.Sprintf("Updated block %d", params.Position)), nil
}

func (s *Server) handleToggleBlock(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		PageID   string `json:"page_id"`
		Position int    `json:"position"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	id, err := s.store.ResolvePage(params.PageID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	b, err := s.blockAt(id, params.Position)
	if err != nil {
		return errorResult("failed to toggle block: %v", err), nil
	}
	if !s.store.ToggleBlock(id, b.ID) {
		return errorResult("block %d is a %s block, not todo", params.Position, b.Type), nil
	}
	state := "done"
	if b.IsCompleted {
		state = "not done"
	}
	return textResult(fmt.Sprintf("Marked block %d %s", params.Position, state)), nil
}

func (s *Server) handleSetEvent(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		PageID   string `json:"page_id"`
		Position int    `json:"position"`
		Date     string `json:"date"`
		Text     string `json:"text"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	date, err := models.DayKey(params.Date).Time(time.Local)
	if err != nil {
		return errorResult("invalid date %q, want YYYY-MM-DD", params.Date), nil
	}
	id, err := s.store.ResolvePage(params.PageID)
	if err != nil {
		return errorResult("failed to find page: %v", err), nil
	}
	b, err := s.blockAt(id, params.Position)
	if err != nil {
		return errorResult("failed to set event: %v", err), nil
	}
	if !s.store.SetEvent(id, b.ID, date, params.Text) {
		return errorResult("block %d is a %s block, not calendar", params.Position, b.Type), nil
	}
	return textResult(fmt.Sprintf("Set event on %s", calendar.KeyOf(date))), nil
}

type monthGrid struct {
	Month     string            `json:"month"`
	WeekStart string            `json:"week_start"`
	Headers   []string          `json:"headers"`
	Weeks     [][]string        `json:"weeks"`
	Events    map[string]string `json:"events"`
}

func (s *Server) handleMonthGrid(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Month string `json:"month"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	anchor := time.Now()
	if params.Month != "" {
		parsed, err := time.ParseInLocation("2006-01", params.Month, time.Local)
		if err != nil {
			return errorResult("invalid month %q, want YYYY-MM", params.Month), nil
		}
		anchor = parsed
	}

	grid := monthGrid{
		Month:     calendar.FirstOfMonth(anchor).Format("2006-01"),
		WeekStart: s.weekStart.String(),
		Headers:   calendar.WeekdayHeaders(s.weekStart),
		Events:    map[string]string{},
	}
	for _, week := range calendar.Weeks(calendar.MonthGrid(anchor, s.weekStart)) {
		row := make([]string, len(week))
		for i, cell := range week {
			if !cell.Empty() {
				row[i] = strconv.Itoa(cell.Date.Day())
			}
		}
		grid.Weeks = append(grid.Weeks, row)
	}

	prefix := grid.Month + "-"
	for _, item := range s.store.Agenda() {
		day := string(item.Day)
		if !strings.HasPrefix(day, prefix) {
			continue
		}
		if existing, ok := grid.Events[day]; ok {
			grid.Events[day] = existing + "; " + item.Text
			continue
		}
		grid.Events[day] = item.Text
	}
	return jsonResult(grid), nil
}

func (s *Server) handleAgenda(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.store.Agenda()
	type agendaEntry struct {
		Day    string `json:"day"`
		Text   string `json:"text"`
		PageID string `json:"page_id"`
		Page   string `json:"page"`
	}
	out := make([]agendaEntry, len(items))
	for i, it := range items {
		out[i] = agendaEntry{Day: string(it.Day), Text: it.Text, PageID: it.PageID.String(), Page: it.PageTitle}
	}
	return jsonResult(out), nil
}

func (s *Server) handleUndo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pending, ok := s.store.Pending()
	if !ok || !s.store.Undo() {
		return errorResult("nothing to undo"), nil
	}
	return textResult(fmt.Sprintf("Restored: %s", pending.Message())), nil
}
