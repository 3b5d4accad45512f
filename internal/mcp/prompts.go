// ABOUTME: MCP prompts for common notebook workflows.
// ABOUTME: Provides pre-configured prompts that drive the page and calendar tools.

package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harper/notebook/internal/interchange"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "plan-meeting",
		Description: "Create a meeting page with an agenda, action items, and a calendar",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "meeting_title",
				Description: "Title of the meeting",
				Required:    true,
			},
			{
				Name:        "date",
				Description: "Meeting day (YYYY-MM-DD)",
				Required:    false,
			},
		},
	}, s.getPlanMeetingPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "daily-journal",
		Description: "Write today's journal entry on a journal page",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "date",
				Description: "Date for the journal entry (YYYY-MM-DD)",
				Required:    false,
			},
		},
	}, s.getDailyJournalPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-page",
		Description: "Generate a summary of an existing page",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "page_id",
				Description: "ID of the page to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizePagePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-agenda",
		Description: "Review upcoming events across every calendar block",
	}, s.getReviewAgendaPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getPlanMeetingPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	meetingTitle, ok := req.Params.Arguments["meeting_title"]
	if !ok || meetingTitle == "" {
		meetingTitle = "Meeting"
	}
	date, ok := req.Params.Arguments["date"]
	if !ok || date == "" {
		date = time.Now().Format("2006-01-02")
	}

	template := fmt.Sprintf(`Plan the meeting: %s on %s

1. Use create_page with template "meeting" and title %q.
2. Use edit_block on position 1 to write the agenda as short text.
3. Replace the placeholder todo at position 2 with the first action item using edit_block,
   then add_block with type "todo" for each further action item.
4. Use set_event on the calendar block (position 3) with date %s and a one line description.
5. Finish with get_page and show the result.`, meetingTitle, date, meetingTitle, date)

	return userPrompt(template), nil
}

func (s *Server) getDailyJournalPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	date, ok := req.Params.Arguments["date"]
	if !ok || date == "" {
		date = time.Now().Format("2006-01-02")
	}

	template := fmt.Sprintf(`Create a daily journal entry for %s.

Use list_pages to look for an existing journal page. If none exists, use create_page with
template "journal". Its calendar block is at position 1 and its text block at position 2.

Please include reflections on:
- What went well today?
- What am I grateful for?
- What could have gone better?
- What will I focus on tomorrow?

Write the reflection into the text block with edit_block, then use set_event on the
calendar block with date %s and a one sentence summary of the day.`, date, date)

	return userPrompt(template), nil
}

func (s *Server) getSummarizePagePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pageID, ok := req.Params.Arguments["page_id"]
	if !ok || pageID == "" {
		return nil, fmt.Errorf("page_id is required")
	}

	id, err := s.store.ResolvePage(pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	page, _ := s.store.Page(id)

	template := fmt.Sprintf(`Please summarize the following page:

%s
Provide:
1. A brief summary (2-3 sentences)
2. Open todo items
3. Upcoming dates from its calendar blocks`, interchange.Markdown(page))

	return userPrompt(template), nil
}

func (s *Server) getReviewAgendaPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	items := s.store.Agenda()

	listing := "No events are scheduled yet.\n"
	if len(items) > 0 {
		listing = ""
		for _, it := range items {
			listing += fmt.Sprintf("- %s: %s (page %q)\n", it.Day, it.Text, it.PageTitle)
		}
	}

	template := fmt.Sprintf(`Here are the events recorded across my calendar blocks:

%s
Please:
1. Point out busy days and conflicts
2. Flag past events that may need a follow-up todo
3. Suggest anything that should be added with set_event`, listing)

	return userPrompt(template), nil
}
