// ABOUTME: MCP resources for exposing pages as readable resources.
// ABOUTME: Allows AI agents to read a page as markdown via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/interchange"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const pageURIPrefix = "notebook://page/"

func (s *Server) registerResources() {
	// The SDK handles listing based on the template.
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: pageURIPrefix + "{id}",
			Name:        "Page",
			Description: "Access individual pages by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, pageURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	id, err := s.store.ResolvePage(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	page, ok := s.store.Page(id)
	if !ok {
		return nil, fmt.Errorf("failed to get page: %s", id)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     interchange.Markdown(page),
			},
		},
	}, nil
}
