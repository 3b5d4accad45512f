// ABOUTME: MCP server for notebook integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for page and block editing.

package mcp

import (
	"context"
	"time"

	"github.com/harper/notebook/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server    *mcp.Server
	store     *notebook.Store
	weekStart time.Weekday
}

func NewServer(store *notebook.Store, weekStart time.Weekday) *Server {
	s := &Server{store: store, weekStart: weekStart}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notebook",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
