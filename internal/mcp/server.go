package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gyaneshwarpardhi/inspector/internal/engine"
)

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
}

// Server exposes the correlation engine as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	eng       *engine.Engine
}

// New creates an MCP server backed by eng and registers its tools.
func New(cfg Config, eng *engine.Engine) *Server {
	if cfg.Name == "" {
		cfg.Name = "inspector"
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}

	s := &Server{eng: eng}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "inspector_inspect",
		Description: "Correlate a list of raw inspector events into logical entries (request paired with response) and return one row per entry.",
	}, s.handleInspect)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "inspector_summary",
		Description: "Count the logical entries in a list of raw inspector events by category, with failed and pending totals.",
	}, s.handleSummary)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "inspector_entries",
		Description: "List the entries of the event history loaded into this server, optionally filtered by category, failure or text.",
	}, s.handleEntries)
}
