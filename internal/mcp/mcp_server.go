// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/blamescope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the blamescope MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Blamescope Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: get_line_blame ---
	s.AddTool(mcp.NewTool("get_line_blame",
		mcp.WithDescription("Extract per-line authorship records from a repository via git blame."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
		mcp.WithString("columns", mcp.Description("Comma-separated attribute columns (e.g. 'commit,contributor,line_no,code').")),
		mcp.WithNumber("file_limit", mcp.Description("Stop after this many surviving files.")),
	), h.handleGetLineBlame)

	// --- 2. Tool: get_blame_breakdown ---
	s.AddTool(mcp.NewTool("get_blame_breakdown",
		mcp.WithDescription("Aggregate blame records into a nested breakdown with counts and percentages."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("by", mcp.Description("Comma-separated ordered grouping attributes (e.g. 'contributor,file_type'). Defaults to 'contributor'.")),
		mcp.WithNumber("file_limit", mcp.Description("Stop after this many surviving files.")),
	), h.handleGetBlameBreakdown)

	return s
}

// StartMCPServer starts the blamescope MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
