package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/blamescope/core"
	"github.com/huangsam/blamescope/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// splitAttrs parses a comma-separated attribute list from a tool argument.
func splitAttrs(s string) []string {
	var attrs []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			attrs = append(attrs, trimmed)
		}
	}
	return attrs
}

func (h *toolHandler) handleGetLineBlame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if c := request.GetString("columns", ""); c != "" {
		cfg.Columns = splitAttrs(c)
	}
	if l := request.GetInt("file_limit", 0); l > 0 {
		cfg.FileLimit = l
	}

	client := contract.NewLocalGitClient()
	result, err := core.RunScan(ctx, cfg, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	data := core.LineBlameData(result, cfg.Columns)
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBlameBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if by := request.GetString("by", ""); by != "" {
		cfg.GroupBy = splitAttrs(by)
	}
	if l := request.GetInt("file_limit", 0); l > 0 {
		cfg.FileLimit = l
	}

	client := contract.NewLocalGitClient()
	result, err := core.RunScan(ctx, cfg, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	data, err := core.BreakdownData(result, cfg.GroupBy)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("breakdown failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
