package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sizegate/sizegate/core"
	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/internal/history"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   history.Store
}

func (h *toolHandler) handleCheckBundleSizes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Compression.Gzip = request.GetBool("gzip", cfg.Compression.Gzip)
	cfg.Compression.Brotli = request.GetBool("brotli", cfg.Compression.Brotli)
	if p := request.GetString("baseline_file", ""); p != "" {
		cfg.BaselineFile = p
	}
	if w := request.GetInt("workers", 0); w > 0 {
		cfg.Workers = w
	}

	runner := core.NewRunner(cfg, contract.NewOSFileSystem())
	result, err := runner.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("size check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBundleSize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")
	if key == "" {
		return mcp.NewToolResultError("key is required"), nil
	}

	runner := core.NewRunner(h.baseCfg.Clone(), contract.NewOSFileSystem())
	result, err := runner.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("size check failed: %v", err)), nil
	}

	cr, ok := result.ResultByKey(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no result for key %q", key)), nil
	}

	jsonData, _ := json.MarshalIndent(cr, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSizeHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("history tracking is disabled; set history-backend to enable it"), nil
	}

	limit := request.GetInt("limit", 10)
	runs, err := h.store.GetRecentRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(history.SummarizeRuns(runs), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
