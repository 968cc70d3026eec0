// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sizegate/sizegate/internal/contract"
	"github.com/sizegate/sizegate/internal/history"
)

// NewMCPServer initializes and configures the Sizegate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store history.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Sizegate Bundle Size Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: check_bundle_sizes ---
	s.AddTool(mcp.NewTool("check_bundle_sizes",
		mcp.WithDescription("Measure configured component bundles and evaluate them against size caps and the persisted baseline."),
		mcp.WithBoolean("gzip", mcp.Description("Measure gzip-compressed sizes (defaults to the configured value).")),
		mcp.WithBoolean("brotli", mcp.Description("Measure brotli-compressed sizes (defaults to the configured value).")),
		mcp.WithString("baseline_file", mcp.Description("Path to the baseline snapshot file (defaults to the configured value).")),
		mcp.WithNumber("workers", mcp.Description("Number of concurrent file workers.")),
	), h.handleCheckBundleSizes)

	// --- 2. Tool: get_bundle_size ---
	s.AddTool(mcp.NewTool("get_bundle_size",
		mcp.WithDescription("Measure configured component bundles and return the result for a single baseline key."),
		mcp.WithString("key", mcp.Description("The result key, e.g. 'button' or 'button/index.js'."), mcp.Required()),
	), h.handleGetBundleSize)

	// --- 3. Tool: get_size_history ---
	s.AddTool(mcp.NewTool("get_size_history",
		mcp.WithDescription("Return recent size check runs from the history store."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned (defaults to 10).")),
	), h.handleGetSizeHistory)

	return s
}

// StartMCPServer starts the Sizegate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store history.Store) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
