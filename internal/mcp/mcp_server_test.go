package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizegate/sizegate/internal/contract"
	mcp_internal "github.com/sizegate/sizegate/internal/mcp"
	"github.com/sizegate/sizegate/schema"
)

// testConfig builds a config pointing at real bundle files in a temp dir,
// since the MCP handlers run against the OS filesystem.
func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.js"), make([]byte, 512), 0o644))

	return &contract.Config{
		BaselineFile:    filepath.Join(dir, "baseline.json"),
		Compression:     contract.CompressionConfig{Gzip: true, Brotli: true},
		EntryFilename:   contract.DefaultEntryFilename,
		RuntimeFilename: contract.DefaultRuntimeFilename,
		Workers:         2,
		Components: []contract.ComponentConfig{
			{Name: "button", MaxSize: "1KB", Include: []string{filepath.ToSlash(filepath.Join(dir, "button*.js"))}},
		},
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServer_CheckBundleSizes(t *testing.T) {
	s := mcp_internal.NewMCPServer(testConfig(t), nil)

	res := callTool(t, s, "check_bundle_sizes", map[string]any{})
	require.False(t, res.IsError)

	var result schema.CheckRunResult
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &result))

	require.Len(t, result.Results, 1)
	assert.Equal(t, "button", result.Results[0].Key)
	assert.Equal(t, int64(512), result.Results[0].Size.RawBytes)
	assert.False(t, result.HasWarnings)
}

func TestMCPServer_GetBundleSize(t *testing.T) {
	s := mcp_internal.NewMCPServer(testConfig(t), nil)

	t.Run("known key", func(t *testing.T) {
		res := callTool(t, s, "get_bundle_size", map[string]any{"key": "button"})
		require.False(t, res.IsError)

		var cr schema.ComparisonResult
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &cr))
		assert.Equal(t, int64(512), cr.Size.RawBytes)
	})

	t.Run("unknown key", func(t *testing.T) {
		res := callTool(t, s, "get_bundle_size", map[string]any{"key": "nope"})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `no result for key "nope"`)
	})

	t.Run("missing key", func(t *testing.T) {
		res := callTool(t, s, "get_bundle_size", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "key is required")
	})
}

func TestMCPServer_GetSizeHistoryWithoutStore(t *testing.T) {
	s := mcp_internal.NewMCPServer(testConfig(t), nil)

	res := callTool(t, s, "get_size_history", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "history tracking is disabled")
}
