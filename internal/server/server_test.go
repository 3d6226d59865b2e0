package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/xmind-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.AutoOpen = false
	cfg.ScratchDir = filepath.Join(t.TempDir(), "scratch")
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func callTool(t *testing.T, cfg config.Config, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s, cleanup, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	st := s.GetTool("generate-mind-map")
	require.NotNil(t, st, "generate-mind-map must be registered")

	req := mcp.CallToolRequest{}
	req.Params.Name = "generate-mind-map"
	req.Params.Arguments = args
	res, err := st.Handler(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestNew_CreatesScratchDir(t *testing.T) {
	cfg := testConfig(t)

	_, cleanup, err := New(cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	info, err := os.Stat(cfg.ScratchDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_RegistersOnlyGenerateTool(t *testing.T) {
	s, cleanup, err := New(testConfig(t), nil)
	require.NoError(t, err)
	defer cleanup()

	tools := s.ListTools()
	assert.Len(t, tools, 1)
	assert.Contains(t, tools, "generate-mind-map")
}

func TestNew_GeneratesIntoScratchDir(t *testing.T) {
	cfg := testConfig(t)

	res := callTool(t, cfg, map[string]any{
		"title":    "Root",
		"filename": "scratch-map",
		"topics":   []any{map[string]any{"title": "A"}},
	})
	require.False(t, res.IsError, resultText(res))

	want := filepath.Join(cfg.ScratchDir, "scratch-map.xmind")
	assert.Equal(t, "Mind map successfully generated and saved to: "+want, resultText(res))
	assert.FileExists(t, want)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "history.db"))
}

func TestNew_HistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History = false

	res := callTool(t, cfg, map[string]any{
		"title":    "Root",
		"filename": "no-history",
		"topics":   []any{},
	})
	require.False(t, res.IsError, resultText(res))
	assert.NoDirExists(t, cfg.DataDir)
}

func TestNew_HistoryFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.DataDir = filepath.Join(blocker, "data")

	res := callTool(t, cfg, map[string]any{
		"title":    "Root",
		"filename": "still-works",
		"topics":   []any{},
	})
	assert.False(t, res.IsError, resultText(res))
}

func TestNew_UnknownStructureStartsUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Structure = "spiral"

	res := callTool(t, cfg, map[string]any{
		"title":    "Root",
		"filename": "never",
		"topics":   []any{},
	})
	require.True(t, res.IsError)
	text := resultText(res)
	assert.True(t, strings.HasPrefix(text, "Error generating mind map: "), text)
	assert.Contains(t, text, "unavailable")
	assert.NoFileExists(t, filepath.Join(cfg.ScratchDir, "never.xmind"))
}
