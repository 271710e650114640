package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordenet/acceptance-criteria-assistant/internal/config"
	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
	"github.com/bordenet/acceptance-criteria-assistant/internal/slop"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Workflow.Dir = filepath.Join(cfg.DataDir, "projects")
	return cfg
}

// toolNames lists the registered tools through a tools/list request.
func toolNames(t *testing.T, s *server.MCPServer) []string {
	t.Helper()
	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var out struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	names := make([]string, 0, len(out.Result.Tools))
	for _, tool := range out.Result.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestNew_WithHistory(t *testing.T) {
	s, cleanup, err := New(testConfig(t), nil)
	require.NoError(t, err)
	require.NotNil(t, s)
	defer cleanup()

	names := toolNames(t, s)
	for _, want := range []string{"ac_validate", "ac_critique", "ac_template", "ac_start", "ac_submit", "ac_status", "ac_history"} {
		assert.Contains(t, names, want)
	}
}

func TestNew_RubricMatchesScoringTables(t *testing.T) {
	s, cleanup, err := New(testConfig(t), nil)
	require.NoError(t, err)
	defer cleanup()

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"ac://rubric"}}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var out struct {
		Result struct {
			Contents []struct {
				Text string `json:"text"`
			} `json:"contents"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Result.Contents, 1)

	var rubric struct {
		SlopPhrases []slop.Phrase `json:"slop_phrases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Result.Contents[0].Text), &rubric))
	assert.Equal(t, slop.Phrases(), rubric.SlopPhrases)
}

func TestNew_HistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false

	s, cleanup, err := New(cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	names := toolNames(t, s)
	assert.Contains(t, names, "ac_validate")
	assert.NotContains(t, names, "ac_history")
}

func TestNew_HistoryFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	// A file where the data directory should be makes history fail to open.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))
	cfg.DataDir = blocker

	s, cleanup, err := New(cfg, nil)
	require.NoError(t, err)
	defer cleanup()

	names := toolNames(t, s)
	assert.Contains(t, names, "ac_validate")
	assert.NotContains(t, names, "ac_history")
}

func TestOpenHistory_UsesConfig(t *testing.T) {
	cfg := testConfig(t)
	hist, err := openHistory(cfg)
	require.NoError(t, err)
	defer hist.Close()

	_, err = hist.Add(history.Record{Title: "x", Content: "y"})
	assert.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.DataDir, history.DBFile))
}

func TestNoopCleanup(t *testing.T) {
	noop()
}
