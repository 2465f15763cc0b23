package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/motomatch/internal/catalog"
	"github.com/vijay-prabhu/motomatch/internal/config"
	"github.com/vijay-prabhu/motomatch/internal/service"
)

func intPtr(v int) *int { return &v }

func setupServer(t *testing.T) *Server {
	t.Helper()

	db, err := catalog.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	seed := []*catalog.Model{
		{Name: "MT-07", Segment: "NAKED", Year: intPtr(2024), Stock: 5, TestDriveAvailable: true, Active: true, Published: true},
		{Name: "MT-09", Segment: "NAKED", Year: intPtr(2024), Stock: 2, Active: true, Published: true},
		{Name: "XTZ 250", Segment: "DOBLE PROPOSITO", Year: intPtr(2023), Stock: 0, Active: false, Published: true},
		{Name: "R7", Segment: "DEPORTIVA", Year: intPtr(2024), Stock: 1, Active: true, Published: false},
	}
	for _, m := range seed {
		require.NoError(t, db.CreateModel(ctx, m))
	}

	resolver := service.New(db, config.MatcherConfig{ReferenceYear: 2024, FoldAccents: true, MaxAlternatives: 3})
	return New(db, resolver, "test", zerolog.Nop())
}

func call(t *testing.T, s *Server, method string, params interface{}) *jsonRPCResponse {
	t.Helper()

	req := map[string]interface{}{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	return s.handleMessage(context.Background(), string(data))
}

// toolText calls a tool and returns the text content of a successful result
func toolText(t *testing.T, s *Server, name string, args interface{}) string {
	t.Helper()

	resp := call(t, s, "tools/call", map[string]interface{}{"name": name, "arguments": args})
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(callToolResult)
	require.True(t, ok, "unexpected result type %T", resp.Result)
	require.False(t, result.IsError, "tool error: %v", result.Content)
	require.Len(t, result.Content, 1)
	return result.Content[0].Text
}

func TestInitialize(t *testing.T) {
	s := setupServer(t)

	resp := call(t, s, "initialize", map[string]interface{}{})
	result, ok := resp.Result.(initializeResult)
	require.True(t, ok)
	assert.Equal(t, "motomatch", result.ServerInfo.Name)
	assert.Equal(t, "test", result.ServerInfo.Version)

	assert.Nil(t, call(t, s, "notifications/initialized", nil))
}

func TestHandleMessage_Errors(t *testing.T) {
	s := setupServer(t)

	resp := s.handleMessage(context.Background(), "{not json")
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeParseError, resp.Error.Code)

	resp = call(t, s, "prompts/list", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)

	resp = call(t, s, "tools/call", map[string]interface{}{"name": "delete_everything"})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "Unknown tool")
}

func TestHandleMessage_Notifications(t *testing.T) {
	s := setupServer(t)

	for _, msg := range []string{
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":3,"reason":"user"}}`,
		`{"jsonrpc":"2.0","method":"notifications/progress","params":{"progressToken":"t","progress":1}}`,
		`{"jsonrpc":"2.0","method":"notifications/roots/list_changed"}`,
	} {
		assert.Nil(t, s.handleMessage(context.Background(), msg), msg)
	}
}

func TestToolsList(t *testing.T) {
	s := setupServer(t)

	resp := call(t, s, "tools/list", nil)
	result, ok := resp.Result.(toolsListResult)
	require.True(t, ok)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		_, registered := s.handlers[tool.Name]
		assert.True(t, registered, "tool %s has no handler", tool.Name)
	}
	assert.ElementsMatch(t, []string{"match_model", "list_models", "get_model", "get_catalog_stats"}, names)
}

func TestMatchModelTool(t *testing.T) {
	s := setupServer(t)

	text := toolText(t, s, "match_model", map[string]interface{}{"query": "mt 07 naked"})

	var result struct {
		Found      bool   `json:"found"`
		Confidence string `json:"confidence"`
		Match      struct {
			Candidate struct {
				Name string `json:"name"`
			} `json:"candidate"`
			Score int `json:"score"`
		} `json:"match"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.True(t, result.Found)
	assert.Equal(t, "MT-07", result.Match.Candidate.Name)
	assert.Equal(t, 230, result.Match.Score)
	assert.Equal(t, "high", result.Confidence)
}

func TestMatchModelTool_Rejected(t *testing.T) {
	s := setupServer(t)

	// The only adventure-family model is inactive
	text := toolText(t, s, "match_model", map[string]interface{}{"query": "xtz doble propósito"})
	assert.Contains(t, text, `"found": false`)
	assert.Contains(t, text, "top_candidates")
}

func TestMatchModelTool_EmptyQuery(t *testing.T) {
	s := setupServer(t)

	resp := call(t, s, "tools/call", map[string]interface{}{"name": "match_model", "arguments": map[string]interface{}{"query": " "}})
	result, ok := resp.Result.(callToolResult)
	require.True(t, ok)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "query is empty")
}

func TestListAndGetModelTools(t *testing.T) {
	s := setupServer(t)

	text := toolText(t, s, "list_models", map[string]interface{}{"segment": "naked"})
	var models []catalog.Model
	require.NoError(t, json.Unmarshal([]byte(text), &models))
	require.Len(t, models, 2)
	assert.Equal(t, "MT-07", models[0].Name)

	text = toolText(t, s, "get_model", map[string]interface{}{"identifier": "mt-09"})
	var m catalog.Model
	require.NoError(t, json.Unmarshal([]byte(text), &m))
	assert.Equal(t, "MT-09", m.Name)

	// Lookup by ID also works
	text = toolText(t, s, "get_model", map[string]interface{}{"identifier": m.ID})
	assert.Contains(t, text, "MT-09")

	resp := call(t, s, "tools/call", map[string]interface{}{"name": "get_model", "arguments": map[string]interface{}{"identifier": "Africa Twin"}})
	result := resp.Result.(callToolResult)
	assert.True(t, result.IsError)
}

func TestResources(t *testing.T) {
	s := setupServer(t)

	resp := call(t, s, "resources/list", nil)
	list, ok := resp.Result.(resourcesListResult)
	require.True(t, ok)
	require.Len(t, list.Resources, 3)

	for _, r := range list.Resources {
		resp := call(t, s, "resources/read", map[string]interface{}{"uri": r.URI})
		require.Nil(t, resp.Error, "resource %s", r.URI)
		contents := resp.Result.(readResourceResult).Contents
		require.Len(t, contents, 1)
		assert.NotEmpty(t, contents[0].Text)
	}

	catalogText, err := s.handleReadResource(context.Background(), uriCatalog)
	require.NoError(t, err)
	assert.Contains(t, catalogText, "MT-07")
	assert.NotContains(t, catalogText, "R7 |", "unpublished models are hidden")

	segments := getResourceSegments()
	assert.Contains(t, segments, "DOBLE PROPOSITO: DUAL SPORT, ADVENTURE, TRAIL, ENDURO")

	resp = call(t, s, "resources/read", map[string]interface{}{"uri": "motomatch://nope"})
	require.NotNil(t, resp.Error)
}

func TestServe(t *testing.T) {
	s := setupServer(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(in), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"protocolVersion":"2024-11-05"`)
	assert.Contains(t, lines[1], `"id":2`)
}

func TestServe_CancelWhileIdle(t *testing.T) {
	s := setupServer(t)

	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, pr, io.Discard) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
