package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"retodfa/internal/regexlib"
	"retodfa/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsAreListed(t *testing.T) {
	s := NewServer(service.New(), "test", nil)
	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp := s.MCPServer().HandleMessage(context.Background(), msg)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "convert_regex")
	assert.Contains(t, string(raw), "match_regex")
}

func TestHandleConvert(t *testing.T) {
	s := NewServer(service.New(), "test", nil)
	doc, err := s.handleConvert(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"alphabet":   "a,b",
		"expression": "a+b",
	})
	require.NoError(t, err)
	assert.Len(t, doc.States, 3)
	assert.Equal(t, "ab+", doc.Postfix)
}

func TestHandleConvertError(t *testing.T) {
	s := NewServer(service.New(), "test", nil)
	_, err := s.handleConvert(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"alphabet":   "a,b",
		"expression": "(a.b",
	})
	assert.ErrorIs(t, err, regexlib.ErrMalformedExpression)

	_, err = s.handleConvert(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"alphabet": 7,
	})
	assert.Error(t, err)
}

func TestHandleMatch(t *testing.T) {
	s := NewServer(service.New(), "test", nil)
	out, err := s.handleMatch(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"alphabet":   "a",
		"expression": "a*",
		"inputs":     []interface{}{"", "aaa"},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.True(t, out.Results[0].Accepted)
	assert.True(t, out.Results[1].Accepted)
}
