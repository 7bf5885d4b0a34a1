package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"retodfa/internal/dto"
	"retodfa/internal/metrics"
	"retodfa/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := metrics.New()
	h := NewHandler(service.New(service.WithMetrics(m)), WithMetrics(m, "/metrics"))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestConvertEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/convert", `{"alphabet":"a,b","expression":"a.b"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc dto.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Len(t, doc.States, 3)
	assert.Equal(t, []int{2}, doc.Finals)
	assert.Equal(t, "ab.", doc.Postfix)
}

func TestConvertEndpointErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		body   string
		status int
		kind   string
	}{
		{`{"alphabet":"a,b","expression":"(a.b"}`, http.StatusUnprocessableEntity, "malformed-expression"},
		{`{"alphabet":"","expression":"a"}`, http.StatusUnprocessableEntity, "empty-alphabet"},
		{`{"alphabet":"a","expression":" "}`, http.StatusUnprocessableEntity, "empty-expression"},
		{`{"alphabet":"a","expression":"b"}`, http.StatusUnprocessableEntity, "unknown-symbol"},
		{`{"alphabet":`, http.StatusBadRequest, "bad-request"},
	}
	for _, tt := range tests {
		resp := post(t, srv.URL+"/convert", tt.body)
		assert.Equal(t, tt.status, resp.StatusCode, tt.body)
		var e ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
		assert.Equal(t, tt.kind, e.Kind, tt.body)
		assert.NotEmpty(t, e.Error)
	}
}

func TestMatchEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/match", `{"alphabet":"a,b","expression":"(a+b)*.a","inputs":["ba","ab","c"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out MatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 3)
	assert.True(t, out.Results[0].Accepted)
	assert.False(t, out.Results[1].Accepted)
	assert.Equal(t, "unknown-symbol", out.Results[2].Kind)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/convert", `{"alphabet":"a","expression":"a*"}`)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `retodfa_conversions_total{outcome="ok"} 1`)
}

func TestNoMetricsRoute(t *testing.T) {
	srv := httptest.NewServer(NewHandler(service.New()))
	defer srv.Close()
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConvertEndpointStateLimit(t *testing.T) {
	srv := httptest.NewServer(NewHandler(service.New(service.WithMaxDFAStates(100))))
	defer srv.Close()

	expr := "(a+b)*a" + strings.Repeat("(a+b)", 10)
	resp := post(t, srv.URL+"/convert", `{"alphabet":"a,b","expression":"`+expr+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "too-many-states", e.Kind)
}

func TestBodyLimit(t *testing.T) {
	srv := httptest.NewServer(NewHandler(service.New(), WithMaxBodyBytes(64)))
	defer srv.Close()

	big := `{"alphabet":"a","expression":"` + strings.Repeat("a", 200) + `"}`
	for _, path := range []string{"/convert", "/match"} {
		resp := post(t, srv.URL+path, big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode, path)
		var e ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
		assert.Equal(t, "too-large", e.Kind, path)
	}

	resp := post(t, srv.URL+"/convert", `{"alphabet":"a","expression":"a*"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
