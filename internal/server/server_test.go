package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemascope/internal/adapter"
	"github.com/leapstack-labs/schemascope/internal/retrieval"
	"github.com/leapstack-labs/schemascope/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	m := retrieval.NewManager(func(context.Context) (*adapter.Snapshot, error) {
		return testutil.Snapshot(), nil
	}, retrieval.Options{Logger: testutil.Logger(t)})
	m.Register(retrieval.NewFullSchemaStrategy())
	m.Register(retrieval.NewKeywordStrategy(retrieval.DefaultWeights()))

	return New(Config{Manager: m, Addr: "127.0.0.1:0", Logger: testutil.Logger(t)})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded),
		"response should be JSON: %s", rec.Body.String())
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSchemaEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodGet,
		"/api/v1/schema?query=total+sales+by+brand", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "keyword", body["strategy"])
	schema, _ := body["schema"].(string)
	assert.Contains(t, schema, "Available tables and columns:")
	assert.NotZero(t, body["table_count"])
}

func TestSchemaEndpointRequiresQuery(t *testing.T) {
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodGet, "/api/v1/schema", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "query")
}

func TestSchemaEndpointUnknownStrategyDegrades(t *testing.T) {
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodGet,
		"/api/v1/schema?query=sales&strategy=nope", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "keyword", body["strategy"])
}

func TestStrategiesEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodGet, "/api/v1/strategies", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	strategies, ok := body["strategies"].([]any)
	require.True(t, ok)
	assert.Len(t, strategies, 2)
}

func TestCompareEndpoint(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{"query": "total sales by brand"})
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodPost, "/api/v1/compare", payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	results, ok := body["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 2, "one result per registered strategy")
}

func TestCompareEndpointRequiresQuery(t *testing.T) {
	rec, _ := doJSON(t, testServer(t).Routes(), http.MethodPost, "/api/v1/compare", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	rec, body := doJSON(t, testServer(t).Routes(), http.MethodPost, "/api/v1/refresh", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refreshed", body["status"])
}

func TestSummaryEndpoint(t *testing.T) {
	srv := testServer(t)
	h := srv.Routes()

	_, _ = doJSON(t, h, http.MethodGet, "/api/v1/schema?query=sales", nil)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/summary", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	strategies, ok := body["strategies"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, strategies, "keyword")
}

func TestSchemaUnavailableMapsTo503(t *testing.T) {
	m := retrieval.NewManager(func(context.Context) (*adapter.Snapshot, error) {
		return nil, errors.New("connection refused")
	}, retrieval.Options{Logger: testutil.Logger(t)})
	m.Register(retrieval.NewKeywordStrategy(retrieval.DefaultWeights()))
	srv := New(Config{Manager: m, Addr: "127.0.0.1:0", Logger: testutil.Logger(t)})

	rec, body := doJSON(t, srv.Routes(), http.MethodGet, "/api/v1/schema?query=sales", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body["error"], "schema snapshot unavailable")
}
