package embed

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorNorm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := NewHashingEmbedder(0)

	a, err := e.Embed(context.Background(), "total sales by brand")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "total sales by brand")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, DefaultDimension)
}

func TestHashingEmbedderNormalized(t *testing.T) {
	e := NewHashingEmbedder(64)

	vec, err := e.Embed(context.Background(), "orders and customers and payments")
	require.NoError(t, err)
	assert.Len(t, vec, 64)
	assert.InDelta(t, 1.0, vectorNorm(vec), 0.0001)
}

func TestHashingEmbedderCaseInsensitive(t *testing.T) {
	e := NewHashingEmbedder(0)

	a, err := e.Embed(context.Background(), "Total SALES")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "total sales")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHashingEmbedderEmptyText(t *testing.T) {
	e := NewHashingEmbedder(0)

	vec, err := e.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, vectorNorm(vec), "empty text yields the zero vector")
}

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(vec[0]), 0.0001)
	assert.InDelta(t, 0.8, float64(vec[1]), 0.0001)

	zero := Normalize([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestNewFactory(t *testing.T) {
	e, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &HashingEmbedder{}, e)

	e, err = New(Config{Provider: "openai", BaseURL: "http://localhost:11434", Model: "nomic-embed-text"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, e)

	_, err = New(Config{Provider: "openai"})
	require.Error(t, err, "openai provider requires a base URL")

	_, err = New(Config{Provider: "quantum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantum")
}

func TestOpenAIClientEmbed(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotBody, _ = req["input"].(string)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{3, 4}, "index": 0},
			},
		})
	}))
	defer srv.Close()

	c, err := NewOpenAIClient(srv.URL, "test-model", "secret")
	require.NoError(t, err)

	vec, err := c.Embed(context.Background(), "orders by brand")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "orders by brand", gotBody)
	require.Len(t, vec, 2)
	assert.InDelta(t, 1.0, vectorNorm(vec), 0.0001, "response vectors are normalized")
}

func TestOpenAIClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewOpenAIClient(srv.URL, "test-model", "")
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), "anything")
	require.Error(t, err)
}
