// Package embed provides text embedding backends for the vector retrieval
// strategy.
//
// Two backends are available: an OpenAI-compatible HTTP client (works with
// OpenAI, Ollama, vLLM, or any service exposing /v1/embeddings) and a
// deterministic in-process hashing embedder for offline use and tests.
package embed

import (
	"context"
	"fmt"
	"math"
)

// Embedder turns text into a unit-length dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config holds embedding backend configuration.
type Config struct {
	Provider  string `koanf:"provider"` // hash, openai
	BaseURL   string `koanf:"base_url"`
	Model     string `koanf:"model"`
	APIKey    string `koanf:"api_key"`
	Dimension int    `koanf:"dimension"`
}

// New creates an embedder for the configured provider.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "", "hash":
		return NewHashingEmbedder(cfg.Dimension), nil
	case "openai":
		return NewOpenAIClient(cfg.BaseURL, cfg.Model, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (available: [hash openai])", cfg.Provider)
	}
}

// Func adapts an Embedder to the plain function shape vector indices expect.
func Func(e Embedder) func(ctx context.Context, text string) ([]float32, error) {
	return e.Embed
}

// Normalize scales a vector to unit length in place and returns it.
// Zero vectors are returned unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
