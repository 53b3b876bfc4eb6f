package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OpenAIClient implements Embedder against any OpenAI-compatible
// /v1/embeddings endpoint (OpenAI, Ollama, vLLM).
type OpenAIClient struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

type openaiEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openaiEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// NewOpenAIClient creates a client for an OpenAI-compatible embedding service.
func NewOpenAIClient(baseURL, model, apiKey string) (*OpenAIClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required for openai embedding provider")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required for openai embedding provider")
	}
	return &OpenAIClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{},
	}, nil
}

// Embed requests an embedding for a single text and normalizes it.
// There is no internal timeout; callers needing one wrap the context.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(openaiEmbedRequest{Model: c.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call embeddings API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("embeddings API returned status %d: %s", resp.StatusCode, string(msg))
	}

	var embedResp openaiEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if len(embedResp.Data) == 0 || len(embedResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embeddings API returned no embedding")
	}

	return Normalize(embedResp.Data[0].Embedding), nil
}

var _ Embedder = (*OpenAIClient)(nil)
