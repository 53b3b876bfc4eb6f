package embed

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"
)

// DefaultDimension is the hashing embedder's vector size when unconfigured.
const DefaultDimension = 256

var wordRe = regexp.MustCompile(`\b\w+\b`)

// HashingEmbedder is a deterministic, dependency-free embedder: it hashes
// lower-cased word tokens into a fixed-size bag-of-words vector. Quality is
// far below a learned model, but it is stable across processes and needs no
// network, which makes it the default for local runs and tests.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a hashing embedder with the given dimension.
// Non-positive dimensions fall back to DefaultDimension.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Embed maps text to a unit-length term-frequency vector.
func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)
	for _, tok := range wordRe.FindAllString(strings.ToLower(text), -1) {
		f := fnv.New32a()
		_, _ = f.Write([]byte(tok))
		vec[int(f.Sum32())%h.dim]++
	}
	return Normalize(vec), nil
}

var _ Embedder = (*HashingEmbedder)(nil)
