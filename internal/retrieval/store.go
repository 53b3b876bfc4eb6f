package retrieval

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/philippgille/chromem-go"

	"github.com/leapstack-labs/schemascope/internal/catalog"
)

// IndexStore provides a vector collection for a given schema fingerprint.
// Implementations decide whether collections survive process restarts.
type IndexStore interface {
	// Collection returns the collection keyed by fingerprint, creating it
	// if needed. The second return reports whether the collection already
	// holds documents and can be queried as-is.
	Collection(fingerprint string, embedFn chromem.EmbeddingFunc) (*chromem.Collection, bool, error)
}

// MemoryStore keeps vector indices in process memory. Every process start
// begins with empty collections.
type MemoryStore struct {
	db *chromem.DB
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{db: chromem.NewDB()}
}

func (s *MemoryStore) Collection(fingerprint string, embedFn chromem.EmbeddingFunc) (*chromem.Collection, bool, error) {
	c, err := s.db.GetOrCreateCollection("schema-"+fingerprint, nil, embedFn)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open in-memory collection: %w", err)
	}
	return c, c.Count() > 0, nil
}

// PersistentStore keeps vector indices on disk, one database per schema
// fingerprint, so restarts skip re-embedding an unchanged schema.
type PersistentStore struct {
	dir string
}

func NewPersistentStore(dir string) *PersistentStore {
	return &PersistentStore{dir: dir}
}

func (s *PersistentStore) Collection(fingerprint string, embedFn chromem.EmbeddingFunc) (*chromem.Collection, bool, error) {
	db, err := chromem.NewPersistentDB(filepath.Join(s.dir, fingerprint), false)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open persistent index at %s: %w", s.dir, err)
	}
	c, err := db.GetOrCreateCollection("schema-"+fingerprint, nil, embedFn)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open persistent collection: %w", err)
	}
	return c, c.Count() > 0, nil
}

// populateCollection embeds every table description into the collection.
// Called only when the collection is empty for this fingerprint.
func populateCollection(ctx context.Context, c *chromem.Collection, ds *catalog.DescriptorSet) error {
	for _, name := range ds.Names() {
		td, _ := ds.Get(name)
		err := c.AddDocument(ctx, chromem.Document{
			ID:      td.Name,
			Content: td.Description(),
			Metadata: map[string]string{
				"table":   td.Name,
				"columns": fmt.Sprintf("%d", len(td.Columns)),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to index table %s: %w", td.Name, err)
		}
	}
	return nil
}

var (
	_ IndexStore = (*MemoryStore)(nil)
	_ IndexStore = (*PersistentStore)(nil)
)
