package retrieval

import (
	"context"
	"testing"

	"github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/schemascope/internal/embed"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ds := testDescriptors()
	embedFn := embed.Func(embed.NewHashingEmbedder(0))

	c, populated, err := store.Collection(ds.Fingerprint(), embedFn)
	require.NoError(t, err)
	assert.False(t, populated)

	require.NoError(t, populateCollection(context.Background(), c, ds))
	assert.Equal(t, ds.Len(), c.Count())

	// Reopening the same fingerprint sees the populated collection.
	_, populated, err = store.Collection(ds.Fingerprint(), embedFn)
	require.NoError(t, err)
	assert.True(t, populated)
}

func TestPersistentStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ds := testDescriptors()
	embedFn := embed.Func(embed.NewHashingEmbedder(0))

	store := NewPersistentStore(dir)
	c, populated, err := store.Collection(ds.Fingerprint(), embedFn)
	require.NoError(t, err)
	require.False(t, populated)
	require.NoError(t, populateCollection(context.Background(), c, ds))

	// A fresh store over the same directory finds the index on disk.
	reopened := NewPersistentStore(dir)
	c2, populated, err := reopened.Collection(ds.Fingerprint(), embedFn)
	require.NoError(t, err)
	assert.True(t, populated)
	assert.Equal(t, ds.Len(), c2.Count())
}

func TestPersistentStoreSeparatesFingerprints(t *testing.T) {
	dir := t.TempDir()
	embedFn := embed.Func(embed.NewHashingEmbedder(0))

	store := NewPersistentStore(dir)
	c1, _, err := store.Collection("aaaa000011112222", embedFn)
	require.NoError(t, err)
	require.NoError(t, c1.AddDocument(context.Background(), chromem.Document{
		ID:      "orders",
		Content: "Table: orders",
	}))

	_, populated, err := store.Collection("bbbb000011112222", embedFn)
	require.NoError(t, err)
	assert.False(t, populated, "a different fingerprint starts empty")
}
