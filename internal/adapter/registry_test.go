package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredAdapters(t *testing.T) {
	for _, name := range []string{"sqlite", "duckdb", "postgres"} {
		assert.True(t, IsRegistered(name), "%s should be registered via init()", name)
	}
	assert.False(t, IsRegistered("snowflake"))
}

func TestNew(t *testing.T) {
	a, err := New(Config{Type: "sqlite"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteAdapter{}, a)
}

func TestNewEmptyType(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Equal(t, "adapter type not specified", err.Error())
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(Config{Type: "fake_db"})
	require.Error(t, err)

	var unknownErr *UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "fake_db", unknownErr.Type)
	assert.Contains(t, unknownErr.Available, "sqlite")
	assert.Contains(t, err.Error(), "fake_db")
}

func TestList(t *testing.T) {
	names := List()
	assert.Contains(t, names, "duckdb")
	assert.Contains(t, names, "postgres")
	assert.Contains(t, names, "sqlite")
	assert.IsIncreasing(t, names, "List returns sorted names")
}
