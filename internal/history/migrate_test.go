package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizegate/sizegate/schema"
)

func TestMigrateHistory_RequiresBackend(t *testing.T) {
	assert.Error(t, MigrateHistory(schema.NoneBackend, "", -1))
	assert.Error(t, MigrateHistory("", "", -1))
	assert.Error(t, MigrateHistory("oracle", "", -1))
}

func TestMigrateHistory_SQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	// Up to latest
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	// Re-running is a no-op, not an error
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, -1))

	// The migrated database still serves the store
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	require.NoError(t, store.Close())

	// All the way back down
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateHistory_SpecificVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 2))
	require.NoError(t, MigrateHistory(schema.SQLiteBackend, dbPath, 0))
}
