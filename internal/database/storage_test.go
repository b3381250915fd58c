package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mushaf/internal/entities"
	"github.com/mrlokans/mushaf/internal/kvstore"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabase_SetGet_New(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Set("quran-settings", `{"theme":"dark"}`))

	value, err := db.Get("quran-settings")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, value)
}

func TestDatabase_Set_Overwrites(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Set("k", "1"))
	require.NoError(t, db.Set("k", "2"))

	value, err := db.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "2", value)

	var count int64
	require.NoError(t, db.DB.Model(&entities.StorageEntry{}).Where("key = ?", "k").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDatabase_Get_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Get("nonexistent")

	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestDatabase_Ping(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.Ping())

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}

func TestDatabase_AsKVStoreBackend(t *testing.T) {
	db := setupTestDB(t)
	store := kvstore.New(db)

	kvstore.Write(store, "list", []string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, kvstore.Read(store, "list", []string{}))
}
