package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInit_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	err := Init(dbPath)
	require.NoError(t, err)
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestInit_EmptyPath(t *testing.T) {
	err := Init("")
	assert.Error(t, err)
}

func TestInit_RecordsSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, Init(dbPath))
	db, err := GetDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	assert.NoError(t, err)
	assert.Equal(t, schemaVersion, version)
}

func TestInit_Idempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, Init(dbPath))
	assert.NoError(t, Init(dbPath))
}

func TestSQLiteStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	// last write wins
	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":2}`)))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, s.Delete(ctx, "never-set"))
}

func TestSQLiteStore_Nil(t *testing.T) {
	ctx := context.Background()
	var s *SQLiteStore

	_, err := s.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, s.Set(ctx, "k", nil))
	assert.Error(t, s.Delete(ctx, "k"))
	assert.NoError(t, s.Close())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, StoreConfig{Type: StoreSQLite, Path: filepath.Join(t.TempDir(), "open.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, s.Close())

	_, err = Open(ctx, StoreConfig{Type: "mongo"})
	assert.Error(t, err)

	_, err = Open(ctx, StoreConfig{Type: StorePostgres})
	assert.Error(t, err)

	_, err = Open(ctx, StoreConfig{Type: StoreRedis})
	assert.Error(t, err)
}

func TestNewSQLiteStore_ExistingEmptyFile(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(dbPath, nil, 0600))

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, ClassesKey, []byte("[]")))
	got, err := s.Get(ctx, ClassesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewSQLiteStore_ReopenKeepsSingleVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	for i := 0; i < 2; i++ {
		s, err := NewSQLiteStore(dbPath)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	db, err := GetDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count))
	assert.Equal(t, 1, count)
}
