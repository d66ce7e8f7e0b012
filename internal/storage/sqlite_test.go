package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteGetMissing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	value, ok, err := db.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSQLiteSetGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "doc", []byte(`{"a":1}`)))

	value, ok, err := db.Get(ctx, "doc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), value)
}

func TestSQLiteSetOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "doc", []byte("old")))
	require.NoError(t, db.Set(ctx, "doc", []byte("new")))

	value, ok, err := db.Get(ctx, "doc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), value)
}

func TestSQLiteDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "doc", []byte("value")))
	require.NoError(t, db.Delete(ctx, "doc"))

	_, ok, err := db.Get(ctx, "doc")
	require.NoError(t, err)
	assert.False(t, ok)

	// Повторное удаление отсутствующего ключа не ошибка.
	require.NoError(t, db.Delete(ctx, "doc"))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "doc", []byte("durable")))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(dsn)
	require.NoError(t, err)
	defer db.Close()

	value, ok, err := db.Get(ctx, "doc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("durable"), value)
}

func TestMemorySetGetDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "doc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "doc", []byte("value")))

	value, ok, err := m.Get(ctx, "doc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), value)

	require.NoError(t, m.Delete(ctx, "doc"))
	_, ok, err = m.Get(ctx, "doc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	src := []byte("value")
	require.NoError(t, m.Set(ctx, "doc", src))
	src[0] = 'X'

	value, _, err := m.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	value[0] = 'Y'
	again, _, err := m.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}
