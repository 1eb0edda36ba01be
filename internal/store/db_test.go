package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signsheet/internal/store"
)

func TestOpen_SQLiteCreatesSchema(t *testing.T) {
	db, err := store.Open(store.BackendSQLite, filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var n int
	err = db.Client.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	err = db.Client.QueryRow(`SELECT COUNT(*) FROM event_config`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db1, err := store.Open("", path)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := store.Open("", path)
	require.NoError(t, err)
	t.Cleanup(func() { db2.Close() })
	assert.Equal(t, store.BackendSQLite, db2.Backend)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := store.Open("mongodb", "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestRebind(t *testing.T) {
	sqlite := &store.DB{Backend: store.BackendSQLite}
	pg := &store.DB{Backend: store.BackendPostgres}

	q := `INSERT INTO t (a, b) VALUES (?, ?) WHERE c = ?`
	assert.Equal(t, q, sqlite.Rebind(q))
	assert.Equal(t, `INSERT INTO t (a, b) VALUES ($1, $2) WHERE c = $3`, pg.Rebind(q))
}
