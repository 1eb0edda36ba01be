package record_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"signsheet/internal/store"
)

// A minimal but decodable 1x1 PNG, the shape of payload the canvas produces.
const sigPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// openTestDB opens a fresh sqlite store in the test's temp dir, migrated
// and closed automatically.
func openTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open(store.BackendSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
