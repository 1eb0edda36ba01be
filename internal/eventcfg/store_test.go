package eventcfg_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signsheet/internal/eventcfg"
	"signsheet/internal/store"
)

func openTestStore(t *testing.T) *eventcfg.Store {
	t.Helper()
	db, err := store.Open(store.BackendSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return eventcfg.NewStore(db)
}

func TestStore_LoadDefaultsWhenUnset(t *testing.T) {
	s := openTestStore(t)

	cfg, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cfg.ActivityName)
	assert.Empty(t, cfg.Venue)
	assert.Equal(t, time.Now().Format("2006-01-02"), cfg.EventDate)
}

func TestStore_SaveThenLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := eventcfg.Config{
		ActivityName: "Quarterly assembly",
		Venue:        "Main hall",
		EventDate:    "2026-08-25",
	}
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveOverwritesWholesale(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, eventcfg.Config{
		ActivityName: "Orientation",
		Venue:        "Annex",
		EventDate:    "2026-01-10",
	}))

	// A later save with empty fields replaces everything; no field-level merge.
	require.NoError(t, s.Save(ctx, eventcfg.Config{ActivityName: "Orientation v2"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Orientation v2", got.ActivityName)
	assert.Empty(t, got.Venue)
	assert.Empty(t, got.EventDate)
}
