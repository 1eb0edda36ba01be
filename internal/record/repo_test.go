package record_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signsheet/internal/record"
)

func sample(name string) record.Record {
	return record.Record{
		CompleteName: name,
		Sex:          "F",
		Designation:  "Engineer",
		Division:     "R&D",
		Signature:    sigPNG,
	}
}

func TestRepository_InsertAssignsIDAndTimestamp(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	before := time.Now().UnixMilli()
	saved, err := repo.Insert(ctx, sample("Jane Doe"))
	after := time.Now().UnixMilli()
	require.NoError(t, err)

	assert.Equal(t, int64(1), saved.ID, "first record gets id 1")
	assert.GreaterOrEqual(t, saved.Timestamp, before)
	assert.LessOrEqual(t, saved.Timestamp, after)
}

func TestRepository_InsertThenListRoundTrips(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	rec := sample("Jane Doe")
	rec.Status = record.Status{PWD: true, OSY: true}
	saved, err := repo.Insert(ctx, rec)
	require.NoError(t, err)

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Jane Doe", got.CompleteName)
	assert.Equal(t, "F", got.Sex)
	assert.Equal(t, "Engineer", got.Designation)
	assert.Equal(t, "R&D", got.Division)
	assert.Equal(t, record.Status{PWD: true, OSY: true}, got.Status)
	assert.Equal(t, sigPNG, got.Signature)
	assert.Equal(t, saved.Timestamp, got.Timestamp)
}

func TestRepository_ListAllNewestFirst(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, sample(name))
		require.NoError(t, err)
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "third", records[0].CompleteName)
	assert.Equal(t, "second", records[1].CompleteName)
	assert.Equal(t, "first", records[2].CompleteName)
	assert.Greater(t, records[0].ID, records[1].ID)
	assert.Greater(t, records[1].ID, records[2].ID)
}

func TestRepository_ListAllEmpty(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRepository_Get(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	saved, err := repo.Insert(ctx, sample("Jane Doe"))
	require.NoError(t, err)

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved, *got)

	missing, err := repo.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_DeleteOneIsIdempotent(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	saved, err := repo.Insert(ctx, sample("Jane Doe"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOne(ctx, saved.ID))
	require.NoError(t, repo.DeleteOne(ctx, saved.ID), "second delete of the same id must succeed")

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRepository_DeleteAll(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, sample("attendee"))
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteAll(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// Also fine on an already empty collection.
	require.NoError(t, repo.DeleteAll(ctx))
}

func TestRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := record.NewRepository(openTestDB(t))
	ctx := context.Background()

	first, err := repo.Insert(ctx, sample("one"))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteOne(ctx, first.ID))

	second, err := repo.Insert(ctx, sample("two"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
