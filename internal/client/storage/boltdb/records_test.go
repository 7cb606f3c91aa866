package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/recordsync/internal/client/storage"
	"github.com/iudanet/recordsync/internal/models"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T) (*Storage, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		if store.db != nil {
			require.NoError(t, store.Close())
		}
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Errorf("failed to remove tmpDir: %v", err)
		}
	}

	return store, cleanup
}

func TestStorage_SaveRecord(t *testing.T) {
	tests := []struct {
		record *models.Record
		name   string
	}{
		{
			name:   "plain record",
			record: &models.Record{ID: "1", Value: "A", UpdatedAt: 10},
		},
		{
			name:   "empty value",
			record: &models.Record{ID: "2", Value: "", UpdatedAt: 20},
		},
		{
			name: "with versions",
			record: &models.Record{ID: "3", Value: "B", UpdatedAt: 30, Versions: []models.VersionEntry{
				{Source: models.SourceLocal, Value: "A", Timestamp: 30},
			}},
		},
	}

	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.SaveRecord(ctx, tt.record))

			got, err := store.GetRecord(ctx, tt.record.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.record, got)
		})
	}
}

func TestStorage_SaveRecord_Update(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 10}))
	require.NoError(t, store.SaveRecord(ctx, &models.Record{ID: "1", Value: "B", UpdatedAt: 20}))

	got, err := store.GetRecord(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Equal(t, int64(20), got.UpdatedAt)

	all, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStorage_GetRecord_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_ListRecords(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Пустое хранилище возвращает пустой срез, а не nil
	all, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.SaveRecord(ctx, &models.Record{ID: id, Value: id, UpdatedAt: 1}))
	}

	all, err = store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, models.IDs(all))
}

func TestStorage_ReplaceRecords(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, &models.Record{ID: "old", Value: "X", UpdatedAt: 1}))
	require.NoError(t, store.SaveRecord(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 10}))

	replacement := []*models.Record{
		{ID: "1", Value: "B", UpdatedAt: 20},
		{ID: "2", Value: "C", UpdatedAt: 30},
	}
	require.NoError(t, store.ReplaceRecords(ctx, replacement))

	all, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, all)

	_, err = store.GetRecord(ctx, "old")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	// Пустая замена очищает набор
	require.NoError(t, store.ReplaceRecords(ctx, nil))
	all, err = store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStorage_ClosedDB(t *testing.T) {
	store, cleanup := createTestStorage(t)
	cleanup() // Закрываем сразу

	ctx := context.Background()

	err := store.SaveRecord(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 10})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetRecord(ctx, "1")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.ListRecords(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.ReplaceRecords(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.SaveConflicts(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestStorage_CancelledContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.SaveRecord(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorage_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveRecord(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 10}))
	require.NoError(t, store.Close())

	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	got, err := store.GetRecord(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Value)
}
