package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/storage"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func TestNew_RunsMigrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"records", "record_versions"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestStorage_PutGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

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
			record: &models.Record{ID: "2", Value: "", UpdatedAt: 11},
		},
		{
			name: "record with versions",
			record: &models.Record{
				ID:        "3",
				Value:     "B",
				UpdatedAt: 12,
				Versions: []models.VersionEntry{
					{Source: models.SourceLocal, Value: "A", Timestamp: 12},
					{Source: models.SourceRemote, Value: "C", Timestamp: 3},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, tt.record))

			got, err := s.Get(ctx, tt.record.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.record, got)
		})
	}
}

func TestStorage_Get_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_Put_ReplacesRecordAndVersions(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	first := &models.Record{
		ID:        "1",
		Value:     "A",
		UpdatedAt: 10,
		Versions:  []models.VersionEntry{{Source: models.SourceLocal, Value: "X", Timestamp: 10}},
	}
	require.NoError(t, s.Put(ctx, first))

	second := &models.Record{ID: "1", Value: "B", UpdatedAt: 20}
	require.NoError(t, s.Put(ctx, second))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Equal(t, int64(20), got.UpdatedAt)
	assert.Empty(t, got.Versions)
}

func TestStorage_AppendVersion(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Put(ctx, &models.Record{ID: "1", Value: "B", UpdatedAt: 10}))

	// Timestamp не монотонен, порядок определяется вставкой
	require.NoError(t, s.AppendVersion(ctx, "1", models.VersionEntry{Source: models.SourceLocal, Value: "A", Timestamp: 10}))
	require.NoError(t, s.AppendVersion(ctx, "1", models.VersionEntry{Source: models.SourceLocal, Value: "Z", Timestamp: 2}))
	require.NoError(t, s.AppendVersion(ctx, "1", models.VersionEntry{Source: models.SourceLocal, Value: "A", Timestamp: 10}))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Equal(t, int64(10), got.UpdatedAt)
	require.Len(t, got.Versions, 3)
	assert.Equal(t, "A", got.Versions[0].Value)
	assert.Equal(t, "Z", got.Versions[1].Value)
	assert.Equal(t, "A", got.Versions[2].Value)
}

func TestStorage_AppendVersion_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.AppendVersion(context.Background(), "missing", models.VersionEntry{Source: models.SourceLocal, Value: "A", Timestamp: 1})
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStorage_Scan(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for i, id := range []string{"3", "1", "2"} {
		require.NoError(t, s.Put(ctx, &models.Record{ID: id, Value: "v" + id, UpdatedAt: int64(i + 1)}))
	}
	require.NoError(t, s.AppendVersion(ctx, "2", models.VersionEntry{Source: models.SourceLocal, Value: "old", Timestamp: 1}))

	t.Run("all", func(t *testing.T) {
		records, err := s.Scan(ctx, storage.All)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, models.IDs(records))
		assert.Len(t, records[1].Versions, 1)
		assert.Empty(t, records[0].Versions)
	})

	t.Run("not in", func(t *testing.T) {
		records, err := s.Scan(ctx, storage.NotIn([]string{"1", "3", "unknown"}))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2", records[0].ID)
		assert.Equal(t, "old", records[0].Versions[0].Value)
	})

	t.Run("nothing matches", func(t *testing.T) {
		records, err := s.Scan(ctx, storage.NotIn([]string{"1", "2", "3"}))
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}

func TestStorage_Scan_VersionsOnlyForMatched(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Маленькая пачка, чтобы выборка версий шла в несколько запросов
	prev := versionsBatchSize
	versionsBatchSize = 2
	defer func() { versionsBatchSize = prev }()

	for i := range 7 {
		id := fmt.Sprintf("r%d", i)
		require.NoError(t, s.Put(ctx, &models.Record{
			ID:        id,
			Value:     "v",
			UpdatedAt: 10,
			Versions: []models.VersionEntry{
				{Source: models.SourceLocal, Value: id + "-a", Timestamp: 10},
				{Source: models.SourceLocal, Value: id + "-b", Timestamp: 5},
			},
		}))
	}

	matched := map[string]bool{"r0": true, "r2": true, "r3": true, "r5": true, "r6": true}
	records, err := s.Scan(ctx, func(id string) bool { return matched[id] })
	require.NoError(t, err)

	require.Len(t, records, len(matched))
	for _, r := range records {
		assert.True(t, matched[r.ID])
		// Порядок вставки сохраняется внутри каждой пачки
		assert.Equal(t, []models.VersionEntry{
			{Source: models.SourceLocal, Value: r.ID + "-a", Timestamp: 10},
			{Source: models.SourceLocal, Value: r.ID + "-b", Timestamp: 5},
		}, r.Versions)
	}
	assert.Equal(t, []string{"r0", "r2", "r3", "r5", "r6"}, models.IDs(records))
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	cleanup() // Закрываем сразу

	_, err := s.Get(ctx, "1")
	assert.ErrorIs(t, err, storage.ErrStoreClosed)

	err = s.Put(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 1})
	assert.ErrorIs(t, err, storage.ErrStoreClosed)

	err = s.AppendVersion(ctx, "1", models.VersionEntry{})
	assert.ErrorIs(t, err, storage.ErrStoreClosed)

	_, err = s.Scan(ctx, storage.All)
	assert.ErrorIs(t, err, storage.ErrStoreClosed)

	assert.ErrorIs(t, s.Ping(ctx), storage.ErrStoreClosed)

	// Повторный Close безопасен
	assert.NoError(t, s.Close())
}

func TestStorage_CancelledContext(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Put(ctx, &models.Record{ID: "1", Value: "A", UpdatedAt: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorage_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.Put(ctx, &models.Record{ID: "1", Value: "B", UpdatedAt: 10}))

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			v := models.VersionEntry{Source: models.SourceLocal, Value: fmt.Sprintf("v%d", i), Timestamp: time.Now().UnixMilli()}
			assert.NoError(t, s.AppendVersion(ctx, "1", v))
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, got.Versions, writers)
}
