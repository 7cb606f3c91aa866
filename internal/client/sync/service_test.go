package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/recordsync/internal/client/storage"
	"github.com/iudanet/recordsync/internal/client/storage/boltdb"
	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/reconcile"
	"github.com/iudanet/recordsync/pkg/api"
)

const testNow = int64(1_700_000_000_000)

func strPtr(s string) *string { return &s }

func newTestStorage(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestService(t *testing.T, apiClient APIClient) (*service, *boltdb.Storage, *clock.Manual) {
	t.Helper()
	store := newTestStorage(t)
	clk := clock.NewManualMillis(testNow)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(apiClient, store, clk, logger).(*service)
	return svc, store, clk
}

func seed(t *testing.T, store storage.RecordStorage, records ...*models.Record) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, store.SaveRecord(context.Background(), r))
	}
}

func TestNewService(t *testing.T) {
	mockAPI := &APIClientMock{}
	store := newTestStorage(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, store, nil, logger).(*service)

	assert.Equal(t, mockAPI, svc.apiClient)
	assert.Equal(t, store, svc.store)
	assert.Equal(t, clock.System{}, svc.clock)
	assert.Equal(t, logger, svc.logger)
}

func TestService_Add(t *testing.T) {
	svc, store, _ := newTestService(t, &APIClientMock{})
	ctx := context.Background()

	rec, err := svc.Add(ctx, "", "A")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, testNow, rec.UpdatedAt)

	got, err := store.GetRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	rec, err = svc.Add(ctx, "custom", "")
	require.NoError(t, err)
	assert.Equal(t, "custom", rec.ID)
	assert.Equal(t, "", rec.Value)

	_, err = svc.Add(ctx, "custom", "again")
	assert.Error(t, err)

	_, err = svc.Add(ctx, "bad\x00id", "A")
	assert.Error(t, err)
}

func TestService_Edit(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		now         int64
		wantUpdated int64
		wantChanged bool
	}{
		{
			name:        "same value keeps record untouched",
			value:       "A",
			now:         testNow,
			wantUpdated: 10,
			wantChanged: false,
		},
		{
			name:        "new value stamps clock",
			value:       "B",
			now:         testNow,
			wantUpdated: testNow,
			wantChanged: true,
		},
		{
			name:        "clock behind record still advances",
			value:       "B",
			now:         5,
			wantUpdated: 11,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, clk := newTestService(t, &APIClientMock{})
			ctx := context.Background()
			seed(t, store, &models.Record{ID: "1", Value: "A", UpdatedAt: 10})
			clk.Set(clock.NewManualMillis(tt.now).Now())

			rec, changed, err := svc.Edit(ctx, "1", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.value, rec.Value)

			got, err := store.GetRecord(ctx, "1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, got.UpdatedAt)
		})
	}
}

func TestService_Edit_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t, &APIClientMock{})

	_, _, err := svc.Edit(context.Background(), "missing", "A")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestService_Push(t *testing.T) {
	mockAPI := &APIClientMock{
		PushFunc: func(ctx context.Context, data []api.Record) (*api.BatchResponse, error) {
			return &api.BatchResponse{
				Message:  "Sync completed",
				Changes:  1,
				Failures: []api.ItemError{{ID: "2", Kind: "STORE_UNAVAILABLE", Message: "operation timed out"}},
			}, nil
		},
	}
	svc, store, _ := newTestService(t, mockAPI)
	ctx := context.Background()
	seed(t, store,
		&models.Record{ID: "1", Value: "A", UpdatedAt: 10},
		&models.Record{ID: "2", Value: "B", UpdatedAt: 20},
	)

	result, err := svc.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Changes)
	assert.Equal(t, []models.ItemError{
		{ID: "2", Kind: models.KindStoreUnavailable, Message: "operation timed out"},
	}, result.Failures)

	calls := mockAPI.PushCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Data, 2)
	assert.Equal(t, "1", calls[0].Data[0].ID)
	assert.Equal(t, "A", *calls[0].Data[0].Value)

	lastSync, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNow, lastSync)
}

func TestService_Merge_Error(t *testing.T) {
	apiErr := errors.New("server unavailable")
	mockAPI := &APIClientMock{
		MergeFunc: func(ctx context.Context, data []api.Record) (*api.BatchResponse, error) {
			return nil, apiErr
		},
	}
	svc, store, _ := newTestService(t, mockAPI)
	ctx := context.Background()

	_, err := svc.Merge(ctx)
	assert.ErrorIs(t, err, apiErr)

	// Неуспешный обмен не сдвигает время синхронизации
	lastSync, err := store.GetLastSyncTimestamp(ctx)
	require.NoError(t, err)
	assert.Zero(t, lastSync)
}

func TestService_Pull(t *testing.T) {
	mockAPI := &APIClientMock{
		PullFunc: func(ctx context.Context, localIDs []string) ([]api.Record, error) {
			assert.Equal(t, []string{"1"}, localIDs)
			return []api.Record{
				{ID: "2", Value: strPtr("B"), UpdatedAt: 20},
				{ID: "3", UpdatedAt: 30}, // без value
			}, nil
		},
	}
	svc, store, _ := newTestService(t, mockAPI)
	ctx := context.Background()
	seed(t, store, &models.Record{ID: "1", Value: "A", UpdatedAt: 10})

	pulled, err := svc.Pull(ctx)
	require.NoError(t, err)
	require.Len(t, pulled, 1)
	assert.Equal(t, "2", pulled[0].ID)

	all, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, models.IDs(all))
}

func TestService_CheckConflicts(t *testing.T) {
	digest := reconcile.Digest("1", "A", "B")
	mockAPI := &APIClientMock{
		CheckConflictsFunc: func(ctx context.Context, data []api.Record) (*api.ConflictsResponse, error) {
			return &api.ConflictsResponse{Conflicts: []api.Conflict{
				// Старый сервер присылает только cloud* поля
				{ID: "1", LocalValue: "A", CloudValue: "B", Digest: digest, LocalUpdatedAt: 10, CloudUpdatedAt: 10},
			}}, nil
		},
	}
	svc, store, _ := newTestService(t, mockAPI)
	ctx := context.Background()
	seed(t, store, &models.Record{ID: "1", Value: "A", UpdatedAt: 10})
	require.NoError(t, store.SaveConflicts(ctx, []models.ConflictReport{{ID: "old"}}))

	result, err := svc.CheckConflicts(ctx)
	require.NoError(t, err)

	want := []models.ConflictReport{{
		ID: "1", LocalValue: "A", RemoteValue: "B", Digest: digest, LocalUpdatedAt: 10, RemoteUpdatedAt: 10,
	}}
	assert.Equal(t, want, result.Conflicts)

	// Отложенный набор заменен результатом проверки
	pending, err := svc.PendingConflicts(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, pending)
}

func TestService_Resolve(t *testing.T) {
	mockAPI := &APIClientMock{
		ResolveFunc: func(ctx context.Context, req api.ResolveRequest) (*api.ResolveResponse, error) {
			assert.Equal(t, []api.Resolution{
				{ID: "1", Resolution: "both"},
				{ID: "2", Resolution: "remote"},
			}, req.Resolutions)
			assert.Len(t, req.LocalData, 2)

			return &api.ResolveResponse{
				Message: "Conflicts resolved",
				UpdatedData: []api.Record{
					{ID: "1", Value: strPtr("A"), UpdatedAt: 10},
					{ID: "2", Value: strPtr("D"), UpdatedAt: testNow},
				},
				Failures: []api.ItemError{{ID: "2", Kind: "STORE_UNAVAILABLE", Message: "store is closed"}},
			}, nil
		},
	}
	svc, store, _ := newTestService(t, mockAPI)
	ctx := context.Background()
	seed(t, store,
		&models.Record{ID: "1", Value: "A", UpdatedAt: 10},
		&models.Record{ID: "2", Value: "C", UpdatedAt: 10},
	)
	require.NoError(t, store.SaveConflicts(ctx, []models.ConflictReport{
		{ID: "1", LocalValue: "A", RemoteValue: "B", Digest: reconcile.Digest("1", "A", "B")},
		{ID: "2", LocalValue: "C", RemoteValue: "D", Digest: reconcile.Digest("2", "C", "D")},
	}))

	result, err := svc.Resolve(ctx, []models.Resolution{
		{ID: "1", Choice: models.ChoiceBoth},
		{ID: "2", Choice: models.ChoiceRemote},
	})
	require.NoError(t, err)
	require.Len(t, result.UpdatedLocal, 2)
	require.Len(t, result.Failures, 1)

	got, err := store.GetRecord(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "D", got.Value)

	// Конфликт с ошибкой остается отложенным
	pending, err := store.ListConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2", pending[0].ID)
}

func TestService_Resolve_Rejected(t *testing.T) {
	tests := []struct {
		wantErr     error
		name        string
		resolutions []models.Resolution
	}{
		{
			name:    "nothing to resolve",
			wantErr: ErrNothingToResolve,
		},
		{
			name:        "no pending conflict",
			resolutions: []models.Resolution{{ID: "9", Choice: models.ChoiceLocal}},
			wantErr:     ErrNoPendingConflict,
		},
		{
			name:        "local value changed after check",
			resolutions: []models.Resolution{{ID: "1", Choice: models.ChoiceLocal}},
			wantErr:     ErrStaleConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAPI := &APIClientMock{}
			svc, store, _ := newTestService(t, mockAPI)
			ctx := context.Background()
			seed(t, store, &models.Record{ID: "1", Value: "edited", UpdatedAt: 20})
			require.NoError(t, store.SaveConflicts(ctx, []models.ConflictReport{
				{ID: "1", LocalValue: "A", RemoteValue: "B", Digest: reconcile.Digest("1", "A", "B")},
			}))

			_, err := svc.Resolve(ctx, tt.resolutions)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, mockAPI.ResolveCalls())
		})
	}
}

func TestService_Resolve_InvalidChoice(t *testing.T) {
	svc, _, _ := newTestService(t, &APIClientMock{})

	_, err := svc.Resolve(context.Background(), []models.Resolution{{ID: "1", Choice: "merge"}})
	assert.ErrorContains(t, err, "unknown resolution choice")
}

func TestService_Status(t *testing.T) {
	svc, store, _ := newTestService(t, &APIClientMock{})
	ctx := context.Background()
	seed(t, store, &models.Record{ID: "1", Value: "A", UpdatedAt: 10})
	require.NoError(t, store.SaveConflicts(ctx, []models.ConflictReport{{ID: "1"}}))
	require.NoError(t, store.SaveLastSyncTimestamp(ctx, 42))

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Status{Records: 1, PendingConflicts: 1, LastSync: 42}, status)
}
