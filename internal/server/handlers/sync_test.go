package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/orchestrator"
	"github.com/iudanet/recordsync/internal/server/storage"
	"github.com/iudanet/recordsync/internal/server/storage/memory"
	"github.com/iudanet/recordsync/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// setupSyncHandler собирает handler поверх настоящего оркестратора и in-memory хранилища
func setupSyncHandler(t *testing.T, records ...*models.Record) (*SyncHandler, *memory.Store) {
	t.Helper()

	store := memory.New()
	for _, r := range records {
		require.NoError(t, store.Put(context.Background(), r))
	}

	svc := orchestrator.New(store, orchestrator.Options{
		Clock:     clock.NewManualMillis(1000),
		Logger:    setupTestLogger(),
		OpTimeout: time.Second,
	})

	return NewSyncHandler(setupTestLogger(), svc), store
}

func doJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h(w, req)

	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestSyncHandler_Push(t *testing.T) {
	handler, store := setupSyncHandler(t)

	w := doJSON(t, handler.Push, "/sync/push", `{"data":[{"id":"2","value":"X","updatedAt":5}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeBody[api.BatchResponse](t, w)
	assert.Equal(t, "Sync completed", resp.Message)
	assert.Equal(t, 1, resp.Changes)
	assert.Empty(t, resp.Failures)

	got, err := store.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "X", got.Value)
	assert.Equal(t, int64(5), got.UpdatedAt)
}

func TestSyncHandler_Push_InvalidRecordsReportedPerItem(t *testing.T) {
	handler, store := setupSyncHandler(t)

	body := `{"data":[
		{"id":"no-value","updatedAt":5},
		{"id":"empty-value","value":"","updatedAt":5},
		{"id":"no-ts","value":"A"}
	]}`
	w := doJSON(t, handler.Push, "/sync/push", body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.BatchResponse](t, w)
	assert.Equal(t, 1, resp.Changes)
	require.Len(t, resp.Failures, 2)
	assert.Equal(t, "no-value", resp.Failures[0].ID)
	assert.Equal(t, string(models.KindInvalidRecord), resp.Failures[0].Kind)
	assert.Equal(t, "no-ts", resp.Failures[1].ID)
	assert.Equal(t, 1, store.Len())
}

func TestSyncHandler_Merge_Fork(t *testing.T) {
	handler, store := setupSyncHandler(t, &models.Record{ID: "1", Value: "B", UpdatedAt: 10})

	w := doJSON(t, handler.Merge, "/sync/merge", `{"data":[{"id":"1","value":"A","updatedAt":10}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.BatchResponse](t, w)
	assert.Equal(t, "Merge completed", resp.Message)
	assert.Equal(t, 1, resp.Changes)

	got, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Equal(t, []models.VersionEntry{{Source: models.SourceLocal, Value: "A", Timestamp: 10}}, got.Versions)
}

func TestSyncHandler_Pull(t *testing.T) {
	handler, _ := setupSyncHandler(t,
		&models.Record{ID: "1", Value: "A", UpdatedAt: 1},
		&models.Record{ID: "2", Value: "B", UpdatedAt: 2},
	)

	tests := []struct {
		name    string
		body    string
		wantIDs []string
	}{
		{name: "known id excluded", body: `{"localIds":["1"]}`, wantIDs: []string{"2"}},
		{name: "all known", body: `{"localIds":["1","2"]}`, wantIDs: []string{}},
		{name: "nothing known", body: `{}`, wantIDs: []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, handler.Pull, "/sync/pull", tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			records := decodeBody[[]api.Record](t, w)
			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSyncHandler_CheckConflicts(t *testing.T) {
	handler, _ := setupSyncHandler(t, &models.Record{ID: "1", Value: "B", UpdatedAt: 10})

	w := doJSON(t, handler.CheckConflicts, "/sync/checkConflicts",
		`{"data":[{"id":"1","value":"A","updatedAt":10},{"id":"2","value":"C","updatedAt":1}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.ConflictsResponse](t, w)
	require.Len(t, resp.Conflicts, 1)

	c := resp.Conflicts[0]
	assert.Equal(t, "1", c.ID)
	assert.Equal(t, "A", c.LocalValue)
	assert.Equal(t, "B", c.RemoteValue)
	assert.Equal(t, "B", c.CloudValue)
	assert.Equal(t, int64(10), c.CloudUpdatedAt)
	assert.NotEmpty(t, c.Digest)
}

func TestSyncHandler_CheckConflicts_EmptyListNotNull(t *testing.T) {
	handler, _ := setupSyncHandler(t)

	w := doJSON(t, handler.CheckConflicts, "/sync/checkConflicts", `{"data":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"conflicts":[]}`, w.Body.String())
}

func TestSyncHandler_Resolve(t *testing.T) {
	handler, store := setupSyncHandler(t,
		&models.Record{ID: "1", Value: "B", UpdatedAt: 10},
		&models.Record{ID: "2", Value: "remote", UpdatedAt: 10},
	)

	body := `{
		"resolutions":[
			{"id":"1","resolution":"both"},
			{"id":"2","resolution":"cloud"},
			{"id":"3","resolution":"whatever"}
		],
		"localData":[
			{"id":"1","value":"A","updatedAt":10},
			{"id":"2","value":"local","updatedAt":10},
			{"id":"3","value":"C","updatedAt":10}
		]
	}`

	w := doJSON(t, handler.Resolve, "/sync/resolve", body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.ResolveResponse](t, w)
	assert.Equal(t, "Conflicts resolved", resp.Message)
	require.Len(t, resp.UpdatedData, 3)

	// cloud: локальная запись заменена удаленной и помечена текущим временем
	require.NotNil(t, resp.UpdatedData[1].Value)
	assert.Equal(t, "remote", *resp.UpdatedData[1].Value)
	assert.Equal(t, int64(1000), resp.UpdatedData[1].UpdatedAt)

	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "3", resp.Failures[0].ID)
	assert.Equal(t, string(models.KindUnknownResolutionChoice), resp.Failures[0].Kind)

	got, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Len(t, got.Versions, 1)
}

func TestSyncHandler_Resolve_InvalidLocalData(t *testing.T) {
	handler, _ := setupSyncHandler(t)

	w := doJSON(t, handler.Resolve, "/sync/resolve",
		`{"resolutions":[{"id":"1","resolution":"local"}],"localData":[{"id":"1","updatedAt":10}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[api.ErrorResponse](t, w)
	assert.Equal(t, "Invalid localData", resp.Error)
}

func TestSyncHandler_BadRequests(t *testing.T) {
	handler, _ := setupSyncHandler(t)

	tests := []struct {
		handler http.HandlerFunc
		name    string
		body    string
	}{
		{name: "push malformed", handler: handler.Push, body: `{"data":`},
		{name: "pull wrong type", handler: handler.Pull, body: `{"localIds":"1"}`},
		{name: "merge not json", handler: handler.Merge, body: `hello`},
		{name: "resolve malformed", handler: handler.Resolve, body: `[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, tt.handler, "/sync/any", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSyncHandler_BodyTooLarge(t *testing.T) {
	handler, _ := setupSyncHandler(t)
	handler.WithMaxBodyBytes(32)

	var buf bytes.Buffer
	buf.WriteString(`{"data":[`)
	for i := 0; i < 10; i++ {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, `{"id":"%d","value":"xxxxxxxx","updatedAt":1}`, i)
	}
	buf.WriteString(`]}`)

	w := doJSON(t, handler.Push, "/sync/push", buf.String())
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSyncHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantStatus int
	}{
		{
			name:       "store closed",
			err:        fmt.Errorf("push: %w: %w", orchestrator.ErrBatchAborted, storage.ErrStoreClosed),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "cancelled",
			err:        context.Canceled,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unexpected",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &SyncServiceMock{
				PushFunc: func(ctx context.Context, batch []*models.Record) (models.BatchResult, error) {
					return models.BatchResult{}, tt.err
				},
			}
			handler := NewSyncHandler(setupTestLogger(), mock)

			w := doJSON(t, handler.Push, "/sync/push", `{"data":[{"id":"1","value":"A","updatedAt":1}]}`)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Len(t, mock.PushCalls(), 1)
		})
	}
}

func TestSyncHandler_Resolve_BuildsRequest(t *testing.T) {
	var got models.ResolutionRequest
	mock := &SyncServiceMock{
		ResolveFunc: func(ctx context.Context, req models.ResolutionRequest) (models.ResolveResult, error) {
			got = req
			return models.ResolveResult{UpdatedLocal: req.LocalBatch()}, nil
		},
	}
	handler := NewSyncHandler(setupTestLogger(), mock)

	w := doJSON(t, handler.Resolve, "/sync/resolve", `{
		"resolutions":[{"id":"1","resolution":"Cloud"},{"id":"2","resolution":"L"}],
		"localData":[{"id":"1","value":"A","updatedAt":1}]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []models.Resolution{
		{ID: "1", Choice: models.ChoiceRemote},
		{ID: "2", Choice: models.ChoiceLocal},
	}, got.Resolutions())
	assert.Len(t, got.LocalBatch(), 1)
}

func TestSyncHandler_Resolve_DuplicateLocalData(t *testing.T) {
	handler, store := setupSyncHandler(t, &models.Record{ID: "1", Value: "B", UpdatedAt: 10})

	w := doJSON(t, handler.Resolve, "/sync/resolve", `{
		"resolutions":[{"id":"1","resolution":"remote"}],
		"localData":[
			{"id":"1","value":"A","updatedAt":10},
			{"id":"1","value":"A2","updatedAt":10}
		]
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[api.ErrorResponse](t, w)
	assert.Equal(t, "Invalid localData", resp.Error)
	assert.Contains(t, resp.Message, "duplicate record id")

	got, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Equal(t, int64(10), got.UpdatedAt)
}
