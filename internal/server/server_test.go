package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/config"
	"github.com/iudanet/recordsync/internal/server/middleware"
	"github.com/iudanet/recordsync/internal/server/storage"
	"github.com/iudanet/recordsync/internal/server/storage/memory"
	"github.com/iudanet/recordsync/pkg/api"
)

func testConfig() *config.Server {
	return &config.Server{
		Addr:            "127.0.0.1:0",
		OpTimeout:       time.Second,
		Workers:         4,
		ShutdownTimeout: time.Second,
		MaxBodyBytes:    1 << 20,
		Log:             config.Log{Level: "error", Format: "text"},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_Routes(t *testing.T) {
	store := memory.New()
	srv := New(testConfig(), store, clock.NewManualMillis(1000), testLogger(), "test")

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	// push → pull → checkConflicts → resolve
	resp := post(t, ts.URL+"/sync/push", `{"data":[{"id":"1","value":"B","updatedAt":10}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp = post(t, ts.URL+"/sync/pull", `{"localIds":[]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pulled []api.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pulled))
	require.Len(t, pulled, 1)

	resp = post(t, ts.URL+"/sync/checkConflicts", `{"data":[{"id":"1","value":"A","updatedAt":10}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var conflicts api.ConflictsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conflicts))
	require.Len(t, conflicts.Conflicts, 1)

	resp = post(t, ts.URL+"/sync/resolve",
		`{"resolutions":[{"id":"1","resolution":"both"}],"localData":[{"id":"1","value":"A","updatedAt":10}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Value)
	assert.Len(t, got.Versions, 1)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := New(testConfig(), memory.New(), clock.System{}, testLogger(), "test")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/sync/push")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_Health(t *testing.T) {
	store := memory.New()
	srv := New(testConfig(), store, clock.System{}, testLogger(), "v1")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, store.Close())

	resp2, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)

	// Батч на закрытом хранилище прерывается целиком
	resp3 := post(t, ts.URL+"/sync/push", `{"data":[{"id":"1","value":"B","updatedAt":10}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp3.StatusCode)
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimit{Requests: 1, Window: time.Minute}

	srv := New(cfg, memory.New(), clock.NewManualMillis(1000), testLogger(), "test")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusOK, post(t, ts.URL+"/sync/pull", `{}`).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, post(t, ts.URL+"/sync/pull", `{}`).StatusCode)

	// Health не ограничивается
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	store := memory.New()
	srv := New(testConfig(), store, clock.System{}, testLogger(), "test")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	// Хранилище закрыто вместе с сервером
	assert.ErrorIs(t, store.Ping(context.Background()), storage.ErrStoreClosed)
}
