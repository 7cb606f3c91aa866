package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/recordsync/internal/clock"
)

func TestRateLimiter_Allow(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	rl := NewRateLimiter(2, time.Minute, clk)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "third request in window should be rejected")

	// Другие клиенты не затронуты
	assert.True(t, rl.Allow("b"))

	// Новое окно восстанавливает лимит
	clk.Advance(time.Minute)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiter_Prune(t *testing.T) {
	clk := clock.NewManual(time.Unix(1000, 0))
	rl := NewRateLimiter(1, time.Minute, clk)

	rl.Allow("a")
	clk.Advance(30 * time.Second)
	rl.Allow("b")

	assert.Equal(t, 0, rl.Prune())

	clk.Advance(45 * time.Second)
	assert.Equal(t, 1, rl.Prune(), "only the expired window is removed")
}

func TestRateLimit_Middleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rl := NewRateLimiter(1, time.Minute, clock.NewManual(time.Unix(1000, 0)))

	handler := RateLimit(rl, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/sync/push", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimit_SpoofedForwardedHeader(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name       string
		remoteAddr string
		wantSecond int
	}{
		// Клиент напрямую меняет X-Forwarded-For, но ключом остается адрес соединения
		{name: "direct client", remoteAddr: "198.51.100.7:5555", wantSecond: http.StatusTooManyRequests},
		// За доверенным прокси каждый X-Forwarded-For считается отдельным клиентом
		{name: "behind trusted proxy", remoteAddr: "10.0.0.1:5555", wantSecond: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(1, time.Minute, clock.NewManual(time.Unix(1000, 0)))
			handler := RateLimit(rl, logger, trusted...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			send := func(forwarded string) int {
				req := httptest.NewRequest(http.MethodPost, "/sync/push", nil)
				req.RemoteAddr = tt.remoteAddr
				req.Header.Set("X-Forwarded-For", forwarded)
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)
				return w.Code
			}

			assert.Equal(t, http.StatusOK, send("203.0.113.1"))
			assert.Equal(t, tt.wantSecond, send("203.0.113.2"))
		})
	}
}

func TestClientIP(t *testing.T) {
	proxies := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.10/32"),
	}

	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		want       string
		trusted    []netip.Prefix
	}{
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.1:1234",
			want:       "192.168.1.1",
		},
		{
			name:       "forwarded headers ignored without trusted proxies",
			remoteAddr: "198.51.100.7:1234",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.5",
				"X-Real-IP":       "203.0.113.9",
			},
			want: "198.51.100.7",
		},
		{
			name:       "forwarded headers ignored from untrusted peer",
			remoteAddr: "198.51.100.7:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			trusted:    proxies,
			want:       "198.51.100.7",
		},
		{
			name:       "rightmost untrusted hop behind trusted proxies",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.5, 192.0.2.10"},
			trusted:    proxies,
			want:       "203.0.113.5",
		},
		{
			name:       "all hops trusted falls back to leftmost",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "10.1.1.1, 10.2.2.2"},
			trusted:    proxies,
			want:       "10.1.1.1",
		},
		{
			name:       "x-real-ip from trusted proxy",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			trusted:    proxies,
			want:       "203.0.113.9",
		},
		{
			name:       "malformed remote addr",
			remoteAddr: "pipe",
			trusted:    proxies,
			want:       "pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req, tt.trusted))
		})
	}
}
