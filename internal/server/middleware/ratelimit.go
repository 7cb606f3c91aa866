package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/pkg/api"
)

// RateLimiter ограничивает число запросов клиента в окне времени (fixed window)
type RateLimiter struct {
	clock   clock.Clock
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	mu      sync.Mutex
}

// bucket состояние окна для одного клиента
type bucket struct {
	windowStart time.Time
	tokens      int
}

// NewRateLimiter создает rate limiter: не более rate запросов за window на клиента
func NewRateLimiter(rate int, window time.Duration, clk clock.Clock) *RateLimiter {
	if clk == nil {
		clk = clock.System{}
	}

	return &RateLimiter{
		clock:   clk,
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		b = &bucket{windowStart: now, tokens: rl.rate}
		rl.buckets[key] = b
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Prune удаляет окна, истекшие к текущему моменту. Возвращает число удаленных.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	removed := 0
	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) >= rl.window {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// RateLimit создает middleware, отклоняющий запросы сверх лимита с 429.
// Заголовки прокси учитываются только если соединение пришло от trustedProxies.
func RateLimit(limiter *RateLimiter, logger *slog.Logger, trustedProxies ...netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r, trustedProxies)

			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter(limiter.window))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "rate limit exceeded, please try again later"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func retryAfter(window time.Duration) string {
	seconds := int(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}

// clientIP определяет адрес клиента для лимита.
// Без доверенного прокси это всегда адрес соединения: заголовки
// X-Forwarded-For и X-Real-IP клиент может подставить сам.
// За доверенным прокси берется самый правый недоверенный адрес из X-Forwarded-For.
func clientIP(r *http.Request, trusted []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !isTrusted(host, trusted) {
		return host
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if !isTrusted(hop, trusted) || i == 0 {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return host
}

func isTrusted(host string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
