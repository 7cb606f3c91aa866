// Package clock provides the time source threaded through every write path.
package clock

import (
	"sync"
	"time"
)

// Clock источник времени для записей. Все пути записи получают его явно,
// чтобы тесты могли задавать детерминированные timestamp.
type Clock interface {
	Now() time.Time
}

// System реальное время
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// Manual часы, которые двигаются только вручную
type Manual struct {
	now time.Time
	mu  sync.Mutex
}

// NewManual creates a manual clock set to t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// NewManualMillis creates a manual clock set to the given unix millis.
func NewManualMillis(ms int64) *Manual {
	return NewManual(time.UnixMilli(ms))
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Set moves the clock to t (backwards moves are allowed to simulate skew).
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = t
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
	return m.now
}

// Millis returns c.Now() as unix milliseconds, the wire form of every timestamp.
func Millis(c Clock) int64 {
	return c.Now().UnixMilli()
}
