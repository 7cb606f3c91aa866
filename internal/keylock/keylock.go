// Package keylock provides per-key exclusive sections.
package keylock

import (
	"context"
	"sync"
)

// Locker выдает эксклюзивную секцию на каждый ключ.
// Разные ключи не блокируют друг друга. Записи для ключей без
// владельцев и ожидающих удаляются, поэтому map не растет бесконечно.
type Locker struct {
	locks map[string]*entry
	mu    sync.Mutex
}

type entry struct {
	ch   chan struct{} // буфер 1: занятый слот = ключ захвачен
	refs int           // владелец + ожидающие
}

// New creates an empty Locker.
func New() *Locker {
	return &Locker{
		locks: make(map[string]*entry),
	}
}

// Lock blocks until key is free or ctx is done.
// The returned unlock func is idempotent.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := l.acquire(key)

	select {
	case e.ch <- struct{}{}:
		return l.unlocker(key, e), nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}
}

// tryLock acquires key without waiting.
func (l *Locker) tryLock(key string) (func(), bool) {
	e := l.acquire(key)

	select {
	case e.ch <- struct{}{}:
		return l.unlocker(key, e), true
	default:
		l.release(key, e)
		return nil, false
	}
}

// Len returns the number of keys currently held or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) unlocker(key string, e *entry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}
}

func (l *Locker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
