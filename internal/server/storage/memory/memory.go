// Package memory implements storage.RecordStore in process memory.
// Used by tests and by embedders that keep the remote replica in RAM.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/storage"
)

// Store хранит записи в map под RWMutex.
// Записи клонируются на входе и выходе, поэтому вызывающий код
// не может изменить состояние хранилища в обход Put/AppendVersion.
type Store struct {
	records map[string]*models.Record // map[id]record
	closed  bool
	mu      sync.RWMutex
}

var _ storage.RecordStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make(map[string]*models.Record),
	}
}

// Get возвращает копию записи
func (s *Store) Get(ctx context.Context, id string) (*models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, storage.ErrStoreClosed
	}

	record, ok := s.records[id]
	if !ok {
		return nil, storage.ErrRecordNotFound
	}

	return record.Clone(), nil
}

// Put создает или полностью заменяет запись
func (s *Store) Put(ctx context.Context, record *models.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStoreClosed
	}

	s.records[record.ID] = record.Clone()
	return nil
}

// AppendVersion добавляет версию в конец журнала существующей записи
func (s *Store) AppendVersion(ctx context.Context, id string, version models.VersionEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrStoreClosed
	}

	record, ok := s.records[id]
	if !ok {
		return storage.ErrRecordNotFound
	}

	s.records[id] = record.WithVersion(version)
	return nil
}

// Scan возвращает копии записей, id которых удовлетворяет match, по возрастанию id
func (s *Store) Scan(ctx context.Context, match func(id string) bool) ([]*models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, storage.ErrStoreClosed
	}

	result := make([]*models.Record, 0, len(s.records))
	for id, record := range s.records {
		if match(id) {
			result = append(result, record.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Ping reports ErrStoreClosed after Close.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return storage.ErrStoreClosed
	}
	return ctx.Err()
}

// Close marks the store closed. Data is dropped.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.records = make(map[string]*models.Record)
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
