// Package orchestrator runs push, pull, merge, conflict checks and resolutions
// against the remote record store.
//
// Every batch is processed per record: distinct ids run in parallel, writes to
// the same id are serialized by a per-id lock around read → decide → write.
// A failing record is reported in the result and never aborts the batch;
// only a store-wide failure does.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/keylock"
	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/storage"
)

const (
	// DefaultOpTimeout ограничение на одну операцию над записью
	DefaultOpTimeout = 5 * time.Second
	// DefaultWorkers число записей, обрабатываемых параллельно
	DefaultWorkers = 8
)

// ErrBatchAborted returned when the whole batch is aborted because the store
// cannot serve requests at all. Wraps the underlying store error.
var ErrBatchAborted = errors.New("sync batch aborted")

// Options настройки оркестратора. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	Clock     clock.Clock
	Logger    *slog.Logger
	OpTimeout time.Duration
	Workers   int
}

// Service оркестратор синхронизации поверх удаленного хранилища
type Service struct {
	store     storage.RecordStore
	locks     *keylock.Locker
	clock     clock.Clock
	logger    *slog.Logger
	opTimeout time.Duration
	workers   int
}

// New creates a new orchestrator over store
func New(store storage.RecordStore, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOpTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	return &Service{
		store:     store,
		locks:     keylock.New(),
		clock:     opts.Clock,
		logger:    opts.Logger,
		opTimeout: opts.OpTimeout,
		workers:   opts.Workers,
	}
}

// Ping checks that the underlying store can serve requests
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	return s.store.Ping(ctx)
}

// ensureAvailable проверяет хранилище перед батчем. Недоступное хранилище
// прерывает весь батч одной ошибкой.
func (s *Service) ensureAvailable(ctx context.Context, op string) error {
	if err := s.Ping(ctx); err != nil {
		s.logger.Error("Store unavailable, batch aborted", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrBatchAborted, err)
	}
	return nil
}

// groupByID раскладывает индексы элементов батча по id с сохранением порядка.
// Элементы с одним id обрабатываются последовательно в одной задаче,
// поэтому порядок внутри батча для них детерминирован.
func groupByID(n int, idOf func(i int) string) [][]int {
	index := make(map[string]int, n)
	groups := make([][]int, 0, n)

	for i := 0; i < n; i++ {
		id := idOf(i)
		g, ok := index[id]
		if !ok {
			g = len(groups)
			index[id] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}

	return groups
}

// runGroups выполняет fn для каждой группы с ограничением параллелизма.
// Ошибка fn считается фатальной и отменяет оставшиеся группы.
func (s *Service) runGroups(ctx context.Context, groups [][]int, fn func(ctx context.Context, group []int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, group := range groups {
		g.Go(func() error {
			return fn(gctx, group)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Клиент ушел или истек общий дедлайн запроса
	return ctx.Err()
}

// withRecord выполняет fn под эксклюзивной блокировкой id с таймаутом операции
func (s *Service) withRecord(ctx context.Context, id string, fn func(ctx context.Context) error) error {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	unlock, err := s.locks.Lock(opCtx, id)
	if err != nil {
		return fmt.Errorf("wait for record lock: %w", err)
	}
	defer unlock()

	return fn(opCtx)
}

// storeFailure classifies a store error for a single record.
// A closed store is fatal for the batch, anything else fails only this record.
func storeFailure(id string, err error) (*models.ItemError, error) {
	if errors.Is(err, storage.ErrStoreClosed) {
		return nil, fmt.Errorf("%w: %w", ErrBatchAborted, err)
	}

	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "operation timed out: " + msg
	}

	return &models.ItemError{
		ID:      id,
		Kind:    models.KindStoreUnavailable,
		Message: msg,
	}, nil
}

// collectFailures разворачивает ошибки по индексам в срез в порядке батча
func collectFailures(slots []*models.ItemError) []models.ItemError {
	var failures []models.ItemError
	for _, f := range slots {
		if f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}
