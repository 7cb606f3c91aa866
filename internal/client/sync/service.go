// Package sync drives the client side of replica reconciliation: it keeps the
// local working set in BoltDB and exchanges it with the sync server.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/recordsync/internal/client/storage"
	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/reconcile"
	"github.com/iudanet/recordsync/internal/validation"
	"github.com/iudanet/recordsync/pkg/api"
)

var (
	// ErrNothingToResolve resolve вызван без решений
	ErrNothingToResolve = errors.New("no resolutions given")
	// ErrNoPendingConflict по записи нет отложенного конфликта
	ErrNoPendingConflict = errors.New("no pending conflict")
	// ErrStaleConflict локальное значение изменилось после checkConflicts
	ErrStaleConflict = errors.New("conflict is stale, run check again")
)

//go:generate moq -out apiclient_mock.go . APIClient

// APIClient HTTP клиент сервера синхронизации
type APIClient interface {
	Push(ctx context.Context, data []api.Record) (*api.BatchResponse, error)
	Merge(ctx context.Context, data []api.Record) (*api.BatchResponse, error)
	Pull(ctx context.Context, localIDs []string) ([]api.Record, error)
	CheckConflicts(ctx context.Context, data []api.Record) (*api.ConflictsResponse, error)
	Resolve(ctx context.Context, req api.ResolveRequest) (*api.ResolveResponse, error)
}

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// Add создает запись; пустой id заменяется на UUID
	Add(ctx context.Context, id, value string) (*models.Record, error)

	// Edit меняет значение записи. Возвращает false, если значение не изменилось
	Edit(ctx context.Context, id, value string) (*models.Record, bool, error)

	// List возвращает локальный рабочий набор
	List(ctx context.Context) ([]*models.Record, error)

	// Push отправляет рабочий набор на сервер
	Push(ctx context.Context) (models.BatchResult, error)

	// Merge отправляет рабочий набор на сервер через merge
	Merge(ctx context.Context) (models.BatchResult, error)

	// Pull загружает удаленные записи, которых нет локально
	Pull(ctx context.Context) ([]*models.Record, error)

	// CheckConflicts запрашивает расхождения и сохраняет их как отложенные
	CheckConflicts(ctx context.Context) (models.ConflictResult, error)

	// PendingConflicts возвращает конфликты, ожидающие решения
	PendingConflicts(ctx context.Context) ([]models.ConflictReport, error)

	// Resolve применяет решения и заменяет рабочий набор ответом сервера
	Resolve(ctx context.Context, resolutions []models.Resolution) (models.ResolveResult, error)

	// Status возвращает сводку по локальной реплике
	Status(ctx context.Context) (*Status, error)
}

// Status сводка по локальной реплике
type Status struct {
	Records          int   `json:"records" yaml:"records"`
	PendingConflicts int   `json:"pending_conflicts" yaml:"pending_conflicts"`
	LastSync         int64 `json:"last_sync" yaml:"last_sync"` // unix millis, 0 если синхронизации не было
}

type service struct {
	apiClient APIClient
	store     storage.Storage
	clock     clock.Clock
	logger    *slog.Logger
}

// NewService creates a new sync service
func NewService(apiClient APIClient, store storage.Storage, clk clock.Clock, logger *slog.Logger) Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &service{
		apiClient: apiClient,
		store:     store,
		clock:     clk,
		logger:    logger,
	}
}

func (s *service) Add(ctx context.Context, id, value string) (*models.Record, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := validation.ValidateRecordID(id); err != nil {
		return nil, err
	}

	if _, err := s.store.GetRecord(ctx, id); err == nil {
		return nil, fmt.Errorf("record %q already exists", id)
	} else if !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check record: %w", err)
	}

	record := &models.Record{
		ID:        id,
		Value:     value,
		UpdatedAt: clock.Millis(s.clock),
	}
	if err := s.store.SaveRecord(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Debug("Record added", "record_id", id)
	return record, nil
}

func (s *service) Edit(ctx context.Context, id, value string) (*models.Record, bool, error) {
	record, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return nil, false, err
	}

	// Запись без изменения значения не трогается
	if record.Value == value {
		return record, false, nil
	}

	// updatedAt строго растет, даже если часы отстают от прошлой правки
	now := clock.Millis(s.clock)
	if now <= record.UpdatedAt {
		now = record.UpdatedAt + 1
	}
	record.Value = value
	record.UpdatedAt = now

	if err := s.store.SaveRecord(ctx, record); err != nil {
		return nil, false, err
	}

	s.logger.Debug("Record edited", "record_id", id, "updated_at", now)
	return record, true, nil
}

func (s *service) List(ctx context.Context) ([]*models.Record, error) {
	return s.store.ListRecords(ctx)
}

func (s *service) Push(ctx context.Context) (models.BatchResult, error) {
	return s.sendBatch(ctx, "push", s.apiClient.Push)
}

func (s *service) Merge(ctx context.Context) (models.BatchResult, error) {
	return s.sendBatch(ctx, "merge", s.apiClient.Merge)
}

type batchCall func(ctx context.Context, data []api.Record) (*api.BatchResponse, error)

func (s *service) sendBatch(ctx context.Context, op string, call batchCall) (models.BatchResult, error) {
	local, err := s.store.ListRecords(ctx)
	if err != nil {
		return models.BatchResult{}, fmt.Errorf("failed to get local records: %w", err)
	}

	s.logger.Info("Sending local records", "op", op, "count", len(local))

	resp, err := call(ctx, api.FromRecords(local))
	if err != nil {
		return models.BatchResult{}, err
	}

	result := models.BatchResult{
		Changes:  resp.Changes,
		Failures: api.ToItemErrors(resp.Failures),
	}

	s.logger.Info("Batch completed", "op", op, "changes", result.Changes, "failures", len(result.Failures))
	s.markSynced(ctx)

	return result, nil
}

func (s *service) Pull(ctx context.Context) ([]*models.Record, error) {
	local, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get local records: %w", err)
	}

	remote, err := s.apiClient.Pull(ctx, models.IDs(local))
	if err != nil {
		return nil, err
	}

	records, invalid := api.ToModels(remote)
	for _, f := range invalid {
		s.logger.Warn("Skipping invalid remote record", "record_id", f.ID, "error", f.Message)
	}

	for _, r := range records {
		if err := s.store.SaveRecord(ctx, r); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Pull completed", "received", len(remote), "saved", len(records))
	s.markSynced(ctx)

	return records, nil
}

func (s *service) CheckConflicts(ctx context.Context) (models.ConflictResult, error) {
	local, err := s.store.ListRecords(ctx)
	if err != nil {
		return models.ConflictResult{}, fmt.Errorf("failed to get local records: %w", err)
	}

	resp, err := s.apiClient.CheckConflicts(ctx, api.FromRecords(local))
	if err != nil {
		return models.ConflictResult{}, err
	}

	conflicts := make([]models.ConflictReport, 0, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		conflicts = append(conflicts, c.ToModel())
	}

	if err := s.store.SaveConflicts(ctx, conflicts); err != nil {
		return models.ConflictResult{}, err
	}

	s.logger.Info("Conflicts checked", "conflicts", len(conflicts))

	return models.ConflictResult{
		Conflicts: conflicts,
		Failures:  api.ToItemErrors(resp.Failures),
	}, nil
}

func (s *service) PendingConflicts(ctx context.Context) ([]models.ConflictReport, error) {
	return s.store.ListConflicts(ctx)
}

func (s *service) Resolve(ctx context.Context, resolutions []models.Resolution) (models.ResolveResult, error) {
	if len(resolutions) == 0 {
		return models.ResolveResult{}, ErrNothingToResolve
	}

	pending, err := s.store.ListConflicts(ctx)
	if err != nil {
		return models.ResolveResult{}, err
	}
	pendingByID := make(map[string]models.ConflictReport, len(pending))
	for _, c := range pending {
		pendingByID[c.ID] = c
	}

	local, err := s.store.ListRecords(ctx)
	if err != nil {
		return models.ResolveResult{}, fmt.Errorf("failed to get local records: %w", err)
	}
	localByID := make(map[string]*models.Record, len(local))
	for _, r := range local {
		localByID[r.ID] = r
	}

	builder := models.NewResolutionBuilder().WithLocalBatch(local)
	var unknown, stale []string
	for _, res := range resolutions {
		if !res.Choice.Valid() {
			return models.ResolveResult{}, fmt.Errorf("record %q: unknown resolution choice %q", res.ID, res.Choice)
		}

		conflict, ok := pendingByID[res.ID]
		if !ok {
			unknown = append(unknown, res.ID)
			continue
		}

		// Решение относится к паре значений, которую видел пользователь
		current, ok := localByID[res.ID]
		if !ok || reconcile.Digest(res.ID, current.Value, conflict.RemoteValue) != conflict.Digest {
			stale = append(stale, res.ID)
			continue
		}

		builder.Choose(res.ID, res.Choice)
	}

	if len(unknown) > 0 {
		return models.ResolveResult{}, fmt.Errorf("%w: %s", ErrNoPendingConflict, strings.Join(unknown, ", "))
	}
	if len(stale) > 0 {
		return models.ResolveResult{}, fmt.Errorf("%w: %s", ErrStaleConflict, strings.Join(stale, ", "))
	}

	req := builder.Build()
	resp, err := s.apiClient.Resolve(ctx, api.FromResolutionRequest(req))
	if err != nil {
		return models.ResolveResult{}, err
	}

	updated, err := api.ToModelsStrict(resp.UpdatedData)
	if err != nil {
		return models.ResolveResult{}, fmt.Errorf("invalid resolve response: %w", err)
	}

	// Сервер возвращает полный локальный набор, он заменяет текущий целиком
	if err := s.store.ReplaceRecords(ctx, updated); err != nil {
		return models.ResolveResult{}, err
	}

	failures := api.ToItemErrors(resp.Failures)
	failed := make(map[string]struct{}, len(failures))
	for _, f := range failures {
		failed[f.ID] = struct{}{}
	}

	resolved := make([]string, 0, req.Len())
	for _, res := range req.Resolutions() {
		if _, ok := failed[res.ID]; !ok {
			resolved = append(resolved, res.ID)
		}
	}
	if err := s.store.DeleteConflicts(ctx, resolved); err != nil {
		return models.ResolveResult{}, err
	}

	s.logger.Info("Conflicts resolved", "resolved", len(resolved), "failures", len(failures))
	s.markSynced(ctx)

	return models.ResolveResult{
		UpdatedLocal: updated,
		Failures:     failures,
	}, nil
}

func (s *service) Status(ctx context.Context) (*Status, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.store.ListConflicts(ctx)
	if err != nil {
		return nil, err
	}

	lastSync, err := s.store.GetLastSyncTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{
		Records:          len(records),
		PendingConflicts: len(conflicts),
		LastSync:         lastSync,
	}, nil
}

// markSynced запоминает время успешного обмена с сервером
func (s *service) markSynced(ctx context.Context) {
	if err := s.store.SaveLastSyncTimestamp(ctx, clock.Millis(s.clock)); err != nil {
		// Не прерываем синхронизацию из-за ошибки сохранения timestamp
		s.logger.Warn("Failed to save last sync timestamp", "error", err)
	}
}
