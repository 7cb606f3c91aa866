package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/reconcile"
	"github.com/iudanet/recordsync/internal/server/storage"
	"github.com/iudanet/recordsync/internal/validation"
)

// Push applies every record of batch to the remote store using the shared
// reconciliation rules. Changes counts Adopt and Fork decisions.
func (s *Service) Push(ctx context.Context, batch []*models.Record) (models.BatchResult, error) {
	return s.reconcileBatch(ctx, "push", batch)
}

// Merge reconciles the full local batch into the remote store.
// It shares one decision table with Push.
func (s *Service) Merge(ctx context.Context, batch []*models.Record) (models.BatchResult, error) {
	return s.reconcileBatch(ctx, "merge", batch)
}

func (s *Service) reconcileBatch(ctx context.Context, op string, batch []*models.Record) (models.BatchResult, error) {
	if err := s.ensureAvailable(ctx, op); err != nil {
		return models.BatchResult{}, err
	}

	var changes atomic.Int64
	failures := make([]*models.ItemError, len(batch))

	groups := groupByID(len(batch), func(i int) string {
		if batch[i] == nil {
			return ""
		}
		return batch[i].ID
	})

	err := s.runGroups(ctx, groups, func(ctx context.Context, group []int) error {
		for _, i := range group {
			changed, failure, err := s.reconcileOne(ctx, batch[i])
			if err != nil {
				return err
			}
			failures[i] = failure
			if changed {
				changes.Add(1)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Batch aborted", "op", op, "error", err)
		return models.BatchResult{}, err
	}

	result := models.BatchResult{
		Changes:  int(changes.Load()),
		Failures: collectFailures(failures),
	}

	s.logger.Info("Batch reconciled",
		"op", op,
		"records", len(batch),
		"changes", result.Changes,
		"failures", len(result.Failures),
	)

	return result, nil
}

// reconcileOne согласует одну запись с удаленной репликой.
// Возвращает фатальную ошибку только при закрытом хранилище.
func (s *Service) reconcileOne(ctx context.Context, candidate *models.Record) (bool, *models.ItemError, error) {
	if err := validation.ValidateRecord(candidate); err != nil {
		id := ""
		if candidate != nil {
			id = candidate.ID
		}
		return false, &models.ItemError{ID: id, Kind: models.KindInvalidRecord, Message: err.Error()}, nil
	}

	var decision reconcile.Decision

	err := s.withRecord(ctx, candidate.ID, func(ctx context.Context) error {
		current, err := s.store.Get(ctx, candidate.ID)
		if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
			return err
		}

		// Все пути сервера получают кандидатов от локальной реплики
		decision = reconcile.Reconcile(candidate, current, models.SourceLocal)

		switch decision.Action {
		case reconcile.ActionAdopt:
			return s.store.Put(ctx, decision.Record)
		case reconcile.ActionFork:
			return s.store.AppendVersion(ctx, candidate.ID, *decision.Version)
		default:
			return nil
		}
	})
	if err != nil {
		failure, fatal := storeFailure(candidate.ID, err)
		if failure != nil {
			s.logger.Warn("Record not reconciled", "record_id", candidate.ID, "error", err)
		}
		return false, failure, fatal
	}

	s.logger.Debug("Record reconciled", "record_id", candidate.ID, "action", decision.Action.String())

	return decision.Changed(), nil, nil
}
