package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/reconcile"
	"github.com/iudanet/recordsync/internal/server/storage"
	"github.com/iudanet/recordsync/internal/validation"
)

// Pull returns every remote record whose id is not in localIDs.
// Read-only: no per-id locking beyond the store's own atomicity.
func (s *Service) Pull(ctx context.Context, localIDs []string) ([]*models.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	records, err := s.store.Scan(ctx, storage.NotIn(localIDs))
	if err != nil {
		s.logger.Error("Pull failed", "error", err)
		return nil, fmt.Errorf("pull: %w: %w", ErrBatchAborted, err)
	}

	s.logger.Info("Pull completed", "known", len(localIDs), "returned", len(records))

	return records, nil
}

// CheckConflicts reports every candidate whose value differs from the remote
// record with the same id. Timestamps are never compared.
func (s *Service) CheckConflicts(ctx context.Context, batch []*models.Record) (models.ConflictResult, error) {
	if err := s.ensureAvailable(ctx, "checkConflicts"); err != nil {
		return models.ConflictResult{}, err
	}

	reports := make([]*models.ConflictReport, len(batch))
	failures := make([]*models.ItemError, len(batch))

	groups := make([][]int, len(batch))
	for i := range batch {
		groups[i] = []int{i}
	}

	err := s.runGroups(ctx, groups, func(ctx context.Context, group []int) error {
		i := group[0]
		candidate := batch[i]

		if err := validation.ValidateRecord(candidate); err != nil {
			id := ""
			if candidate != nil {
				id = candidate.ID
			}
			failures[i] = &models.ItemError{ID: id, Kind: models.KindInvalidRecord, Message: err.Error()}
			return nil
		}

		opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
		defer cancel()

		current, err := s.store.Get(opCtx, candidate.ID)
		switch {
		case errors.Is(err, storage.ErrRecordNotFound):
			return nil
		case err != nil:
			failure, fatal := storeFailure(candidate.ID, err)
			failures[i] = failure
			return fatal
		}

		if report, ok := reconcile.Detect(candidate, current); ok {
			reports[i] = &report
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Conflict check aborted", "error", err)
		return models.ConflictResult{}, err
	}

	result := models.ConflictResult{
		Conflicts: make([]models.ConflictReport, 0),
		Failures:  collectFailures(failures),
	}
	for _, r := range reports {
		if r != nil {
			result.Conflicts = append(result.Conflicts, *r)
		}
	}

	s.logger.Info("Conflicts checked",
		"records", len(batch),
		"conflicts", len(result.Conflicts),
		"failures", len(result.Failures),
	)

	return result, nil
}
