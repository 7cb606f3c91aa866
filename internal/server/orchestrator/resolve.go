package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/storage"
	"github.com/iudanet/recordsync/internal/validation"
)

// errStaleTarget запись из решения исчезла из удаленной реплики
var errStaleTarget = errors.New("record no longer exists in remote replica")

// Resolve applies explicit decisions for previously detected conflicts.
//
// Local overwrites the remote value, Remote replaces the local entry with the
// remote record, Both appends the local value to the remote version log.
// Ids without a resolution are left untouched in both replicas. The full
// updated local batch is returned so the caller can replace its working set.
func (s *Service) Resolve(ctx context.Context, req models.ResolutionRequest) (models.ResolveResult, error) {
	if err := s.ensureAvailable(ctx, "resolve"); err != nil {
		return models.ResolveResult{}, err
	}

	batch := req.LocalBatch()
	resolutions := req.Resolutions()

	localIndex := make(map[string]int, len(batch))
	for i, r := range batch {
		if r != nil {
			localIndex[r.ID] = i
		}
	}

	// Повторяющийся id в локальном батче неоднозначен: какую из копий
	// заменить, неизвестно, поэтому решения по нему не применяются
	duplicated := make(map[string]struct{})
	for _, id := range validation.DuplicateIDs(batch) {
		duplicated[id] = struct{}{}
	}

	failures := make([]*models.ItemError, len(resolutions))
	// Записи, которых не было в локальном батче, но которые принимаются из Remote
	adopted := make([]*models.Record, len(resolutions))

	groups := groupByID(len(resolutions), func(i int) string {
		return resolutions[i].ID
	})

	err := s.runGroups(ctx, groups, func(ctx context.Context, group []int) error {
		for _, i := range group {
			res := resolutions[i]

			if _, ok := duplicated[res.ID]; ok {
				failures[i] = &models.ItemError{
					ID:      res.ID,
					Kind:    models.KindInvalidRecord,
					Message: fmt.Sprintf("%v: %q appears more than once in the local batch", validation.ErrDuplicateID, res.ID),
				}
				continue
			}

			idx, hasLocal := localIndex[res.ID]
			var local *models.Record
			if hasLocal {
				local = batch[idx]
			}

			updated, failure, err := s.applyOne(ctx, res, local)
			if err != nil {
				return err
			}
			failures[i] = failure

			if updated == nil {
				continue
			}
			// Группы не пересекаются по id, поэтому индексы batch не пересекаются
			if hasLocal {
				batch[idx] = updated
			} else {
				adopted[i] = updated
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Resolve aborted", "error", err)
		return models.ResolveResult{}, err
	}

	for _, r := range adopted {
		if r != nil {
			batch = append(batch, r)
		}
	}

	result := models.ResolveResult{
		UpdatedLocal: batch,
		Failures:     collectFailures(failures),
	}

	s.logger.Info("Conflicts resolved",
		"resolutions", len(resolutions),
		"failures", len(result.Failures),
	)

	return result, nil
}

// applyOne применяет одно решение под блокировкой id.
// Возвращает новую локальную запись только для выбора Remote.
func (s *Service) applyOne(ctx context.Context, res models.Resolution, local *models.Record) (*models.Record, *models.ItemError, error) {
	if !res.Choice.Valid() {
		return nil, &models.ItemError{
			ID:      res.ID,
			Kind:    models.KindUnknownResolutionChoice,
			Message: fmt.Sprintf("unknown resolution choice %q", res.Choice),
		}, nil
	}

	if err := validation.ValidateRecordID(res.ID); err != nil {
		return nil, &models.ItemError{ID: res.ID, Kind: models.KindInvalidRecord, Message: err.Error()}, nil
	}

	if res.Choice != models.ChoiceRemote {
		if local == nil {
			return nil, &models.ItemError{
				ID:      res.ID,
				Kind:    models.KindInvalidRecord,
				Message: fmt.Sprintf("resolution %q requires the record in the local batch", res.Choice),
			}, nil
		}
		if err := validation.ValidateRecord(local); err != nil {
			return nil, &models.ItemError{ID: res.ID, Kind: models.KindInvalidRecord, Message: err.Error()}, nil
		}
	}

	var updated *models.Record

	err := s.withRecord(ctx, res.ID, func(ctx context.Context) error {
		remote, err := s.store.Get(ctx, res.ID)
		if err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				return errStaleTarget
			}
			return err
		}

		switch res.Choice {
		case models.ChoiceLocal:
			return s.keepLocal(ctx, local, remote)
		case models.ChoiceRemote:
			updated = s.keepRemote(local, remote)
			return nil
		default:
			return s.store.AppendVersion(ctx, res.ID, models.VersionEntry{
				Source:    models.SourceLocal,
				Value:     local.Value,
				Timestamp: local.UpdatedAt,
			})
		}
	})
	if err != nil {
		if errors.Is(err, errStaleTarget) {
			return nil, &models.ItemError{ID: res.ID, Kind: models.KindStaleResolutionTarget, Message: err.Error()}, nil
		}
		failure, fatal := storeFailure(res.ID, err)
		if failure != nil {
			s.logger.Warn("Resolution not applied", "record_id", res.ID, "choice", res.Choice, "error", err)
		}
		return nil, failure, fatal
	}

	s.logger.Debug("Resolution applied", "record_id", res.ID, "choice", res.Choice)

	return updated, nil, nil
}

// keepLocal перезаписывает удаленное значение локальным в обход правил timestamp.
// Журнал версий Remote сохраняется. Если значение не меняется, запись
// не трогается, чтобы не сдвигать updatedAt.
func (s *Service) keepLocal(ctx context.Context, local, remote *models.Record) error {
	if local.Value == remote.Value {
		return nil
	}

	next := remote.Clone()
	next.Value = local.Value
	next.UpdatedAt = local.UpdatedAt

	return s.store.Put(ctx, next)
}

// keepRemote возвращает удаленную запись как новую локальную.
// updatedAt сбрасывается на текущее время только если локальное значение меняется.
func (s *Service) keepRemote(local, remote *models.Record) *models.Record {
	next := remote.Clone()
	if local == nil || local.Value != remote.Value {
		next.UpdatedAt = clock.Millis(s.clock)
	}
	return next
}
