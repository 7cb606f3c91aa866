package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/recordsync/internal/models"
)

// SaveConflicts replaces pending conflicts with the given set
func (s *Storage) SaveConflicts(ctx context.Context, conflicts []models.ConflictReport) error {
	err := s.update(ctx, func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketConflicts); err != nil {
			return fmt.Errorf("failed to drop conflicts bucket: %w", err)
		}
		b, err := tx.CreateBucket(bucketConflicts)
		if err != nil {
			return fmt.Errorf("failed to create conflicts bucket: %w", err)
		}

		for _, c := range conflicts {
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("failed to marshal conflict %q: %w", c.ID, err)
			}
			if err := b.Put([]byte(c.ID), data); err != nil {
				return fmt.Errorf("failed to save conflict %q: %w", c.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save conflicts: %w", err)
	}

	return nil
}

// ListConflicts returns pending conflicts ordered by record ID
func (s *Storage) ListConflicts(ctx context.Context) ([]models.ConflictReport, error) {
	conflicts := make([]models.ConflictReport, 0)

	err := s.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketConflicts)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var c models.ConflictReport
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("failed to unmarshal conflict %q: %w", k, err)
			}
			conflicts = append(conflicts, c)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	return conflicts, nil
}

// DeleteConflicts removes resolved conflicts
func (s *Storage) DeleteConflicts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketConflicts)
		if err != nil {
			return err
		}

		// Удаление отсутствующего ключа в BoltDB не является ошибкой
		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to delete conflict %q: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete conflicts: %w", err)
	}

	return nil
}
