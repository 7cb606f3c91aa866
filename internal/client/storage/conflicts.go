package storage

import (
	"context"

	"github.com/iudanet/recordsync/internal/models"
)

// ConflictStorage defines interface for conflicts awaiting a user decision
type ConflictStorage interface {
	// SaveConflicts replaces the pending set with conflicts from the latest check
	SaveConflicts(ctx context.Context, conflicts []models.ConflictReport) error

	// ListConflicts returns pending conflicts ordered by record ID
	ListConflicts(ctx context.Context) ([]models.ConflictReport, error)

	// DeleteConflicts removes resolved conflicts; unknown IDs are ignored
	DeleteConflicts(ctx context.Context, ids []string) error
}
