package storage

import (
	"context"

	"github.com/iudanet/recordsync/internal/models"
)

// RecordStorage defines interface for the local working set of records
type RecordStorage interface {
	// SaveRecord stores or replaces a record
	SaveRecord(ctx context.Context, record *models.Record) error

	// GetRecord retrieves a record by ID
	// Returns ErrRecordNotFound if record doesn't exist
	GetRecord(ctx context.Context, id string) (*models.Record, error)

	// ListRecords returns all records ordered by ID
	ListRecords(ctx context.Context) ([]*models.Record, error)

	// ReplaceRecords atomically replaces the whole working set
	// Used after resolve, when the server returns the full updated local set
	ReplaceRecords(ctx context.Context, records []*models.Record) error
}
