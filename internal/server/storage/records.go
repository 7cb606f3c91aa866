package storage

import (
	"context"

	"github.com/iudanet/recordsync/internal/models"
)

//go:generate moq -out recordstore_mock.go . RecordStore

// RecordStore defines interface for keyed record persistence.
// Every method is atomic per id: readers never see a partially written record.
type RecordStore interface {
	// Get retrieves the current record by id
	// Returns ErrRecordNotFound if record doesn't exist
	Get(ctx context.Context, id string) (*models.Record, error)

	// Put creates or fully replaces the record stored under record.ID,
	// including its version log
	Put(ctx context.Context, record *models.Record) error

	// AppendVersion appends an entry to the version log of an existing record
	// without touching its value or updatedAt
	// Returns ErrRecordNotFound if record doesn't exist
	AppendVersion(ctx context.Context, id string, version models.VersionEntry) error

	// Scan returns every record whose id satisfies match, ordered by id
	// Returns empty slice if nothing matches
	Scan(ctx context.Context, match func(id string) bool) ([]*models.Record, error)

	// Ping checks that the store can serve requests
	Ping(ctx context.Context) error

	// Close releases the underlying resources
	Close() error
}

// NotIn returns a Scan predicate matching ids absent from ids.
func NotIn(ids []string) func(string) bool {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id string) bool {
		_, ok := set[id]
		return !ok
	}
}

// All is a Scan predicate matching every id.
func All(string) bool { return true }
