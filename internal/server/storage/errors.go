package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that record with this id does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrStoreUnavailable indicates that a single store operation could not complete
	// (driver error, timeout). The caller marks the affected record as failed.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreClosed indicates that the whole store is gone.
	// Batch operations abort when they see it.
	ErrStoreClosed = errors.New("store is closed")
)
