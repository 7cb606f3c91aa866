package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that record was not found in the working set
	ErrRecordNotFound = errors.New("record not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
