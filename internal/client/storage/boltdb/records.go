package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/recordsync/internal/client/storage"
	"github.com/iudanet/recordsync/internal/models"
)

// SaveRecord stores or replaces a record in BoltDB
func (s *Storage) SaveRecord(ctx context.Context, record *models.Record) error {
	// Сериализуем запись в JSON
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.update(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketRecords)
		if err != nil {
			return err
		}

		// Сохраняем по ключу ID
		if err := b.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save record %q: %w", record.ID, err)
	}

	return nil
}

// GetRecord retrieves a record by ID
func (s *Storage) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	var record *models.Record

	err := s.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketRecords)
		if err != nil {
			return err
		}

		data := b.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		// Десериализуем
		record = &models.Record{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords returns all records ordered by ID
func (s *Storage) ListRecords(ctx context.Context) ([]*models.Record, error) {
	records := make([]*models.Record, 0)

	// Курсор BoltDB обходит ключи в порядке байтов
	err := s.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketRecords)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var record models.Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record %q: %w", k, err)
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// ReplaceRecords atomically replaces the whole working set
func (s *Storage) ReplaceRecords(ctx context.Context, records []*models.Record) error {
	err := s.update(ctx, func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketRecords); err != nil {
			return fmt.Errorf("failed to drop records bucket: %w", err)
		}
		b, err := tx.CreateBucket(bucketRecords)
		if err != nil {
			return fmt.Errorf("failed to create records bucket: %w", err)
		}

		for _, record := range records {
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal record %q: %w", record.ID, err)
			}
			if err := b.Put([]byte(record.ID), data); err != nil {
				return fmt.Errorf("failed to save record %q: %w", record.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace records: %w", err)
	}

	return nil
}
