package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/storage"
)

// Get retrieves the current record by id together with its version log
// Returns ErrRecordNotFound if record doesn't exist
func (s *Storage) Get(ctx context.Context, id string) (*models.Record, error) {
	if s.closed.Load() {
		return nil, storage.ErrStoreClosed
	}

	var record *models.Record

	// Запись и ее версии читаются в одной транзакции
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			SELECT id, value, updated_at
			FROM records
			WHERE id = ?
		`

		r := &models.Record{}
		err := tx.QueryRowContext(ctx, query, id).Scan(
			&r.ID,
			&r.Value,
			&r.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrRecordNotFound
			}
			return unavailable("failed to get record", err)
		}

		versions, err := loadVersions(ctx, tx, id)
		if err != nil {
			return err
		}
		r.Versions = versions
		record = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Put creates or fully replaces the record, version log included
func (s *Storage) Put(ctx context.Context, record *models.Record) error {
	if s.closed.Load() {
		return storage.ErrStoreClosed
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO records (id, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, query, record.ID, record.Value, record.UpdatedAt); err != nil {
			return unavailable("failed to upsert record", err)
		}

		// Журнал версий заменяется целиком вместе с записью
		if _, err := tx.ExecContext(ctx, `DELETE FROM record_versions WHERE record_id = ?`, record.ID); err != nil {
			return unavailable("failed to reset versions", err)
		}

		for i, v := range record.Versions {
			if err := insertVersion(ctx, tx, record.ID, int64(i+1), v); err != nil {
				return err
			}
		}

		return nil
	})
}

// AppendVersion appends an entry to the version log of an existing record
// Returns ErrRecordNotFound if record doesn't exist
func (s *Storage) AppendVersion(ctx context.Context, id string, version models.VersionEntry) error {
	if s.closed.Load() {
		return storage.ErrStoreClosed
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM records WHERE id = ?`, id).Scan(&exists)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrRecordNotFound
			}
			return unavailable("failed to check record", err)
		}

		var seq int64
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM record_versions WHERE record_id = ?`, id,
		).Scan(&seq)
		if err != nil {
			return unavailable("failed to get next version seq", err)
		}

		return insertVersion(ctx, tx, id, seq, version)
	})
}

// Scan returns every record whose id satisfies match, ordered by id
func (s *Storage) Scan(ctx context.Context, match func(id string) bool) ([]*models.Record, error) {
	if s.closed.Load() {
		return nil, storage.ErrStoreClosed
	}

	records := []*models.Record{}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		byID, err := scanRecords(ctx, tx, match, &records)
		if err != nil || len(records) == 0 {
			return err
		}

		return attachVersions(ctx, tx, records, byID)
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// scanRecords читает записи без версий, отбирая их по match
func scanRecords(ctx context.Context, tx *sql.Tx, match func(id string) bool, out *[]*models.Record) (map[string]*models.Record, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, value, updated_at FROM records ORDER BY id`)
	if err != nil {
		return nil, unavailable("failed to query records", err)
	}
	defer rows.Close()

	byID := make(map[string]*models.Record)
	for rows.Next() {
		record := &models.Record{}
		if err := rows.Scan(&record.ID, &record.Value, &record.UpdatedAt); err != nil {
			return nil, unavailable("failed to scan record", err)
		}
		if !match(record.ID) {
			continue
		}
		*out = append(*out, record)
		byID[record.ID] = record
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("rows iteration error", err)
	}

	return byID, nil
}

// versionsBatchSize число id в одном IN (...) запросе версий.
// Держится ниже SQLITE_MAX_VARIABLE_NUMBER старых сборок (999).
var versionsBatchSize = 500

// attachVersions подгружает журналы только отобранных записей,
// пачками по versionsBatchSize id
func attachVersions(ctx context.Context, tx *sql.Tx, records []*models.Record, byID map[string]*models.Record) error {
	for start := 0; start < len(records); start += versionsBatchSize {
		end := min(start+versionsBatchSize, len(records))
		chunk := records[start:end]

		args := make([]any, len(chunk))
		for i, r := range chunk {
			args[i] = r.ID
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")

		rows, err := tx.QueryContext(ctx, `
			SELECT record_id, source, value, timestamp
			FROM record_versions
			WHERE record_id IN (`+placeholders+`)
			ORDER BY record_id, seq
		`, args...)
		if err != nil {
			return unavailable("failed to query versions", err)
		}

		for rows.Next() {
			var recordID string
			var v models.VersionEntry
			if err := rows.Scan(&recordID, &v.Source, &v.Value, &v.Timestamp); err != nil {
				_ = rows.Close()
				return unavailable("failed to scan version", err)
			}
			if record, ok := byID[recordID]; ok {
				record.Versions = append(record.Versions, v)
			}
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return unavailable("versions iteration error", err)
		}
	}

	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// loadVersions читает журнал версий записи в порядке вставки
func loadVersions(ctx context.Context, q querier, id string) ([]models.VersionEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT source, value, timestamp
		FROM record_versions
		WHERE record_id = ?
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, unavailable("failed to query versions", err)
	}
	defer rows.Close()

	var versions []models.VersionEntry
	for rows.Next() {
		var v models.VersionEntry
		if err := rows.Scan(&v.Source, &v.Value, &v.Timestamp); err != nil {
			return nil, unavailable("failed to scan version", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("versions iteration error", err)
	}

	return versions, nil
}

func insertVersion(ctx context.Context, tx *sql.Tx, id string, seq int64, v models.VersionEntry) error {
	query := `
		INSERT INTO record_versions (record_id, seq, source, value, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, id, seq, string(v.Source), v.Value, v.Timestamp); err != nil {
		return unavailable("failed to insert version", err)
	}
	return nil
}

// withTx выполняет fn в транзакции, откатывая ее при ошибке
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("failed to begin transaction", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return unavailable("failed to commit transaction", err)
	}

	return nil
}

// unavailable оборачивает ошибку драйвера в ErrStoreUnavailable,
// сохраняя исходную ошибку (например, context.DeadlineExceeded) для errors.Is
func unavailable(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, storage.ErrStoreUnavailable, err)
}
