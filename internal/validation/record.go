package validation

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/iudanet/recordsync/internal/models"
)

// MaxRecordIDLen максимальная длина идентификатора записи в байтах
const MaxRecordIDLen = 256

var (
	// ErrMissingID запись без идентификатора
	ErrMissingID = errors.New("record id cannot be empty")
	// ErrInvalidID идентификатор не проходит проверку формата
	ErrInvalidID = errors.New("invalid record id")
	// ErrMissingTimestamp запись без updatedAt
	ErrMissingTimestamp = errors.New("record updatedAt must be a positive unix millis timestamp")
	// ErrMissingValue запись пришла без поля value
	ErrMissingValue = errors.New("record value is missing")
	// ErrDuplicateID в наборе несколько записей с одним id
	ErrDuplicateID = errors.New("duplicate record id")
)

// ValidateRecordID проверяет формат идентификатора
// Непустой, не длиннее MaxRecordIDLen байт, без управляющих символов
func ValidateRecordID(id string) error {
	if id == "" {
		return ErrMissingID
	}

	if len(id) > MaxRecordIDLen {
		return fmt.Errorf("%w: must not exceed %d bytes", ErrInvalidID, MaxRecordIDLen)
	}

	for _, r := range id {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return fmt.Errorf("%w: contains control or invalid characters", ErrInvalidID)
		}
	}

	return nil
}

// ValidateRecord проверяет запись перед согласованием.
// Наличие value проверяется на границе API (см. pkg/api), здесь value
// всегда присутствует, пустая строка является допустимым значением.
func ValidateRecord(r *models.Record) error {
	if r == nil {
		return ErrMissingID
	}

	if err := ValidateRecordID(r.ID); err != nil {
		return err
	}

	if r.UpdatedAt <= 0 {
		return ErrMissingTimestamp
	}

	return nil
}

// DuplicateIDs returns the ids that occur more than once in records,
// in order of their second occurrence. Nil entries are skipped.
func DuplicateIDs(records []*models.Record) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		if r == nil {
			continue
		}
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}

// ValidateUniqueIDs проверяет, что набор является множеством по id
func ValidateUniqueIDs(records []*models.Record) error {
	dups := DuplicateIDs(records)
	if len(dups) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrDuplicateID, dups)
}
