// Package api describes the JSON wire format shared by the sync server and client.
package api

import (
	"fmt"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/validation"
)

// Record представляет запись на проводе.
// Value передается указателем: отсутствующее поле отличается от пустой строки.
type Record struct {
	Value     *string        `json:"value"`
	ID        string         `json:"id"`
	Versions  []VersionEntry `json:"versions,omitempty"`
	UpdatedAt int64          `json:"updatedAt"` // unix millis
}

// VersionEntry сохраненное альтернативное значение записи
type VersionEntry struct {
	Source    string `json:"source"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// ItemError ошибка обработки одной записи батча
type ItemError struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BatchRequest тело запросов push, merge и checkConflicts
type BatchRequest struct {
	Data []Record `json:"data"`
}

// BatchResponse ответ на push и merge
type BatchResponse struct {
	Message  string      `json:"message"`
	Failures []ItemError `json:"failures,omitempty"`
	Changes  int         `json:"changes"`
}

// PullRequest запрос записей, которых еще нет в локальной реплике
type PullRequest struct {
	LocalIDs []string `json:"localIds"`
}

// Conflict расхождение значения записи между репликами.
// CloudValue и CloudUpdatedAt дублируют Remote* для старых клиентов.
type Conflict struct {
	ID              string `json:"id"`
	LocalValue      string `json:"localValue"`
	RemoteValue     string `json:"remoteValue"`
	CloudValue      string `json:"cloudValue"`
	Digest          string `json:"digest"`
	LocalUpdatedAt  int64  `json:"localUpdatedAt"`
	RemoteUpdatedAt int64  `json:"remoteUpdatedAt"`
	CloudUpdatedAt  int64  `json:"cloudUpdatedAt"`
}

// ConflictsResponse ответ на checkConflicts
type ConflictsResponse struct {
	Conflicts []Conflict  `json:"conflicts"`
	Failures  []ItemError `json:"failures,omitempty"`
}

// Resolution решение по одной записи: local, remote (cloud) или both
type Resolution struct {
	ID         string `json:"id"`
	Resolution string `json:"resolution"`
}

// ResolveRequest решения вместе с локальным рабочим набором
type ResolveRequest struct {
	Resolutions []Resolution `json:"resolutions"`
	LocalData   []Record     `json:"localData"`
}

// ResolveResponse полный обновленный локальный набор
type ResolveResponse struct {
	Message     string      `json:"message"`
	UpdatedData []Record    `json:"updatedData"`
	Failures    []ItemError `json:"failures,omitempty"`
}

// FromRecord converts a domain record to its wire form.
func FromRecord(r *models.Record) Record {
	value := r.Value
	out := Record{
		ID:        r.ID,
		Value:     &value,
		UpdatedAt: r.UpdatedAt,
	}

	if len(r.Versions) > 0 {
		out.Versions = make([]VersionEntry, 0, len(r.Versions))
		for _, v := range r.Versions {
			out.Versions = append(out.Versions, VersionEntry{
				Source:    string(v.Source),
				Value:     v.Value,
				Timestamp: v.Timestamp,
			})
		}
	}

	return out
}

// FromRecords converts a slice of domain records. Never returns nil.
func FromRecords(records []*models.Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

// ToModel converts a wire record to the domain form.
// Returns validation.ErrMissingValue when the value field was absent.
func (r Record) ToModel() (*models.Record, error) {
	if r.Value == nil {
		return nil, validation.ErrMissingValue
	}

	out := &models.Record{
		ID:        r.ID,
		Value:     *r.Value,
		UpdatedAt: r.UpdatedAt,
	}

	for _, v := range r.Versions {
		out.Versions = append(out.Versions, models.VersionEntry{
			Source:    models.Source(v.Source),
			Value:     v.Value,
			Timestamp: v.Timestamp,
		})
	}

	return out, nil
}

// ToModels converts wire records, reporting records without a value as
// INVALID_RECORD failures instead of passing them on.
func ToModels(records []Record) ([]*models.Record, []models.ItemError) {
	out := make([]*models.Record, 0, len(records))
	var failures []models.ItemError

	for _, r := range records {
		m, err := r.ToModel()
		if err != nil {
			failures = append(failures, models.ItemError{
				ID:      r.ID,
				Kind:    models.KindInvalidRecord,
				Message: err.Error(),
			})
			continue
		}
		out = append(out, m)
	}

	return out, failures
}

// ToModelsStrict converts wire records and fails on the first invalid one.
// The result is a set by id: a repeated id is an error too.
func ToModelsStrict(records []Record) ([]*models.Record, error) {
	out := make([]*models.Record, 0, len(records))
	for i, r := range records {
		m, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.ID, err)
		}
		out = append(out, m)
	}
	if err := validation.ValidateUniqueIDs(out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromItemErrors converts domain failures to the wire form.
func FromItemErrors(failures []models.ItemError) []ItemError {
	if len(failures) == 0 {
		return nil
	}

	out := make([]ItemError, 0, len(failures))
	for _, f := range failures {
		out = append(out, ItemError{ID: f.ID, Kind: string(f.Kind), Message: f.Message})
	}
	return out
}

// ToItemErrors converts wire failures to the domain form.
func ToItemErrors(failures []ItemError) []models.ItemError {
	if len(failures) == 0 {
		return nil
	}

	out := make([]models.ItemError, 0, len(failures))
	for _, f := range failures {
		out = append(out, models.ItemError{ID: f.ID, Kind: models.ErrorKind(f.Kind), Message: f.Message})
	}
	return out
}

// FromConflict converts a conflict report to the wire form.
func FromConflict(c models.ConflictReport) Conflict {
	return Conflict{
		ID:              c.ID,
		LocalValue:      c.LocalValue,
		RemoteValue:     c.RemoteValue,
		CloudValue:      c.RemoteValue,
		Digest:          c.Digest,
		LocalUpdatedAt:  c.LocalUpdatedAt,
		RemoteUpdatedAt: c.RemoteUpdatedAt,
		CloudUpdatedAt:  c.RemoteUpdatedAt,
	}
}

// ToModel converts a wire conflict to the domain form.
// Responses from older servers carry only the cloud* fields.
func (c Conflict) ToModel() models.ConflictReport {
	remoteValue, remoteUpdatedAt := c.RemoteValue, c.RemoteUpdatedAt
	if remoteValue == "" && remoteUpdatedAt == 0 {
		remoteValue, remoteUpdatedAt = c.CloudValue, c.CloudUpdatedAt
	}

	return models.ConflictReport{
		ID:              c.ID,
		LocalValue:      c.LocalValue,
		RemoteValue:     remoteValue,
		Digest:          c.Digest,
		LocalUpdatedAt:  c.LocalUpdatedAt,
		RemoteUpdatedAt: remoteUpdatedAt,
	}
}

// FromResolutionRequest converts a built resolution request to the wire form.
func FromResolutionRequest(req models.ResolutionRequest) ResolveRequest {
	resolutions := make([]Resolution, 0, req.Len())
	for _, r := range req.Resolutions() {
		resolutions = append(resolutions, Resolution{ID: r.ID, Resolution: string(r.Choice)})
	}

	return ResolveRequest{
		Resolutions: resolutions,
		LocalData:   FromRecords(req.LocalBatch()),
	}
}
