// Package reconcile contains the per-record decision rules shared by push and merge.
//
// The functions here are pure: they never touch a store and never read the
// clock. Callers hold the per-id lock around read → Reconcile → write.
package reconcile

import (
	"github.com/iudanet/recordsync/internal/models"
)

// Action тип решения по записи
type Action int

const (
	// ActionAdopt кандидат становится текущей записью
	ActionAdopt Action = iota + 1
	// ActionIgnore текущая запись остается без изменений
	ActionIgnore
	// ActionFork текущая запись остается, значение кандидата уходит в Versions
	ActionFork
)

func (a Action) String() string {
	switch a {
	case ActionAdopt:
		return "adopt"
	case ActionIgnore:
		return "ignore"
	case ActionFork:
		return "fork"
	default:
		return "unknown"
	}
}

// Decision результат согласования одной записи.
// Для Adopt заполнено Record (полная запись для Put),
// для Fork заполнено Version (запись для AppendVersion), Record содержит
// ожидаемое состояние после добавления версии.
type Decision struct {
	Record  *models.Record
	Version *models.VersionEntry
	Action  Action
}

// Changed reports whether the decision counts as a change for push/merge.
func (d Decision) Changed() bool {
	return d.Action == ActionAdopt || d.Action == ActionFork
}

// Reconcile decides what happens to current when candidate arrives.
//
// Rules, in order:
//  1. current absent → Adopt
//  2. candidate newer → Adopt
//  3. candidate older → Ignore
//  4. equal timestamps: equal values → Ignore, otherwise Fork, labelled with source.
//
// Adopt replaces id, value and updatedAt but keeps current's version log:
// the log is append-only and is never pruned by an overwrite.
func Reconcile(candidate, current *models.Record, source models.Source) Decision {
	switch {
	case current == nil:
		return Decision{Action: ActionAdopt, Record: candidate.Clone()}

	case candidate.UpdatedAt > current.UpdatedAt:
		adopted := current.Clone()
		adopted.ID = candidate.ID
		adopted.Value = candidate.Value
		adopted.UpdatedAt = candidate.UpdatedAt
		return Decision{Action: ActionAdopt, Record: adopted}

	case candidate.UpdatedAt < current.UpdatedAt:
		return Decision{Action: ActionIgnore}

	case candidate.Value == current.Value:
		// повторная синхронизация того же значения
		return Decision{Action: ActionIgnore}

	default:
		version := models.VersionEntry{
			Source:    source,
			Value:     candidate.Value,
			Timestamp: candidate.UpdatedAt,
		}
		return Decision{
			Action:  ActionFork,
			Record:  current.WithVersion(version),
			Version: &version,
		}
	}
}

// Detect reports a value-level divergence between candidate and current.
// Timestamps are copied into the report but never compared.
func Detect(candidate, current *models.Record) (models.ConflictReport, bool) {
	if current == nil || candidate.Value == current.Value {
		return models.ConflictReport{}, false
	}

	return models.ConflictReport{
		ID:              candidate.ID,
		LocalValue:      candidate.Value,
		RemoteValue:     current.Value,
		LocalUpdatedAt:  candidate.UpdatedAt,
		RemoteUpdatedAt: current.UpdatedAt,
		Digest:          Digest(candidate.ID, candidate.Value, current.Value),
	}, true
}
