package models

import (
	"fmt"
	"strings"
)

// ConflictReport описывает расхождение значений одной записи между репликами.
// Обнаружение не учитывает timestamp: отчет формируется и тогда,
// когда автоматический merge разрешил бы расхождение сам.
type ConflictReport struct {
	ID              string `json:"id"`
	LocalValue      string `json:"local_value"`
	RemoteValue     string `json:"remote_value"`
	Digest          string `json:"digest"` // Digest отпечаток пары значений, см. reconcile.Digest
	LocalUpdatedAt  int64  `json:"local_updated_at"`
	RemoteUpdatedAt int64  `json:"remote_updated_at"`
}

// Choice решение по конфликту
type Choice string

const (
	// ChoiceLocal локальное значение перезаписывает удаленное
	ChoiceLocal Choice = "local"
	// ChoiceRemote локальная реплика принимает удаленное значение
	ChoiceRemote Choice = "remote"
	// ChoiceBoth удаленное значение остается текущим, локальное уходит в Versions
	ChoiceBoth Choice = "both"
)

// Valid reports whether c is one of the recognized choices.
func (c Choice) Valid() bool {
	switch c {
	case ChoiceLocal, ChoiceRemote, ChoiceBoth:
		return true
	default:
		return false
	}
}

// ParseChoice converts user input into a Choice.
// "cloud" is accepted as an alias of "remote" for older clients.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "l":
		return ChoiceLocal, nil
	case "remote", "cloud", "r":
		return ChoiceRemote, nil
	case "both", "b":
		return ChoiceBoth, nil
	default:
		return "", fmt.Errorf("unknown resolution choice %q: use local, remote or both", s)
	}
}

// Resolution решение по одной записи
type Resolution struct {
	ID     string `json:"id"`
	Choice Choice `json:"choice"`
}

// ResolutionRequest неизменяемый набор решений вместе с локальным батчем.
// Создается только через ResolutionBuilder; геттеры возвращают копии.
type ResolutionRequest struct {
	resolutions []Resolution
	localBatch  []*Record
}

// Resolutions returns a copy of the resolutions in submission order.
func (r ResolutionRequest) Resolutions() []Resolution {
	out := make([]Resolution, len(r.resolutions))
	copy(out, r.resolutions)
	return out
}

// LocalBatch returns a deep copy of the in-flight local batch.
func (r ResolutionRequest) LocalBatch() []*Record {
	return CloneAll(r.localBatch)
}

// Len returns the number of resolutions.
func (r ResolutionRequest) Len() int {
	return len(r.resolutions)
}

// ResolutionBuilder собирает ResolutionRequest до отправки.
// После Build изменения билдера не влияют на уже собранный запрос.
type ResolutionBuilder struct {
	index       map[string]int
	resolutions []Resolution
	localBatch  []*Record
}

// NewResolutionBuilder creates an empty builder.
func NewResolutionBuilder() *ResolutionBuilder {
	return &ResolutionBuilder{index: make(map[string]int)}
}

// Choose records a decision for id. A later call for the same id replaces
// the earlier decision but keeps its position.
func (b *ResolutionBuilder) Choose(id string, choice Choice) *ResolutionBuilder {
	if i, ok := b.index[id]; ok {
		b.resolutions[i].Choice = choice
		return b
	}
	b.index[id] = len(b.resolutions)
	b.resolutions = append(b.resolutions, Resolution{ID: id, Choice: choice})
	return b
}

// WithLocalBatch sets the local working set the resolutions apply to.
func (b *ResolutionBuilder) WithLocalBatch(batch []*Record) *ResolutionBuilder {
	b.localBatch = CloneAll(batch)
	return b
}

// Build returns an immutable snapshot of the builder state.
func (b *ResolutionBuilder) Build() ResolutionRequest {
	resolutions := make([]Resolution, len(b.resolutions))
	copy(resolutions, b.resolutions)
	return ResolutionRequest{
		resolutions: resolutions,
		localBatch:  CloneAll(b.localBatch),
	}
}

// ConflictResult итог проверки батча на конфликты
type ConflictResult struct {
	Conflicts []ConflictReport `json:"conflicts"`
	Failures  []ItemError      `json:"failures,omitempty"`
}
