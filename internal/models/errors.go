package models

import "fmt"

// ErrorKind классифицирует ошибку обработки отдельной записи батча.
// Строковые коды сериализуются в ответы API как есть.
type ErrorKind string

const (
	// KindStoreUnavailable операция хранилища не завершилась (в т.ч. по таймауту)
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
	// KindInvalidRecord запись отклонена до согласования (нет id/updatedAt/value)
	KindInvalidRecord ErrorKind = "INVALID_RECORD"
	// KindUnknownResolutionChoice решение не относится к local/remote/both
	KindUnknownResolutionChoice ErrorKind = "UNKNOWN_RESOLUTION_CHOICE"
	// KindStaleResolutionTarget записи из решения уже нет в удаленной реплике
	KindStaleResolutionTarget ErrorKind = "STALE_RESOLUTION_TARGET"
)

// ItemError ошибка обработки одной записи. Не прерывает остальной батч.
type ItemError struct {
	ID      string    `json:"id"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s: record %q: %s", e.Kind, e.ID, e.Message)
}

// BatchResult итог пакетной операции push/merge
type BatchResult struct {
	Failures []ItemError `json:"failures,omitempty"`
	Changes  int         `json:"changes"`
}

// ResolveResult итог применения решений
type ResolveResult struct {
	UpdatedLocal []*Record   `json:"updated_local"`
	Failures     []ItemError `json:"failures,omitempty"`
}
