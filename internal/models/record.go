package models

// Source обозначает реплику, из которой пришло значение VersionEntry.
type Source string

const (
	// SourceLocal значение пришло из локальной реплики (клиента)
	SourceLocal Source = "local"
	// SourceRemote значение пришло из удаленной (авторитетной) реплики
	SourceRemote Source = "remote"
)

// Record представляет одну запись реплицируемого набора.
// В каждой реплике для одного ID существует не более одной живой записи,
// альтернативные значения хранятся только внутри Versions.
type Record struct {
	ID        string         `json:"id"`                 // ID стабильный идентификатор записи в обеих репликах
	Value     string         `json:"value"`              // Value текущее значение
	Versions  []VersionEntry `json:"versions,omitempty"` // Versions append-only журнал сохраненных альтернатив
	UpdatedAt int64          `json:"updated_at"`         // UpdatedAt время последнего изменения значения (unix millis)
}

// VersionEntry фиксирует значение, сохраненное рядом с текущим вместо перезаписи.
// После добавления в Record.Versions запись не изменяется.
type VersionEntry struct {
	Source    Source `json:"source"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// Clone создает глубокую копию записи
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	var versions []VersionEntry
	if len(r.Versions) > 0 {
		versions = make([]VersionEntry, len(r.Versions))
		copy(versions, r.Versions)
	}

	return &Record{
		ID:        r.ID,
		Value:     r.Value,
		UpdatedAt: r.UpdatedAt,
		Versions:  versions,
	}
}

// WithVersion возвращает копию записи с добавленной в конец журнала версией.
// Исходная запись не изменяется.
func (r *Record) WithVersion(v VersionEntry) *Record {
	out := r.Clone()
	out.Versions = append(out.Versions, v)
	return out
}

// CloneAll копирует срез записей
func CloneAll(records []*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}
	return out
}

// IDs возвращает идентификаторы записей в исходном порядке
func IDs(records []*Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
