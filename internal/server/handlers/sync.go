package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/recordsync/internal/models"
	"github.com/iudanet/recordsync/internal/server/orchestrator"
	"github.com/iudanet/recordsync/pkg/api"
)

//go:generate moq -out syncservice_mock.go . SyncService

// DefaultMaxBodyBytes ограничение размера тела запроса
const DefaultMaxBodyBytes = 10 << 20

// SyncService определяет операции синхронизации, которые обслуживает handler
type SyncService interface {
	Push(ctx context.Context, batch []*models.Record) (models.BatchResult, error)
	Merge(ctx context.Context, batch []*models.Record) (models.BatchResult, error)
	Pull(ctx context.Context, localIDs []string) ([]*models.Record, error)
	CheckConflicts(ctx context.Context, batch []*models.Record) (models.ConflictResult, error)
	Resolve(ctx context.Context, req models.ResolutionRequest) (models.ResolveResult, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger       *slog.Logger
	service      SyncService
	maxBodyBytes int64
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, service SyncService) *SyncHandler {
	return &SyncHandler{
		logger:       logger,
		service:      service,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
}

// WithMaxBodyBytes overrides the request body size limit
func (h *SyncHandler) WithMaxBodyBytes(n int64) *SyncHandler {
	if n > 0 {
		h.maxBodyBytes = n
	}
	return h
}

// Push обрабатывает POST /sync/push
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	h.handleBatch(w, r, "push", "Sync completed", h.service.Push)
}

// Merge обрабатывает POST /sync/merge
func (h *SyncHandler) Merge(w http.ResponseWriter, r *http.Request) {
	h.handleBatch(w, r, "merge", "Merge completed", h.service.Merge)
}

type batchFunc func(ctx context.Context, batch []*models.Record) (models.BatchResult, error)

func (h *SyncHandler) handleBatch(w http.ResponseWriter, r *http.Request, op, message string, run batchFunc) {
	var req api.BatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Записи без value отклоняются до согласования
	records, invalid := api.ToModels(req.Data)

	h.logger.Info("Sync request", "op", op, "records", len(req.Data))

	result, err := run(r.Context(), records)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}

	failures := append(invalid, result.Failures...)

	h.writeJSON(w, http.StatusOK, api.BatchResponse{
		Message:  message,
		Changes:  result.Changes,
		Failures: api.FromItemErrors(failures),
	})
}

// Pull обрабатывает POST /sync/pull
// Возвращает массив удаленных записей, которых нет в localIds
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	var req api.PullRequest
	if !h.decode(w, r, &req) {
		return
	}

	records, err := h.service.Pull(r.Context(), req.LocalIDs)
	if err != nil {
		h.writeServiceError(w, "pull", err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.FromRecords(records))
}

// CheckConflicts обрабатывает POST /sync/checkConflicts
func (h *SyncHandler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req api.BatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	records, invalid := api.ToModels(req.Data)

	result, err := h.service.CheckConflicts(r.Context(), records)
	if err != nil {
		h.writeServiceError(w, "checkConflicts", err)
		return
	}

	conflicts := make([]api.Conflict, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		conflicts = append(conflicts, api.FromConflict(c))
	}

	h.writeJSON(w, http.StatusOK, api.ConflictsResponse{
		Conflicts: conflicts,
		Failures:  api.FromItemErrors(append(invalid, result.Failures...)),
	})
}

// Resolve обрабатывает POST /sync/resolve
func (h *SyncHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req api.ResolveRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Локальный набор возвращается целиком, поэтому неполные записи
	// отклоняют весь запрос, а не отдельный элемент
	localData, err := api.ToModelsStrict(req.LocalData)
	if err != nil {
		h.logger.Warn("Invalid localData in resolve request", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid localData", err.Error())
		return
	}

	builder := models.NewResolutionBuilder().WithLocalBatch(localData)
	for _, res := range req.Resolutions {
		choice, err := models.ParseChoice(res.Resolution)
		if err != nil {
			// Неизвестный выбор отклоняется оркестратором для конкретной записи
			choice = models.Choice(res.Resolution)
		}
		builder.Choose(res.ID, choice)
	}

	result, err := h.service.Resolve(r.Context(), builder.Build())
	if err != nil {
		h.writeServiceError(w, "resolve", err)
		return
	}

	h.writeJSON(w, http.StatusOK, api.ResolveResponse{
		Message:     "Conflicts resolved",
		UpdatedData: api.FromRecords(result.UpdatedLocal),
		Failures:    api.FromItemErrors(result.Failures),
	})
}

// decode читает JSON тело запроса с ограничением размера.
// При ошибке пишет 400/413 и возвращает false.
func (h *SyncHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.logger.Warn("Request body too large", "path", r.URL.Path, "limit", maxBytesErr.Limit)
			h.writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", "")
			return false
		}

		h.logger.Warn("Failed to decode request", "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}

	return true
}

// writeServiceError отображает фатальную ошибку батча в HTTP статус
func (h *SyncHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, orchestrator.ErrBatchAborted):
		h.logger.Error("Store unavailable", "op", op, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "Store unavailable", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Request cancelled", "op", op, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "Request cancelled", "")
	default:
		h.logger.Error("Sync operation failed", "op", op, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}

func (h *SyncHandler) writeError(w http.ResponseWriter, status int, msg, details string) {
	h.writeJSON(w, status, api.ErrorResponse{Error: msg, Message: details})
}

func (h *SyncHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", fmt.Errorf("status %d: %w", status, err))
	}
}
