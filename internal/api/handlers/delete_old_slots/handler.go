package delete_old_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

const (
	msgInvalidRetentionDays = "некорректный срок хранения"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/slots/old
// Query params: retentionDays (optional, по умолчанию из конфигурации)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq := &models.DeleteOldSlotsRequest{}

	if raw := r.URL.Query().Get("retentionDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("DELETE /slots/old - Invalid retentionDays: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRetentionDays)
			return
		}
		serviceReq.RetentionDays = &days
	}

	result, err := h.service.DeleteOldSlots(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("DELETE /slots/old - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRetentionDays)
			return
		}
		h.logger.Error("DELETE /slots/old - Failed to delete old slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /slots/old - Deleted %d slots before %s", result.Deleted, result.Cutoff)
	handlers.RespondJSON(w, http.StatusOK, result)
}
