package find_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots"
)

const (
	msgInvalidCourtID  = "некорректный ID корта"
	msgInvalidParams   = "некорректные параметры, ожидаются date (YYYY-MM-DD), startTime и endTime (HH:MM)"
	msgInvalidInterval = "некорректный интервал"
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

// Handle GET /api/v1/courts/{courtId}/conflicts
// Query params: date, startTime, endTime (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/conflicts - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	serviceReq, err := ToServiceRequest(r, courtID)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/conflicts - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.FindConflicts(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /courts/{id}/conflicts - Invalid interval: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
		h.logger.Error("GET /courts/{id}/conflicts - Failed to find conflicts: court_id=%d, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /courts/{id}/conflicts - court_id=%d, conflicts=%d", courtID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
