package block_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/api/middleware"
	blockSlots "github.com/m04kA/QuickCourt-SlotService/internal/usecase/block_slots"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные параметры блокировки"
	msgCourtNotFound      = "корт не найден"
	msgSlotConflict       = "интервал пересекается с забронированными или заблокированными слотами"
)

type Handler struct {
	useCase BlockSlotsUseCase
	logger  Logger
}

func NewHandler(useCase BlockSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/courts/{courtId}/slots/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slots/block - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req BlockSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/slots/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(courtID, userID)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slots/block - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockSlots.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/slots/block - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, blockSlots.ErrCourtNotFound):
			h.logger.Warn("POST /courts/{id}/slots/block - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, blockSlots.ErrSlotConflict):
			h.logger.Warn("POST /courts/{id}/slots/block - Conflict: court_id=%d, error=%v", courtID, err)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /courts/{id}/slots/block - Failed to block slots: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /courts/{id}/slots/block - Interval blocked: court_id=%d, slots=%d, created=%t",
		courtID, len(result.Slots), result.Created)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
