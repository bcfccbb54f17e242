package reserve_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/api/middleware"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	reserveSlot "github.com/m04kA/QuickCourt-SlotService/internal/usecase/reserve_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingRef  = "некорректная ссылка на бронирование"
	msgSlotNotFound       = "слот не найден"
	msgSlotNotAvailable   = "слот недоступен для бронирования"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("POST /slots/{id}/reserve - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/reserve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID, userID))
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/reserve - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingRef)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/reserve - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrSlotConflict):
			h.logger.Warn("POST /slots/{id}/reserve - Slot not available: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /slots/{id}/reserve - Failed to reserve slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/reserve - Slot reserved: slot_id=%d, user_id=%d, booking_ref=%s",
		slotID, userID, req.BookingRef)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(result.Slot))
}
