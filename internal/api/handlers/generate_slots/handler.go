package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/api/middleware"
	generateSlots "github.com/m04kA/QuickCourt-SlotService/internal/usecase/generate_slots"
)

const (
	msgInvalidCourtID     = "некорректный ID корта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры генерации"
	msgNoWindows          = "рабочие часы корта не вмещают ни одного слота"
	msgCourtNotFound      = "корт не найден или неактивен"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/courts/{courtId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slots/generate - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(courtID, userID)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/slots/generate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /courts/{id}/slots/generate - Invalid input: court_id=%d, error=%v", courtID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generateSlots.ErrNoWindows):
			h.logger.Warn("POST /courts/{id}/slots/generate - No windows: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgNoWindows)

		case errors.Is(err, generateSlots.ErrCourtNotFound):
			h.logger.Warn("POST /courts/{id}/slots/generate - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("POST /courts/{id}/slots/generate - Failed to generate slots: court_id=%d, error=%v",
				courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/slots/generate - Slots generated: court_id=%d, created=%d, skipped=%d",
		courtID, result.Created, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
