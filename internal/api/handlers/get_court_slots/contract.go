package get_court_slots

import (
	"context"

	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

type SlotService interface {
	ListCourtSlots(ctx context.Context, req *models.ListCourtSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
