package delete_old_slots

import (
	"context"

	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

type SlotService interface {
	DeleteOldSlots(ctx context.Context, req *models.DeleteOldSlotsRequest) (*models.DeleteOldSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
