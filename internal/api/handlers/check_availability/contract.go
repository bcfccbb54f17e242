package check_availability

import (
	"context"

	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

type SlotService interface {
	IsAvailable(ctx context.Context, req *models.IntervalRequest) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
