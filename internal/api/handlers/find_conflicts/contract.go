package find_conflicts

import (
	"context"

	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

type SlotService interface {
	FindConflicts(ctx context.Context, req *models.IntervalRequest) (*models.ConflictsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
