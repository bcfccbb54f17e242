package check_availability

import (
	"net/http"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

// ToServiceRequest собирает запрос по интервалу из query параметров date, startTime, endTime
func ToServiceRequest(r *http.Request, courtID int64) (*models.IntervalRequest, error) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	startTime, err := handlers.QueryTime(r, "startTime")
	if err != nil {
		return nil, err
	}

	endTime, err := handlers.QueryTime(r, "endTime")
	if err != nil {
		return nil, err
	}

	return &models.IntervalRequest{
		CourtID:   courtID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
