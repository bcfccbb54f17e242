package get_court_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// date обязателен, endDate и status опциональны
func ToServiceRequest(r *http.Request, courtID int64) (*models.ListCourtSlotsRequest, error) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	req := &models.ListCourtSlotsRequest{
		CourtID:   courtID,
		StartDate: date,
		Status:    handlers.QueryOptionalString(r, "status"),
	}

	if endDate := handlers.QueryOptionalString(r, "endDate"); endDate != nil {
		req.EndDate, err = time.Parse(domain.DateFormat, *endDate)
		if err != nil {
			return nil, err
		}
	}

	return req, nil
}
