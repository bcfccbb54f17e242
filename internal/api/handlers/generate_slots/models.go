package generate_slots

import (
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	generateSlots "github.com/m04kA/QuickCourt-SlotService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	StartDate     string   `json:"startDate"` // "2025-10-15"
	EndDate       string   `json:"endDate"`   // "2025-10-21"
	ClearExisting bool     `json:"clearExisting"`
	Price         *float64 `json:"price,omitempty"`
	MaxBookings   *int     `json:"maxBookings,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	CourtID int64                 `json:"courtId"`
	Created int                   `json:"created"`
	Skipped int                   `json:"skipped"`
	Cleared int64                 `json:"cleared"`
	Slots   []models.SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(courtID, userID int64) (*generateSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	// Без endDate генерируется один день
	endDate := startDate
	if r.EndDate != "" {
		endDate, err = time.Parse(domain.DateFormat, r.EndDate)
		if err != nil {
			return nil, err
		}
	}

	return &generateSlots.Request{
		UserID:        userID,
		CourtID:       courtID,
		StartDate:     startDate,
		EndDate:       endDate,
		ClearExisting: r.ClearExisting,
		Price:         r.Price,
		MaxBookings:   r.MaxBookings,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		CourtID: resp.CourtID,
		Created: resp.Created,
		Skipped: resp.Skipped,
		Cleared: resp.Cleared,
		Slots:   models.FromDomainSlots(resp.Slots),
	}
}
