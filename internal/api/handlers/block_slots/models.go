package block_slots

import (
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	blockSlots "github.com/m04kA/QuickCourt-SlotService/internal/usecase/block_slots"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

// BlockSlotsRequest HTTP request model
type BlockSlotsRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`   // "12:00"
	Status    string  `json:"status"`    // blocked | maintenance
	Reason    *string `json:"reason,omitempty"`
	Label     *string `json:"label,omitempty"`
}

// BlockSlotsResponse HTTP response model
type BlockSlotsResponse struct {
	Created bool                  `json:"created"`
	Slots   []models.SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockSlotsRequest) ToUseCaseRequest(courtID, userID int64) (*blockSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	status := r.Status
	if status == "" {
		status = string(domain.SlotStatusBlocked)
	}

	return &blockSlots.Request{
		UserID:    userID,
		CourtID:   courtID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    status,
		Reason:    r.Reason,
		Label:     r.Label,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockSlots.Response) *BlockSlotsResponse {
	return &BlockSlotsResponse{
		Created: resp.Created,
		Slots:   models.FromDomainSlots(resp.Slots),
	}
}
