package release_slot

import "github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"

// ReleaseSlotRequest HTTP request model
type ReleaseSlotRequest struct {
	BookingRef string `json:"bookingRef"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReleaseSlotRequest) ToServiceRequest(userID int64) *models.ReleaseSlotRequest {
	return &models.ReleaseSlotRequest{
		UserID:     userID,
		BookingRef: r.BookingRef,
	}
}
