package reserve_slot

import (
	reserveSlot "github.com/m04kA/QuickCourt-SlotService/internal/usecase/reserve_slot"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	BookingRef string `json:"bookingRef"` // ID бронирования или матча во внешнем сервисе
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveSlotRequest) ToUseCaseRequest(slotID, userID int64) *reserveSlot.Request {
	return &reserveSlot.Request{
		UserID:     userID,
		SlotID:     slotID,
		BookingRef: r.BookingRef,
	}
}
