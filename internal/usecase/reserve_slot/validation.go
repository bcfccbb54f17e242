package reserve_slot

import (
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.BookingRef == "" {
		return fmt.Errorf("%w: bookingRef is required", ErrInvalidInput)
	}

	if len(req.BookingRef) > domain.MaxBookingRefLength {
		return fmt.Errorf("%w: bookingRef must not exceed %d characters", ErrInvalidInput, domain.MaxBookingRefLength)
	}

	return nil
}
