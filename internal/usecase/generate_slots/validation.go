package generate_slots

import (
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	start := domain.DateOnly(req.StartDate)
	end := domain.DateOnly(req.EndDate)
	if start.After(end) {
		return fmt.Errorf("%w: startDate must not be after endDate", ErrInvalidInput)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > domain.MaxGenerationRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, domain.MaxGenerationRangeDays)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.MaxBookings != nil && (*req.MaxBookings < domain.MinMaxBookings || *req.MaxBookings > domain.MaxMaxBookings) {
		return fmt.Errorf("%w: maxBookings must be between %d and %d", ErrInvalidInput, domain.MinMaxBookings, domain.MaxMaxBookings)
	}

	return nil
}
