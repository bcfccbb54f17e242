package slots

import (
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
)

// toSlotFilter валидирует запрос списка слотов и конвертирует его в domain фильтр
func toSlotFilter(req *models.ListCourtSlotsRequest) (domain.SlotFilter, error) {
	if req.CourtID <= 0 {
		return domain.SlotFilter{}, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.StartDate.IsZero() {
		return domain.SlotFilter{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	start := domain.DateOnly(req.StartDate)
	end := start
	if !req.EndDate.IsZero() {
		end = domain.DateOnly(req.EndDate)
	}

	if end.Before(start) {
		return domain.SlotFilter{}, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if int(end.Sub(start).Hours()/24) >= domain.MaxGenerationRangeDays {
		return domain.SlotFilter{}, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, domain.MaxGenerationRangeDays)
	}

	filter := domain.SlotFilter{
		CourtID:   req.CourtID,
		StartDate: start,
		EndDate:   end,
	}

	if req.Status != nil {
		status, err := domain.ParseSlotStatus(*req.Status)
		if err != nil {
			return domain.SlotFilter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Statuses = []domain.SlotStatus{status}
	}

	return filter, nil
}

// validateIntervalRequest валидирует запрос по интервалу и возвращает интервал
func validateIntervalRequest(req *models.IntervalRequest) (domain.Interval, error) {
	if req.CourtID <= 0 {
		return domain.Interval{}, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return domain.Interval{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	interval, err := domain.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return interval, nil
}

// validateBookingRef проверяет идентификатор слота и ссылку на бронирование
func validateBookingRef(slotID int64, bookingRef string) error {
	if slotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if bookingRef == "" {
		return fmt.Errorf("%w: bookingRef is required", ErrInvalidInput)
	}
	if len(bookingRef) > domain.MaxBookingRefLength {
		return fmt.Errorf("%w: bookingRef must not exceed %d characters", ErrInvalidInput, domain.MaxBookingRefLength)
	}
	return nil
}
