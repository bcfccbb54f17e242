package block_slots

import (
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает интервал и статус блокировки
func validateRequest(req *Request) (domain.Interval, domain.SlotStatus, error) {
	if req.CourtID <= 0 {
		return domain.Interval{}, "", fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return domain.Interval{}, "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	interval, err := domain.NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return domain.Interval{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status, err := domain.ParseSlotStatus(req.Status)
	if err != nil || !status.IsBlock() {
		return domain.Interval{}, "", fmt.Errorf("%w: status must be blocked or maintenance", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		return domain.Interval{}, "", fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	if req.Label != nil && len(*req.Label) > domain.MaxBlockLabelLength {
		return domain.Interval{}, "", fmt.Errorf("%w: label must not exceed %d characters", ErrInvalidInput, domain.MaxBlockLabelLength)
	}

	return interval, status, nil
}
