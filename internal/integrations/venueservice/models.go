package venueservice

import (
	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

// Court модель корта из VenueService
type Court struct {
	ID                  int64   `json:"id"`
	VenueID             int64   `json:"venueId"`
	Name                string  `json:"name"`
	Sport               string  `json:"sport"`
	OpenTime            string  `json:"openTime"`  // HH:MM
	CloseTime           string  `json:"closeTime"` // HH:MM
	SlotDurationMinutes int     `json:"slotDurationMinutes"`
	PricePerSlot        float64 `json:"pricePerSlot"`
	MaxBookings         int     `json:"maxBookings"`
	IsActive            bool    `json:"isActive"`
}

// ToDomain конвертирует ответ VenueService в доменную модель
func (c *Court) ToDomain() (*domain.Court, error) {
	openTime, err := types.NewTimeStringFromString(c.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(c.CloseTime)
	if err != nil {
		return nil, err
	}

	return &domain.Court{
		ID:                  c.ID,
		VenueID:             c.VenueID,
		Name:                c.Name,
		Sport:               c.Sport,
		OpenTime:            openTime,
		CloseTime:           closeTime,
		SlotDurationMinutes: c.SlotDurationMinutes,
		PricePerSlot:        c.PricePerSlot,
		MaxBookings:         c.MaxBookings,
		IsActive:            c.IsActive,
	}, nil
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
