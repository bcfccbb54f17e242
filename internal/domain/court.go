package domain

import "github.com/m04kA/QuickCourt-SlotService/pkg/types"

// Court represents a court configuration owned by the venue service
type Court struct {
	ID                  int64
	VenueID             int64
	Name                string
	Sport               string
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	PricePerSlot        float64
	MaxBookings         int // Количество мест в слоте (1 - корт целиком)
	IsActive            bool
}

// OperatingHours returns the court's working interval
func (c *Court) OperatingHours() Interval {
	return Interval{Start: c.OpenTime, End: c.CloseTime}
}

// Capacity returns the number of bookings a single slot accepts
func (c *Court) Capacity() int {
	if c.MaxBookings < MinMaxBookings {
		return DefaultMaxBookings
	}
	return c.MaxBookings
}
