package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

// ErrInvalidSlotStatus возвращается при неизвестном статусе слота
var ErrInvalidSlotStatus = errors.New("domain: invalid slot status")

// SlotStatus represents the lifecycle status of a time slot
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusBooked      SlotStatus = "booked"
	SlotStatusBlocked     SlotStatus = "blocked"
	SlotStatusMaintenance SlotStatus = "maintenance"
)

// ParseSlotStatus конвертирует строку в SlotStatus с валидацией
func ParseSlotStatus(s string) (SlotStatus, error) {
	status := SlotStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotStatus, s)
	}
	return status, nil
}

// IsValid returns true for known statuses
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusBlocked, SlotStatusMaintenance:
		return true
	default:
		return false
	}
}

// IsBlock returns true for administrative block statuses
func (s SlotStatus) IsBlock() bool {
	return s == SlotStatusBlocked || s == SlotStatusMaintenance
}

// CanTransition проверяет допустимость перехода статуса
// available -> booked -> available (отмена), available <-> blocked/maintenance (администратор)
func CanTransition(from, to SlotStatus) bool {
	switch from {
	case SlotStatusAvailable:
		return to == SlotStatusBooked || to.IsBlock()
	case SlotStatusBooked:
		return to == SlotStatusAvailable
	case SlotStatusBlocked, SlotStatusMaintenance:
		return to == SlotStatusAvailable
	default:
		return false
	}
}

// TimeSlot represents a bookable unit of time on a court
type TimeSlot struct {
	ID        int64
	CourtID   int64
	Date      time.Time // Дата слота (без времени, UTC)
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	Price     float64

	BookingRef  *string  // Ссылка на последнее бронирование/матч, занявший слот
	BookingRefs []string // Ссылки всех бронирований, занимающих места
	BlockReason *string
	BlockLabel  *string

	MaxBookings     int
	CurrentBookings int

	CreatedBy *int64
	UpdatedBy *int64
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimeSlot создает доступный слот
// Временные метки выставляются явно, без триггеров БД
func NewTimeSlot(courtID int64, date time.Time, interval Interval, price float64, maxBookings int, createdBy *int64, now time.Time) *TimeSlot {
	if maxBookings < MinMaxBookings {
		maxBookings = DefaultMaxBookings
	}

	return &TimeSlot{
		CourtID:     courtID,
		Date:        DateOnly(date),
		StartTime:   interval.Start,
		EndTime:     interval.End,
		Status:      SlotStatusAvailable,
		Price:       price,
		MaxBookings: maxBookings,
		CreatedBy:   createdBy,
		UpdatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Interval returns the slot's time interval
func (s *TimeSlot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// IsAvailable returns true if the slot can accept one more booking
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable && !s.IsDeleted() && s.HasCapacity()
}

// HasCapacity returns true if currentBookings < maxBookings
func (s *TimeSlot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxBookings
}

// IsBlocked returns true if the slot is blocked or under maintenance
func (s *TimeSlot) IsBlocked() bool {
	return s.Status.IsBlock()
}

// IsDeleted returns true if the slot was soft-deleted
func (s *TimeSlot) IsDeleted() bool {
	return s.DeletedAt != nil
}

// HoldsBookingRef returns true if ref occupies one of the slot's seats
func (s *TimeSlot) HoldsBookingRef(ref string) bool {
	if ref == "" {
		return false
	}
	for _, r := range s.BookingRefs {
		if r == ref {
			return true
		}
	}
	return false
}

// SlotFilter фильтр выборки слотов корта
type SlotFilter struct {
	CourtID   int64        // Обязательный параметр
	StartDate time.Time    // Начало периода (включительно)
	EndDate   time.Time    // Конец периода (включительно)
	Statuses  []SlotStatus // Фильтр по статусам (пусто - все)
}

// DateOnly обнуляет время и приводит дату к UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
