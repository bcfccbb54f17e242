package models

import (
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

// Request модели

// ListCourtSlotsRequest запрос на получение слотов корта
type ListCourtSlotsRequest struct {
	CourtID   int64     `json:"courtId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`          // Если не указан, равен StartDate
	Status    *string   `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// IntervalRequest запрос по интервалу времени корта на дату
// Используется проверкой доступности и поиском конфликтов
type IntervalRequest struct {
	CourtID   int64            `json:"courtId"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// ReleaseSlotRequest запрос на освобождение места в слоте
type ReleaseSlotRequest struct {
	UserID     int64  `json:"userId"`
	BookingRef string `json:"bookingRef"`
}

// DeleteOldSlotsRequest запрос на очистку прошедших слотов
type DeleteOldSlotsRequest struct {
	RetentionDays *int `json:"retentionDays,omitempty"` // Если не указан, берется из конфигурации
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID              int64   `json:"id"`
	CourtID         int64   `json:"courtId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:00"
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	BookingRef      *string `json:"bookingRef,omitempty"`
	BlockReason     *string `json:"blockReason,omitempty"`
	BlockLabel      *string `json:"blockLabel,omitempty"`
	MaxBookings     int     `json:"maxBookings"`
	CurrentBookings int     `json:"currentBookings"`
	AvailableSpots  int     `json:"availableSpots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// ConflictsResponse ответ со списком конфликтующих слотов
type ConflictsResponse struct {
	HasConflicts bool           `json:"hasConflicts"`
	Conflicts    []SlotResponse `json:"conflicts"`
}

// AvailabilityResponse ответ на проверку доступности интервала
type AvailabilityResponse struct {
	Available      bool   `json:"available"`
	SlotID         *int64 `json:"slotId,omitempty"`
	AvailableSpots int    `json:"availableSpots"`
}

// DeleteOldSlotsResponse ответ с результатом очистки
type DeleteOldSlotsResponse struct {
	Deleted       int64  `json:"deleted"`
	RetentionDays int    `json:"retentionDays"`
	Cutoff        string `json:"cutoff"` // Удалены слоты строго раньше этой даты
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	availableSpots := 0
	if s.IsAvailable() {
		availableSpots = s.MaxBookings - s.CurrentBookings
	}

	return &SlotResponse{
		ID:              s.ID,
		CourtID:         s.CourtID,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Status:          string(s.Status),
		Price:           s.Price,
		BookingRef:      s.BookingRef,
		BlockReason:     s.BlockReason,
		BlockLabel:      s.BlockLabel,
		MaxBookings:     s.MaxBookings,
		CurrentBookings: s.CurrentBookings,
		AvailableSpots:  availableSpots,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSlots конвертирует список domain моделей в слайс DTO
func FromDomainSlots(slots []*domain.TimeSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		if resp := FromDomainSlot(s); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.TimeSlot) *SlotListResponse {
	return &SlotListResponse{Slots: FromDomainSlots(slots)}
}
