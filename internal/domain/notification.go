package domain

import "time"

// NotificationType represents the kind of user-facing event
type NotificationType string

const (
	NotificationSlotBooked   NotificationType = "slot.booked"
	NotificationSlotReleased NotificationType = "slot.released"
	NotificationSlotBlocked  NotificationType = "slot.blocked"
)

// Notification represents a user-facing event record
type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Message   string
	Payload   map[string]interface{}
	IsRead    bool
	CreatedAt time.Time
}

// NewSlotNotification создает уведомление о переходе слота
// Payload содержит идентификаторы и интервал слота
func NewSlotNotification(userID int64, notificationType NotificationType, message string, slot *TimeSlot, now time.Time) *Notification {
	payload := map[string]interface{}{
		"slotId":    slot.ID,
		"courtId":   slot.CourtID,
		"date":      slot.Date.Format(DateFormat),
		"startTime": slot.StartTime.String(),
		"endTime":   slot.EndTime.String(),
		"status":    string(slot.Status),
	}
	if slot.BookingRef != nil {
		payload["bookingRef"] = *slot.BookingRef
	}
	if slot.BlockReason != nil {
		payload["reason"] = *slot.BlockReason
	}

	return &Notification{
		UserID:    userID,
		Type:      notificationType,
		Message:   message,
		Payload:   payload,
		CreatedAt: now,
	}
}
