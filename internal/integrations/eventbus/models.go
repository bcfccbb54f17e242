package eventbus

import "time"

// SubjectPrefix префикс subject для событий слотов
const SubjectPrefix = "quickcourt.slots."

// Event событие о переходе слота, публикуемое в NATS
type Event struct {
	EventID    string                 `json:"event_id"`
	EventType  string                 `json:"event_type"`
	UserID     int64                  `json:"user_id"`
	Message    string                 `json:"message"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Subject возвращает subject для типа события, например quickcourt.slots.slot.booked
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}
