package domain

// Значения по умолчанию
const (
	DefaultMaxBookings         = 1
	DefaultRetentionDays       = 30
	DefaultSlotDurationMinutes = 60
)

// Константы бизнес-валидации
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MinMaxBookings         = 1
	MaxMaxBookings         = 100
	MaxGenerationRangeDays = 366
	MaxRetentionDays       = 3650
	MaxBookingRefLength    = 64
	MaxBlockReasonLength   = 500
	MaxBlockLabelLength    = 100
	MaxNotificationsLimit  = 200
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Роли пользователей, которые передает шлюз в заголовке X-User-Role
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// UnavailableStatuses статусы слотов, которые участвуют в поиске конфликтов
var UnavailableStatuses = []SlotStatus{
	SlotStatusBooked,
	SlotStatusBlocked,
	SlotStatusMaintenance,
}
