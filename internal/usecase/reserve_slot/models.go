package reserve_slot

import "github.com/m04kA/QuickCourt-SlotService/internal/domain"

// Request модель запроса на бронирование места в слоте
type Request struct {
	UserID     int64  // ID пользователя, от имени которого бронируется слот
	SlotID     int64  // ID слота
	BookingRef string // Непрозрачная ссылка на бронирование или матч
}

// Response модель ответа с забронированным слотом
type Response struct {
	Slot *domain.TimeSlot
}
