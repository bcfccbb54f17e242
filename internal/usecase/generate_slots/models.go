package generate_slots

import (
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	UserID        int64     // ID администратора или владельца
	CourtID       int64     // ID корта
	StartDate     time.Time // Первая дата (включительно)
	EndDate       time.Time // Последняя дата (включительно)
	ClearExisting bool      // Удалить свободные слоты периода перед генерацией
	Price         *float64  // Переопределение цены корта (опционально)
	MaxBookings   *int      // Переопределение вместимости слота (опционально)
}

// Response модель ответа с результатом генерации
type Response struct {
	CourtID int64
	Slots   []*domain.TimeSlot // Созданные слоты, по дате и времени начала
	Created int
	Skipped int // Слоты, которые уже существовали
	Cleared int64
}
