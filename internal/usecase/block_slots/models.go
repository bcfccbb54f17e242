package block_slots

import (
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

// Request модель запроса на блокировку интервала корта
type Request struct {
	UserID    int64            // ID администратора или владельца
	CourtID   int64            // ID корта
	Date      time.Time        // Дата блокировки
	StartTime types.TimeString // Начало интервала
	EndTime   types.TimeString // Конец интервала
	Status    string           // blocked или maintenance
	Reason    *string          // Причина (опционально)
	Label     *string          // Подпись в календаре (опционально)
}

// Response модель ответа с заблокированными слотами
type Response struct {
	Slots   []*domain.TimeSlot
	Created bool // Слот создан, так как интервал не был покрыт существующими слотами
}
