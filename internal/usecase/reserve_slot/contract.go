package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	LockCourtDay(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error)
	Reserve(ctx context.Context, id int64, bookingRef string, userID *int64, now time.Time) (*domain.TimeSlot, error)
}

// Notifier интерфейс эмиттера уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, notificationType domain.NotificationType, slot *domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики бронирования
type Metrics interface {
	IncReservation(outcome string)
	IncConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
