package slots

import (
	"context"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	GetByInterval(ctx context.Context, courtID int64, date time.Time, interval domain.Interval) (*domain.TimeSlot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
	Release(ctx context.Context, id int64, bookingRef string, userID *int64, now time.Time) (*domain.TimeSlot, error)
	Unblock(ctx context.Context, id int64, userID *int64, now time.Time) (*domain.TimeSlot, error)
	SoftDeleteOlderThan(ctx context.Context, cutoff time.Time, now time.Time) (int64, error)
}

// Notifier интерфейс эмиттера уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, notificationType domain.NotificationType, slot *domain.TimeSlot) error
}

// Metrics доменные метрики сервиса
type Metrics interface {
	IncConflict(operation string)
	AddSlotsPurged(n int64)
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
