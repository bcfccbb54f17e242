package block_slots

import (
	"context"
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	LockCourtDay(ctx context.Context, courtID int64, date time.Time) ([]*domain.TimeSlot, error)
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
	Block(ctx context.Context, id int64, status domain.SlotStatus, reason, label *string, userID *int64, now time.Time) (*domain.TimeSlot, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
}

// Notifier интерфейс эмиттера уведомлений
type Notifier interface {
	Notify(ctx context.Context, userID int64, notificationType domain.NotificationType, slot *domain.TimeSlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики блокировок
type Metrics interface {
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
