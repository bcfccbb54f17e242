package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	notificationRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/notification"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/notifications/models"
)

// defaultListLimit количество уведомлений, если лимит не указан
const defaultListLimit = 50

var messageTemplates = map[domain.NotificationType]string{
	domain.NotificationSlotBooked:   "Слот %s %s забронирован",
	domain.NotificationSlotReleased: "Слот %s %s освобожден",
	domain.NotificationSlotBlocked:  "Слот %s %s заблокирован",
}

// Service сервис уведомлений о переходах слотов
type Service struct {
	repo         NotificationRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
// publisher может быть nil, тогда уведомления только сохраняются в БД
func NewService(repo NotificationRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		repo:         repo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Notify сохраняет уведомление о переходе слота и публикует событие
// Ошибка публикации только логируется: строка в БД остается источником истины
func (s *Service) Notify(ctx context.Context, userID int64, notificationType domain.NotificationType, slot *domain.TimeSlot) error {
	if userID <= 0 || slot == nil {
		return nil
	}

	template, ok := messageTemplates[notificationType]
	if !ok {
		return fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, notificationType)
	}

	message := fmt.Sprintf(template, slot.Date.Format(domain.DateFormat), slot.Interval())
	n := domain.NewSlotNotification(userID, notificationType, message, slot, s.timeProvider.Now())

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("Notify: failed to persist %s for user=%d slot=%d: %v", notificationType, userID, slot.ID, err)
		return fmt.Errorf("%w: Notify - repository error: %v", ErrInternal, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishNotification(created); err != nil {
			s.logger.Warn("Notify: failed to publish notification id=%d: %v", created.ID, err)
		}
	}

	s.logger.Info("Notify: %s notification id=%d for user=%d slot=%d", notificationType, created.ID, userID, slot.ID)
	return nil
}

// ListUserNotifications получает уведомления пользователя, новые первыми
func (s *Service) ListUserNotifications(ctx context.Context, req *models.ListNotificationsRequest) (*models.NotificationListResponse, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Limit < 0 || req.Limit > domain.MaxNotificationsLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, domain.MaxNotificationsLimit)
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	list, err := s.repo.ListByUser(ctx, req.UserID, req.UnreadOnly, limit)
	if err != nil {
		s.logger.Error("ListUserNotifications: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserNotifications - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUserNotifications: fetched %d notifications for user=%d", len(list), req.UserID)
	return models.FromDomainNotificationList(list), nil
}

// MarkRead помечает уведомление пользователя прочитанным
func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}
