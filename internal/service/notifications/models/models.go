package models

import (
	"time"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// Request модели

// ListNotificationsRequest запрос на получение уведомлений пользователя
type ListNotificationsRequest struct {
	UserID     int64 `json:"userId"`
	UnreadOnly bool  `json:"unreadOnly"`
	Limit      int   `json:"limit"`
}

// Response модели

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"userId"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	IsRead    bool                   `json:"isRead"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Message:   n.Message,
		Payload:   n.Payload,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(list)),
	}

	for _, n := range list {
		if item := FromDomainNotification(n); item != nil {
			resp.Notifications = append(resp.Notifications, *item)
		}
	}

	return resp
}
