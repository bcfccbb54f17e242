package get_user_notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/api/middleware"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/notifications"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/notifications/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/notifications
// Query params: unread (optional, true|false), limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Чужие уведомления доступны только администратору и владельцу
	callerID, _ := middleware.GetUserID(r.Context())
	if callerID != userID && !middleware.IsPrivileged(r.Context()) {
		h.logger.Warn("GET /users/{userId}/notifications - Access denied: user_id=%d, caller_id=%d", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq := &models.ListNotificationsRequest{UserID: userID}

	if raw := r.URL.Query().Get("unread"); raw != "" {
		serviceReq.UnreadOnly, err = strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		serviceReq.Limit, err = strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.ListUserNotifications(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, notifications.ErrInvalidInput) {
			h.logger.Warn("GET /users/{userId}/notifications - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /users/{userId}/notifications - Failed to get notifications: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/notifications - Notifications retrieved: user_id=%d, count=%d",
		userID, len(result.Notifications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
