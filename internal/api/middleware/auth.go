package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

const (
	// HeaderUserID заголовок с ID пользователя, выставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя, выставляется шлюзом
	HeaderUserRole = "X-User-Role"

	msgForbidden = "доступ запрещен"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Auth требует заголовок X-User-ID и кладет идентификатор и роль в контекст
// Шлюзу доверяем, подпись не проверяется
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), userID, r.Header.Get(HeaderUserRole))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из ролей
// Должен стоять после Auth
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserID(r.Context()); !ok {
				handlers.RespondUnauthorized(w)
				return
			}
			if _, ok := allowed[GetUserRole(r.Context())]; !ok {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser возвращает контекст с данными пользователя
func WithUser(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRole извлекает роль пользователя из контекста
func GetUserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}

// IsPrivileged возвращает true для администратора и владельца площадки
func IsPrivileged(ctx context.Context) bool {
	switch GetUserRole(ctx) {
	case domain.RoleAdmin, domain.RoleOwner:
		return true
	}
	return false
}
