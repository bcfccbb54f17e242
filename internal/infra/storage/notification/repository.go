package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/psqlbuilder"
)

const tableName = "notifications"

var notificationColumns = []string{
	"id",
	"user_id",
	"type",
	"message",
	"payload",
	"is_read",
	"created_at",
}

// Repository репозиторий для работы с уведомлениями пользователей
type Repository struct {
	db Provider
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db Provider) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := encodePayload(n.Payload)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("user_id", "type", "message", "payload", "is_read", "created_at").
		Values(n.UserID, string(n.Type), n.Message, payload, n.IsRead, n.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return n, nil
}

// ListByUser получает уведомления пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	executor, err := r.executor(ctx)
	if err != nil {
		return nil, err
	}

	selectBuilder := psqlbuilder.Select(notificationColumns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID})

	if unreadOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_read": false})
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkRead помечает уведомление пользователя прочитанным
// Чужое уведомление считается ненайденным
func (r *Repository) MarkRead(ctx context.Context, id, userID int64) error {
	executor, err := r.executor(ctx)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *Repository) executor(ctx context.Context) (DBExecutor, error) {
	executor, err := dbmetrics.GetExecutor(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return executor, nil
}

func encodePayload(payload map[string]interface{}) ([]byte, error) {
	if payload == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodePayload, err)
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var notificationType string
	var payload []byte
	var createdAt sql.NullTime

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&notificationType,
		&n.Message,
		&payload,
		&n.IsRead,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	n.Type = domain.NotificationType(notificationType)
	n.CreatedAt = createdAt.Time

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &n.Payload); err != nil {
			return nil, errors.Join(ErrScanRow, err)
		}
	}

	return &n, nil
}
