package notification

import "errors"

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено
	ErrNotificationNotFound = errors.New("notification.repository: notification not found")

	// ErrConnection возвращается, когда не удалось получить соединение с БД
	ErrConnection = errors.New("notification.repository: database connection unavailable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("notification.repository: failed to scan row")

	// ErrEncodePayload возвращается, когда payload не сериализуется в JSON
	ErrEncodePayload = errors.New("notification.repository: failed to encode payload")
)
