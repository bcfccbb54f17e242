package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда условное обновление не затронуло ни одной строки
	// (слот уже занят, заблокирован или исчерпана вместимость)
	ErrSlotNotAvailable = errors.New("slot.repository: slot not available")

	// ErrSlotExists возвращается, когда слот с таким кортом, датой и временем уже существует
	ErrSlotExists = errors.New("slot.repository: slot already exists")

	// ErrConcurrentUpdate возвращается, когда транзакция конфликтует с конкурентной (SQLSTATE 40001, 40P01)
	ErrConcurrentUpdate = errors.New("slot.repository: concurrent update")

	// ErrConnection возвращается, когда не удалось получить соединение с БД
	ErrConnection = errors.New("slot.repository: connection error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
