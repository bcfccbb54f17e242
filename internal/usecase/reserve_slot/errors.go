package reserve_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotConflict возвращается, когда слот занят, заблокирован или пересекается с занятым
	// Ошибка повторяемая: клиент может выбрать другой слот
	ErrSlotConflict = errors.New("reserve_slot: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
