package block_slots

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("block_slots: court not found")

	// ErrSlotConflict возвращается, когда интервал пересекается с занятым или заблокированным слотом
	ErrSlotConflict = errors.New("block_slots: interval conflicts with unavailable slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("block_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("block_slots: internal error")
)
