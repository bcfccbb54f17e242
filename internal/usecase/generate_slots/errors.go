package generate_slots

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("generate_slots: court not found")

	// ErrNoWindows возвращается, когда рабочие часы корта не вмещают ни одного слота
	ErrNoWindows = errors.New("generate_slots: court configuration yields no slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
