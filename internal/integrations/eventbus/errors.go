package eventbus

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к NATS
	ErrConnect = errors.New("eventbus: failed to connect to nats")

	// ErrMarshal возвращается, когда событие не сериализуется
	ErrMarshal = errors.New("eventbus: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("eventbus: failed to publish event")
)
