package eventbus

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// conn часть *nats.Conn, которая нужна публикатору
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}
