package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
)

// Publisher публикует события слотов в NATS
type Publisher struct {
	conn conn
	log  Logger
}

// NewNatsPublisher подключается к NATS и создает публикатор
func NewNatsPublisher(natsURL, clientName string, log Logger) (*Publisher, error) {
	nc, err := nats.Connect(
		natsURL,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Error("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	return newPublisher(nc, log), nil
}

func newPublisher(c conn, log Logger) *Publisher {
	return &Publisher{conn: c, log: log}
}

// PublishNotification публикует событие по сохраненному уведомлению
func (p *Publisher) PublishNotification(n *domain.Notification) error {
	event := Event{
		EventID:    uuid.NewString(),
		EventType:  string(n.Type),
		UserID:     n.UserID,
		Message:    n.Message,
		Payload:    n.Payload,
		OccurredAt: n.CreatedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	subject := Subject(event.EventType)
	if err := p.conn.Publish(subject, data); err != nil {
		p.log.Error("Error publishing to NATS subject=%s: %v", subject, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Published event to NATS on subject '%s' for user_id=%d", subject, n.UserID)
	return nil
}

// Close дожидается отправки буферизированных сообщений и закрывает соединение
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
