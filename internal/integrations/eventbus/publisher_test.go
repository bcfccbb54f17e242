package eventbus

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
	drained bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func TestPublisher_PublishNotification(t *testing.T) {
	c := &fakeConn{}
	p := newPublisher(c, logger.NewNop())

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := &domain.Notification{
		UserID:    42,
		Type:      domain.NotificationSlotBooked,
		Message:   "booked",
		Payload:   map[string]interface{}{"slotId": 10},
		CreatedAt: now,
	}

	require.NoError(t, p.PublishNotification(n))
	assert.Equal(t, "quickcourt.slots.slot.booked", c.subject)

	var event Event
	require.NoError(t, json.Unmarshal(c.data, &event))
	assert.Equal(t, "slot.booked", event.EventType)
	assert.Equal(t, int64(42), event.UserID)
	assert.True(t, event.OccurredAt.Equal(now))
	_, err := uuid.Parse(event.EventID)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, c.drained)
}

func TestPublisher_PublishError(t *testing.T) {
	c := &fakeConn{err: errors.New("nats: connection closed")}
	p := newPublisher(c, logger.NewNop())

	err := p.PublishNotification(&domain.Notification{Type: domain.NotificationSlotBlocked})
	require.ErrorIs(t, err, ErrPublish)
}
