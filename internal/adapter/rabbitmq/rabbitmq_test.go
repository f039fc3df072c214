package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

func TestPublishSiteEvent(t *testing.T) {
	ch := newFakeChannel()
	pub := NewPublisher(&fakeConnection{ch: ch})

	event := interfaces.SiteEvent{
		Type:          interfaces.EventReservationCreated,
		ReservationID: "r-1",
		Name:          "Ada",
		Guests:        2,
		Timestamp:     time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.Publish(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, SiteEventsExchange, got.exchange)
	assert.Equal(t, "reservation.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Contains(t, ch.exchanges, "site_events:fanout")

	var decoded interfaces.SiteEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, "r-1", decoded.ReservationID)
}

func TestConsumeAcksAndNacks(t *testing.T) {
	ch := newFakeChannel()
	c := NewConsumer(&fakeConnection{ch: ch}, 5, logger.NewNop())
	ack := &fakeAcknowledger{done: make(chan struct{}, 2)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(ctx context.Context, body []byte) error {
		if string(body) == "bad" {
			return errors.New("cannot decode")
		}
		return nil
	}

	errCh := make(chan error, 1)
	go func() { errCh <- c.ConsumeEvents(ctx, handler) }()

	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("good")}
	ch.deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("bad")}

	for i := 0; i < 2; i++ {
		select {
		case <-ack.done:
		case <-time.After(2 * time.Second):
			t.Fatal("delivery was not settled")
		}
	}

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}

	ack.mu.Lock()
	defer ack.mu.Unlock()
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
	assert.Contains(t, ch.bindings, NotificationsQueue+"->"+SiteEventsExchange)
}
