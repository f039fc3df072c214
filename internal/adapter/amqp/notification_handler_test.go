package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

type recordingNotifier struct {
	texts []string
	err   error
}

func (n *recordingNotifier) Notify(ctx context.Context, text string) error {
	n.texts = append(n.texts, text)
	return n.err
}

func encode(t *testing.T, event interfaces.SiteEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return body
}

func TestHandleEventNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewNotificationHandler(notifier, logger.NewNop())

	err := h.HandleEvent(context.Background(), encode(t, interfaces.SiteEvent{
		Type:   interfaces.EventReservationCreated,
		Name:   "Ada",
		Guests: 4,
		Date:   "2025-06-01",
		Time:   "19:00",
	}))
	require.NoError(t, err)
	require.Len(t, notifier.texts, 1)
	assert.Equal(t, "New reservation request from Ada: 4 guests on 2025-06-01 at 19:00.", notifier.texts[0])
}

func TestHandleEventStatusChange(t *testing.T) {
	text, ok := FormatEvent(interfaces.SiteEvent{
		Type:      interfaces.EventReservationStatusChanged,
		Name:      "Ada",
		Date:      "2025-06-01",
		Time:      "19:00",
		OldStatus: domain.StatusPending,
		Status:    domain.StatusConfirmed,
	})
	assert.True(t, ok)
	assert.Contains(t, text, "from PENDING to CONFIRMED")
}

func TestHandleEventErrors(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("telegram down")}
	h := NewNotificationHandler(notifier, logger.NewNop())

	assert.Error(t, h.HandleEvent(context.Background(), []byte("{not json")))
	assert.Error(t, h.HandleEvent(context.Background(), encode(t, interfaces.SiteEvent{
		Type: interfaces.EventInquiryCreated, Name: "Bo", Subject: "Hi",
	})))

	// unknown types are acknowledged without notifying
	assert.NoError(t, h.HandleEvent(context.Background(), encode(t, interfaces.SiteEvent{Type: "menu.changed"})))
	assert.Len(t, notifier.texts, 1)
}

func TestHandleEventWithoutNotifier(t *testing.T) {
	h := NewNotificationHandler(nil, logger.NewNop())
	assert.NoError(t, h.HandleEvent(context.Background(), encode(t, interfaces.SiteEvent{
		Type: interfaces.EventInquiryCreated, Name: "Bo", Subject: "Hi",
	})))
}
