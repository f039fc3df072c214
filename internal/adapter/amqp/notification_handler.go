package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

// NotificationHandler turns site events into staff notifications.
type NotificationHandler struct {
	notifier interfaces.Notifier
	logger   logger.Logger
}

// NewNotificationHandler accepts a nil notifier; events are then only logged.
func NewNotificationHandler(notifier interfaces.Notifier, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

func (h *NotificationHandler) HandleEvent(ctx context.Context, body []byte) error {
	var event interfaces.SiteEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse site event", "", nil, err)
		return err
	}

	text, ok := FormatEvent(event)
	if !ok {
		h.logger.Debug("event_ignored", "Unknown site event type", "", map[string]interface{}{
			"type": event.Type,
		})
		return nil
	}

	h.logger.Info("notification_received", text, "", map[string]interface{}{
		"type":           event.Type,
		"reservation_id": event.ReservationID,
		"inquiry_id":     event.InquiryID,
	})

	if h.notifier == nil {
		return nil
	}

	if err := h.notifier.Notify(ctx, text); err != nil {
		h.logger.Error("notify_failed", "Failed to deliver staff notification", "", map[string]interface{}{
			"type": event.Type,
		}, err)
		return err
	}
	return nil
}

// FormatEvent renders the staff facing text for event.
func FormatEvent(event interfaces.SiteEvent) (string, bool) {
	var b strings.Builder
	switch event.Type {
	case interfaces.EventReservationCreated:
		fmt.Fprintf(&b, "New reservation request from %s: %d guests on %s at %s.", event.Name, event.Guests, event.Date, event.Time)
	case interfaces.EventReservationStatusChanged:
		fmt.Fprintf(&b, "Reservation for %s on %s at %s changed from %s to %s.", event.Name, event.Date, event.Time, event.OldStatus, event.Status)
	case interfaces.EventInquiryCreated:
		fmt.Fprintf(&b, "New inquiry from %s: %q.", event.Name, event.Subject)
	default:
		return "", false
	}
	return b.String(), true
}
