package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

type EventType string

const (
	EventReservationCreated       EventType = "reservation.created"
	EventReservationStatusChanged EventType = "reservation.status_changed"
	EventInquiryCreated           EventType = "inquiry.created"
)

// Сообщения RabbitMQ
type SiteEvent struct {
	Type          EventType                `json:"type"`
	ReservationID string                   `json:"reservation_id,omitempty"`
	InquiryID     string                   `json:"inquiry_id,omitempty"`
	Name          string                   `json:"name"`
	Date          string                   `json:"date,omitempty"`
	Time          string                   `json:"time,omitempty"`
	Guests        int                      `json:"guests,omitempty"`
	Status        domain.ReservationStatus `json:"status,omitempty"`
	OldStatus     domain.ReservationStatus `json:"old_status,omitempty"`
	Subject       string                   `json:"subject,omitempty"`
	Timestamp     time.Time                `json:"timestamp"`
}

// Интерфейсы Messaging (Adapter/RabbitMQ)
type EventPublisher interface {
	Publish(ctx context.Context, event SiteEvent) error
}

type EventConsumer interface {
	ConsumeEvents(ctx context.Context, handler EventHandler) error
}

type EventHandler func(ctx context.Context, body []byte) error

// Notifier delivers a short text to the restaurant staff (Adapter/Telegram).
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// TextGenerator produces free text for a prompt (Adapter/GenAI).
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
