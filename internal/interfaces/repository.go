package interfaces

import (
	"context"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

// Record store ports (Adapter/Postgres, Adapter/SQLite).
// Every entity type lives in its own keyed table behind one Store.

type MenuRepository interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	// Upsert inserts the item or replaces the one with the same id.
	// A non-zero Version must match the stored one.
	Upsert(ctx context.Context, item *domain.MenuItem) (created bool, err error)
	Delete(ctx context.Context, id string) (deleted bool, err error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	List(ctx context.Context) ([]*domain.Reservation, error)
	Get(ctx context.Context, id string) (*domain.Reservation, error)
	Put(ctx context.Context, r *domain.Reservation) error
}

type InquiryRepository interface {
	Create(ctx context.Context, inq *domain.Inquiry) error
	List(ctx context.Context) ([]*domain.Inquiry, error)
	Get(ctx context.Context, id string) (*domain.Inquiry, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	// Get returns domain.ErrNotFound until settings are saved once.
	Get(ctx context.Context) (*domain.RestaurantSettings, error)
	Save(ctx context.Context, s *domain.RestaurantSettings) error
}

type ValueRepository interface {
	// Get returns domain.ErrNotFound for unknown keys.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type Store interface {
	Menu() MenuRepository
	Reservations() ReservationRepository
	Inquiries() InquiryRepository
	Settings() SettingsRepository
	Values() ValueRepository

	// ReplaceAll overwrites menu, reservations, inquiries and settings in one transaction.
	ReplaceAll(ctx context.Context, snapshot *domain.Snapshot) error
	Ping(ctx context.Context) error
	Close() error
}

// Session ports (Adapter/Redis, Adapter/Memory).

type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type LoginThrottle interface {
	WaitSeconds(ctx context.Context, key string) (int, error)
	RecordFailure(ctx context.Context, key string) error
	RecordSuccess(ctx context.Context, key string) error
}
