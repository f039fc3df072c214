package interfaces

import (
	"context"
	"io"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

// Команды для сервисов
type SubmitReservationCommand struct {
	Date            string
	Time            string
	Guests          int
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

type SubmitInquiryCommand struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Интерфейсы Сервисов (Business Logic)
type ContentService interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
	Settings(ctx context.Context) (*domain.RestaurantSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.RestaurantSettings) (*domain.RestaurantSettings, error)
	UpdateStory(ctx context.Context, image, text string, version int64) (*domain.RestaurantSettings, error)
	Menu(ctx context.Context) ([]*domain.MenuItem, error)
	UpsertMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, bool, error)
	DeleteMenuItem(ctx context.Context, id string) error
	WhatsAppNumber(ctx context.Context) (string, error)
	SetWhatsAppNumber(ctx context.Context, number string) error
	SuggestMenuDescription(ctx context.Context, name, category string) string
}

type BookingService interface {
	SubmitReservation(ctx context.Context, cmd SubmitReservationCommand) (*domain.Reservation, error)
	Reservations(ctx context.Context) ([]*domain.Reservation, error)
	PutReservation(ctx context.Context, r *domain.Reservation) error
	UpdateReservationStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
	ExportReservations(ctx context.Context, w io.Writer) error
	SubmitInquiry(ctx context.Context, cmd SubmitInquiryCommand) (*domain.Inquiry, error)
	Inquiries(ctx context.Context) ([]*domain.Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
	SuggestInquiryReply(ctx context.Context, id string) (string, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type AuthService interface {
	Login(ctx context.Context, password, clientKey string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Authorize(ctx context.Context, sessionID string) (*domain.Session, error)
	ChangePassword(ctx context.Context, current, next, confirm string) error
}

type SuggestionService interface {
	MenuDescription(ctx context.Context, name, category string) string
	InquiryReply(ctx context.Context, brandName, customerName, message string) string
}

// Ответы Dashboard
type DashboardStats struct {
	Reservations        int `json:"reservations"`
	MenuItems           int `json:"menuItems"`
	Inquiries           int `json:"inquiries"`
	PendingReservations int `json:"pendingReservations"`
}
