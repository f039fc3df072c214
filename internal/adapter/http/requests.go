package http

import "github.com/YelzhanWeb/goodplatters/internal/domain"

// ReservationRequest has no id or status: both are assigned by the server.
type ReservationRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	Guests          int    `json:"guests" validate:"min=1,max=20"`
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=30"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

type InquiryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type StatusRequest struct {
	Status domain.ReservationStatus `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

type StoryRequest struct {
	StoryImage string `json:"storyImage" validate:"max=2048"`
	StoryText  string `json:"storyText" validate:"required"`
	Version    int64  `json:"version"`
}

type WhatsAppRequest struct {
	Number string `json:"whatsappNumber" validate:"required"`
}

// PasswordRequest is checked field by field in the auth service so that
// empty values report the same messages everywhere.
type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type DescriptionRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Category string `json:"category" validate:"required"`
}

type SuggestionResponse struct {
	Text string `json:"text"`
}

type ReservationResponse struct {
	ID     string                   `json:"id"`
	Status domain.ReservationStatus `json:"status"`
}
