package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinGuests = 1
	MaxGuests = 20
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9()\-.\s]+$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// Reservation represents a table booking request
type Reservation struct {
	ID              string            `json:"id"`
	Date            string            `json:"date"`
	Time            string            `json:"time"`
	Guests          int               `json:"guests"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Status          ReservationStatus `json:"status"`
	SpecialRequests string            `json:"specialRequests,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	Version         int64             `json:"version,omitempty"`
}

// NewReservation creates a pending reservation with a fresh id.
// Whatever id or status the caller had in mind is not consulted.
func NewReservation(date, at string, guests int, name, email, phone, specialRequests string) (*Reservation, error) {
	r := &Reservation{
		ID:              uuid.NewString(),
		Date:            strings.TrimSpace(date),
		Time:            strings.TrimSpace(at),
		Guests:          guests,
		Name:            strings.TrimSpace(name),
		Email:           strings.TrimSpace(email),
		Phone:           strings.TrimSpace(phone),
		Status:          StatusPending,
		SpecialRequests: strings.TrimSpace(specialRequests),
		CreatedAt:       time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate applies business validation rules
func (r *Reservation) Validate() error {
	var errs ValidationErrors

	if r.ID == "" {
		errs.Add("id", "id is required")
	}

	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		errs.Add("date", "date must be formatted as YYYY-MM-DD")
	}

	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		errs.Add("time", "time must be formatted as HH:MM")
	}

	if r.Guests < MinGuests || r.Guests > MaxGuests {
		errs.Add("guests", "guests must be between 1 and 20")
	}

	if r.Name == "" || len(r.Name) > 100 {
		errs.Add("name", "name must be 1-100 characters")
	}

	if !emailRegex.MatchString(r.Email) {
		errs.Add("email", "email address is invalid")
	}

	if !ValidPhone(r.Phone) {
		errs.Add("phone", "phone number is invalid")
	}

	if !r.Status.Valid() {
		errs.Add("status", "status must be one of PENDING, CONFIRMED, CANCELLED")
	}

	if len(r.SpecialRequests) > 1000 {
		errs.Add("specialRequests", "special requests must not exceed 1000 characters")
	}

	return errs.Err()
}

// TransitionTo moves the reservation to a new status.
// Re-applying the current status is accepted and changes nothing.
func (r *Reservation) TransitionTo(newStatus ReservationStatus) error {
	if r.Status == newStatus {
		return nil
	}
	if !r.CanTransitionTo(newStatus) {
		return ErrInvalidStatusTransition
	}
	r.Status = newStatus
	return nil
}

// CanTransitionTo checks if the reservation can move to the new status
func (r *Reservation) CanTransitionTo(newStatus ReservationStatus) bool {
	validTransitions := map[ReservationStatus][]ReservationStatus{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {},
		StatusCancelled: {},
	}

	for _, s := range validTransitions[r.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// ValidPhone accepts common phone notations carrying 7 to 15 digits.
func ValidPhone(phone string) bool {
	if !phoneRegex.MatchString(phone) {
		return false
	}
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	return len(digits) >= 7 && len(digits) <= 15
}
