package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Inquiry is a message left through the contact form
type Inquiry struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// NewInquiry creates an inquiry with a fresh id and creation timestamp
func NewInquiry(name, email, subject, message string) (*Inquiry, error) {
	inq := &Inquiry{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
		Date:    time.Now().UTC(),
	}

	if err := inq.Validate(); err != nil {
		return nil, err
	}
	return inq, nil
}

// Validate applies business validation rules
func (i *Inquiry) Validate() error {
	var errs ValidationErrors

	if i.ID == "" {
		errs.Add("id", "id is required")
	}
	if i.Name == "" || len(i.Name) > 100 {
		errs.Add("name", "name must be 1-100 characters")
	}
	if !emailRegex.MatchString(i.Email) {
		errs.Add("email", "email address is invalid")
	}
	if i.Subject == "" || len(i.Subject) > 200 {
		errs.Add("subject", "subject must be 1-200 characters")
	}
	if i.Message == "" {
		errs.Add("message", "message is required")
	} else if len(i.Message) > 5000 {
		errs.Add("message", "message must not exceed 5000 characters")
	}

	return errs.Err()
}
