package domain

import (
	"regexp"
	"time"
)

const (
	// DefaultAdminPassword is accepted while no credential has been stored.
	DefaultAdminPassword = "admin123"
	MinPasswordLength    = 8

	DefaultWhatsAppNumber = "919998524392"
)

var whatsAppRegex = regexp.MustCompile(`^\d{8,15}$`)

// Session is an authenticated admin session.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ValidatePasswordChange checks the shape of a password change request.
// Whether current matches the stored credential is checked by the caller.
func ValidatePasswordChange(current, next, confirm string) error {
	var errs ValidationErrors

	if current == "" {
		errs.Add("currentPassword", "current password is required")
	}
	if next == "" {
		errs.Add("newPassword", "new password is required")
	}
	if confirm == "" {
		errs.Add("confirmPassword", "password confirmation is required")
	}
	if len(errs) > 0 {
		return errs
	}

	if len(next) < MinPasswordLength {
		errs.Add("newPassword", "new password must be at least 8 characters long")
	}
	if next != confirm {
		errs.Add("confirmPassword", "new passwords do not match")
	}

	return errs.Err()
}

// ValidateWhatsAppNumber accepts 8 to 15 digits and nothing else.
func ValidateWhatsAppNumber(number string) error {
	if !whatsAppRegex.MatchString(number) {
		return ValidationErrors{{Field: "whatsappNumber", Message: "number must contain 8-15 digits only"}}
	}
	return nil
}

// LoginCooldownCapSeconds bounds the wait imposed after repeated failed logins.
const LoginCooldownCapSeconds = 30

// FreeLoginFailures is how many wrong passwords a client may send before any cooldown.
const FreeLoginFailures = 2

// LoginCooldown returns 0 for the first FreeLoginFailures failures,
// then min(30, 2^(failures-FreeLoginFailures)) seconds.
func LoginCooldown(failures int) time.Duration {
	n := failures - FreeLoginFailures
	if n <= 0 {
		return 0
	}
	if n >= 5 {
		return LoginCooldownCapSeconds * time.Second
	}
	return time.Duration(1<<uint(n)) * time.Second
}

// WaitSeconds rounds the time left until `until` up to whole seconds.
func WaitSeconds(now, until time.Time) int {
	if !now.Before(until) {
		return 0
	}
	left := until.Sub(now)
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}
