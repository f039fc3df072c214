package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginCooldown(t *testing.T) {
	assert.Equal(t, time.Duration(0), LoginCooldown(0))
	assert.Equal(t, time.Duration(0), LoginCooldown(1))
	assert.Equal(t, time.Duration(0), LoginCooldown(2))
	assert.Equal(t, 2*time.Second, LoginCooldown(3))
	assert.Equal(t, 4*time.Second, LoginCooldown(4))
	assert.Equal(t, 16*time.Second, LoginCooldown(6))
	assert.Equal(t, 30*time.Second, LoginCooldown(7))
	assert.Equal(t, 30*time.Second, LoginCooldown(40))
}

func TestWaitSeconds(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, WaitSeconds(now, now))
	assert.Equal(t, 0, WaitSeconds(now, now.Add(-time.Second)))
	assert.Equal(t, 1, WaitSeconds(now, now.Add(200*time.Millisecond)))
	assert.Equal(t, 2, WaitSeconds(now, now.Add(2*time.Second)))
	assert.Equal(t, 3, WaitSeconds(now, now.Add(2*time.Second+time.Nanosecond)))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}

	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}

func TestValidateWhatsAppNumber(t *testing.T) {
	assert.NoError(t, ValidateWhatsAppNumber("12345678"))
	assert.NoError(t, ValidateWhatsAppNumber("123456789012345"))
	assert.Error(t, ValidateWhatsAppNumber("1234567"))
	assert.Error(t, ValidateWhatsAppNumber("1234567890123456"))
	assert.Error(t, ValidateWhatsAppNumber("+12345678"))
	assert.Error(t, ValidateWhatsAppNumber(""))
}
