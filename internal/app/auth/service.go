package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

const sessionTokenBytes = 32

// Service guards the admin area with a single shared password.
// Sessions expire after ttl; failed logins are throttled per client key.
type Service struct {
	values   interfaces.ValueRepository
	sessions interfaces.SessionStore
	throttle interfaces.LoginThrottle
	ttl      time.Duration
	logger   logger.Logger
	now      func() time.Time
}

func NewService(values interfaces.ValueRepository, sessions interfaces.SessionStore, throttle interfaces.LoginThrottle, ttl time.Duration, logger logger.Logger) *Service {
	return &Service{
		values:   values,
		sessions: sessions,
		throttle: throttle,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login opens a session when password matches the stored credential
// (or the default password while none is stored).
func (s *Service) Login(ctx context.Context, password, clientKey string) (*domain.Session, error) {
	wait, err := s.throttle.WaitSeconds(ctx, clientKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check login throttle: %w", err)
	}
	if wait > 0 {
		return nil, &domain.ThrottledError{WaitSeconds: wait}
	}

	ok, err := s.verify(ctx, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		failedLogins.Inc()
		if err := s.throttle.RecordFailure(ctx, clientKey); err != nil {
			s.logger.Error("throttle_record_failed", "Failed to record login failure", "", nil, err)
		}
		s.logger.Info("login_failed", "Admin login rejected", "", map[string]interface{}{"client": clientKey})
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.RecordSuccess(ctx, clientKey); err != nil {
		s.logger.Error("throttle_reset_failed", "Failed to reset login throttle", "", nil, err)
	}

	token, err := randomToken(sessionTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := s.now()
	session := &domain.Session{
		ID:        token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("login_succeeded", "Admin session opened", "", map[string]interface{}{
		"expires_at": session.ExpiresAt,
	})
	return session, nil
}

// Logout ends the session. Unknown sessions are ignored.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("logout", "Admin session closed", "", nil)
	return nil
}

// Authorize returns the live session for sessionID or domain.ErrUnauthorized.
func (s *Service) Authorize(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.Error("session_cleanup_failed", "Failed to delete expired session", "", nil, err)
		}
		return nil, domain.ErrUnauthorized
	}

	return session, nil
}

// ChangePassword replaces the shared credential. Nothing is stored unless
// every check passes.
func (s *Service) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if err := domain.ValidatePasswordChange(current, next, confirm); err != nil {
		return err
	}

	ok, err := s.verify(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.values.Set(ctx, domain.ValueAdminPasswordHash, string(hash)); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	s.logger.Info("password_changed", "Admin password changed", "", nil)
	return nil
}

func (s *Service) verify(ctx context.Context, password string) (bool, error) {
	hash, err := s.values.Get(ctx, domain.ValueAdminPasswordHash)
	if errors.Is(err, domain.ErrNotFound) {
		return password == domain.DefaultAdminPassword, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load credential: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
