package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/memory"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/sqlite"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

func setupTestService(t *testing.T) (*Service, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store.Values(), memory.NewSessionStore(), memory.NewLoginThrottle(), time.Hour, logger.NewNop())
	return svc, store
}

func TestLoginWithDefaultPassword(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, domain.DefaultAdminPassword, "client-a")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.WithinDuration(t, session.CreatedAt.Add(time.Hour), session.ExpiresAt, time.Second)

	got, err := svc.Authorize(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	other, err := svc.Login(ctx, domain.DefaultAdminPassword, "client-a")
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, other.ID)
}

func TestLoginFailureStartsCooldown(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i <= domain.FreeLoginFailures; i++ {
		_, err := svc.Login(ctx, "wrong", "client-b")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, domain.DefaultAdminPassword, "client-b")
	var throttled *domain.ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Equal(t, 2, throttled.WaitSeconds)
	assert.ErrorIs(t, err, domain.ErrThrottled)

	_, err = svc.Login(ctx, domain.DefaultAdminPassword, "client-c")
	assert.NoError(t, err)
}

func TestFreeFailuresDoNotBlockCorrectPassword(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < domain.FreeLoginFailures; i++ {
		_, err := svc.Login(ctx, "typo", "client-i")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, domain.DefaultAdminPassword, "client-i")
	require.NoError(t, err)

	// success resets the count
	for i := 0; i < domain.FreeLoginFailures; i++ {
		_, err := svc.Login(ctx, "typo", "client-i")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err = svc.Login(ctx, domain.DefaultAdminPassword, "client-i")
	assert.NoError(t, err)
}

func TestAuthorizeRejectsUnknownAndExpiredSessions(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Authorize(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Authorize(ctx, "no-such-session")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	session, err := svc.Login(ctx, domain.DefaultAdminPassword, "client-d")
	require.NoError(t, err)

	svc.now = func() time.Time { return session.ExpiresAt.Add(time.Minute) }
	_, err = svc.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// the expired session was removed, so it stays gone after the clock is reset
	svc.now = func() time.Time { return time.Now().UTC() }
	_, err = svc.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, domain.DefaultAdminPassword, "client-e")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.ID))
	require.NoError(t, svc.Logout(ctx, session.ID))
	require.NoError(t, svc.Logout(ctx, ""))

	_, err = svc.Authorize(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name                   string
		current, next, confirm string
		fields                 []string
	}{
		{"all empty", "", "", "", []string{"currentPassword", "newPassword", "confirmPassword"}},
		{"too short", domain.DefaultAdminPassword, "short", "short", []string{"newPassword"}},
		{"mismatch", domain.DefaultAdminPassword, "longenough", "longenougH", []string{"confirmPassword"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, tt.current, tt.next, tt.confirm)
			var verrs domain.ValidationErrors
			require.ErrorAs(t, err, &verrs)

			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fe.Field
			}
			assert.Equal(t, tt.fields, fields)
		})
	}

	err := svc.ChangePassword(ctx, "not-the-password", "longenough", "longenough")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = store.Values().Get(ctx, domain.ValueAdminPasswordHash)
	assert.ErrorIs(t, err, domain.ErrNotFound, "failed changes must not store a credential")

	require.NoError(t, svc.ChangePassword(ctx, domain.DefaultAdminPassword, "longenough", "longenough"))

	hash, err := store.Values().Get(ctx, domain.ValueAdminPasswordHash)
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", hash)

	_, err = svc.Login(ctx, domain.DefaultAdminPassword, "admin-browser")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "longenough", "admin-browser")
	assert.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, "longenough", "evenlonger", "evenlonger"))
	_, err = svc.Login(ctx, "evenlonger", "client-h")
	assert.NoError(t, err)
}
