package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	session := &domain.Session{ID: "abc", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, session.ExpiresAt, got.ExpiresAt)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, len(store.sessions))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, len(store.sessions), "expired session is removed on lookup")

	_, err = store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := &domain.Session{ID: "abc", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Create(ctx, session))
	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "abc"))

	_, err := store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoginThrottle(t *testing.T) {
	ctx := context.Background()
	throttle := NewLoginThrottle()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	throttle.now = func() time.Time { return now }

	wait, err := throttle.WaitSeconds(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 0, wait)

	for i := 0; i < domain.FreeLoginFailures; i++ {
		require.NoError(t, throttle.RecordFailure(ctx, "10.0.0.1"))
	}
	wait, _ = throttle.WaitSeconds(ctx, "10.0.0.1")
	assert.Equal(t, 0, wait, "first failures are free")

	require.NoError(t, throttle.RecordFailure(ctx, "10.0.0.1"))
	wait, _ = throttle.WaitSeconds(ctx, "10.0.0.1")
	assert.Equal(t, 2, wait)

	require.NoError(t, throttle.RecordFailure(ctx, "10.0.0.1"))
	wait, _ = throttle.WaitSeconds(ctx, "10.0.0.1")
	assert.Equal(t, 4, wait)

	wait, _ = throttle.WaitSeconds(ctx, "10.0.0.2")
	assert.Equal(t, 0, wait, "other clients are not throttled")

	now = now.Add(5 * time.Second)
	wait, _ = throttle.WaitSeconds(ctx, "10.0.0.1")
	assert.Equal(t, 0, wait)

	require.NoError(t, throttle.RecordSuccess(ctx, "10.0.0.1"))
	require.NoError(t, throttle.RecordFailure(ctx, "10.0.0.1"))
	wait, _ = throttle.WaitSeconds(ctx, "10.0.0.1")
	assert.Equal(t, 0, wait, "success resets the failure count")
}
