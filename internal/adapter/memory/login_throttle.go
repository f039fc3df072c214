package memory

import (
	"context"
	"sync"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

type throttleEntry struct {
	failures      int
	cooldownUntil time.Time
}

// LoginThrottle tracks failed logins per client key in process memory.
type LoginThrottle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
	now     func() time.Time
}

func NewLoginThrottle() *LoginThrottle {
	return &LoginThrottle{
		entries: make(map[string]*throttleEntry),
		now:     time.Now,
	}
}

func (t *LoginThrottle) WaitSeconds(ctx context.Context, key string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		return 0, nil
	}
	return domain.WaitSeconds(t.now(), entry.cooldownUntil), nil
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		entry = &throttleEntry{}
		t.entries[key] = entry
	}
	entry.failures++
	entry.cooldownUntil = t.now().Add(domain.LoginCooldown(entry.failures))
	return nil
}

func (t *LoginThrottle) RecordSuccess(ctx context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, key)
	return nil
}
