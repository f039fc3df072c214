package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/YelzhanWeb/goodplatters/internal/domain"
)

// failure counters are forgotten after a quiet day
const failureWindow = 24 * time.Hour

// LoginThrottle shares failed login state between site instances.
type LoginThrottle struct {
	client *goredis.Client
}

func NewLoginThrottle(client *goredis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

func failuresKey(key string) string { return keyPrefix + "login:failures:" + key }
func cooldownKey(key string) string { return keyPrefix + "login:cooldown:" + key }

func (t *LoginThrottle) WaitSeconds(ctx context.Context, key string) (int, error) {
	ttl, err := t.client.PTTL(ctx, cooldownKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read login cooldown: %w", err)
	}
	// -2 missing, -1 no expiry
	if ttl <= 0 {
		return 0, nil
	}
	now := time.Now()
	return domain.WaitSeconds(now, now.Add(ttl)), nil
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, failuresKey(key))
	pipe.Expire(ctx, failuresKey(key), failureWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}

	cooldown := domain.LoginCooldown(int(incr.Val()))
	if cooldown <= 0 {
		return nil
	}
	if err := t.client.Set(ctx, cooldownKey(key), "1", cooldown).Err(); err != nil {
		return fmt.Errorf("failed to set login cooldown: %w", err)
	}
	return nil
}

func (t *LoginThrottle) RecordSuccess(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, failuresKey(key), cooldownKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset login throttle: %w", err)
	}
	return nil
}
