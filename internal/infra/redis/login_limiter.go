package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anandaputra/layanan-tracker/internal/ratelimit"
	goredis "github.com/redis/go-redis/v9"
)

const loginAttemptKeyPrefix = "login_attempts:"

// recordScript bumps the failure counter and restarts the lockout window from
// this attempt, mirroring the in-memory limiter's lastAttempt semantics.
var recordScript = goredis.NewScript(`
redis.call("INCR", KEYS[1])
redis.call("PEXPIRE", KEYS[1], ARGV[1])
return 1
`)

var _ ratelimit.LoginLimiter = (*LoginLimiter)(nil)

// LoginLimiter is a Redis-backed failed-login counter shared across
// instances. Expiry is delegated to key TTLs, so stale counters vanish on
// their own instead of being swept.
type LoginLimiter struct {
	client        *goredis.Client
	maxAttempts   int
	lockoutWindow time.Duration
}

func NewLoginLimiter(client *goredis.Client, maxAttempts int, lockoutWindow time.Duration) (*LoginLimiter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if maxAttempts <= 0 {
		maxAttempts = ratelimit.DefaultMaxAttempts
	}
	if lockoutWindow <= 0 {
		lockoutWindow = ratelimit.DefaultLockoutWindow
	}

	return &LoginLimiter{
		client:        client,
		maxAttempts:   maxAttempts,
		lockoutWindow: lockoutWindow,
	}, nil
}

func (l *LoginLimiter) Check(ctx context.Context, identity, origin string) (ratelimit.Decision, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	key := l.key(identity, origin)

	count, err := l.client.Get(ctx, key).Int()
	if errors.Is(err, goredis.Nil) {
		return ratelimit.Decision{Allowed: true}, nil
	}
	if err != nil {
		return ratelimit.Decision{}, fmt.Errorf("failed to read login attempts: %w", err)
	}

	if count < l.maxAttempts {
		return ratelimit.Decision{Allowed: true}, nil
	}

	remaining, err := l.client.PTTL(ctx, key).Result()
	if err != nil {
		return ratelimit.Decision{}, fmt.Errorf("failed to read lockout ttl: %w", err)
	}
	if remaining <= 0 {
		// Key expired between GET and PTTL.
		return ratelimit.Decision{Allowed: true}, nil
	}

	return ratelimit.Decision{Allowed: false, Remaining: remaining}, nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, identity, origin string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	key := l.key(identity, origin)
	if err := recordScript.Run(ctx, l.client, []string{key}, l.lockoutWindow.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

func (l *LoginLimiter) Clear(ctx context.Context, identity, origin string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := l.client.Del(ctx, l.key(identity, origin)).Err(); err != nil {
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(identity, origin string) string {
	return loginAttemptKeyPrefix + ratelimit.Key(identity, origin)
}
