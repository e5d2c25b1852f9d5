package ratelimit

import (
	"context"
	"strings"
	"time"
)

// LoginLimiter throttles failed login attempts per (identity, origin address)
// pair. Check must be consulted before trusting any stored count; expiry of
// stale counters is lazy, there is no background sweep.
type LoginLimiter interface {
	// Check reports whether another attempt is allowed and, when denied, how
	// long the lockout still lasts.
	Check(ctx context.Context, identity, origin string) (Decision, error)
	// RecordFailure bumps the failure counter, creating it if absent.
	RecordFailure(ctx context.Context, identity, origin string) error
	// Clear removes the counter entirely, called on successful authentication.
	Clear(ctx context.Context, identity, origin string) error
}

// Decision is the outcome of a limiter check.
type Decision struct {
	Allowed   bool
	Remaining time.Duration // lockout left, 0 when allowed
}

// Key builds the composite counter key from a normalized identity and origin.
func Key(identity, origin string) string {
	return strings.ToLower(strings.TrimSpace(identity)) + ":" + strings.TrimSpace(origin)
}
