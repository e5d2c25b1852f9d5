package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMaxAttempts   = 5
	DefaultLockoutWindow = 15 * time.Minute
)

type attemptEntry struct {
	count       int
	lastAttempt time.Time
}

var _ LoginLimiter = (*MemoryLoginLimiter)(nil)

// MemoryLoginLimiter keeps failure counters in a process-local map. State is
// volatile: it does not survive restarts and is not shared across instances.
// Multi-instance deployments should use the Redis-backed limiter instead.
type MemoryLoginLimiter struct {
	mu            sync.Mutex
	entries       map[string]attemptEntry
	maxAttempts   int
	lockoutWindow time.Duration
	now           func() time.Time
}

func NewMemoryLoginLimiter(maxAttempts int, lockoutWindow time.Duration) *MemoryLoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if lockoutWindow <= 0 {
		lockoutWindow = DefaultLockoutWindow
	}

	return &MemoryLoginLimiter{
		entries:       make(map[string]attemptEntry),
		maxAttempts:   maxAttempts,
		lockoutWindow: lockoutWindow,
		now:           time.Now,
	}
}

func (l *MemoryLoginLimiter) Check(_ context.Context, identity, origin string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[Key(identity, origin)]
	if !ok {
		return Decision{Allowed: true}, nil
	}

	elapsed := now.Sub(entry.lastAttempt)
	if elapsed > l.lockoutWindow {
		// Lazy expiry: the stale counter is ignored here and overwritten on
		// the next RecordFailure.
		return Decision{Allowed: true}, nil
	}

	if entry.count >= l.maxAttempts {
		return Decision{Allowed: false, Remaining: l.lockoutWindow - elapsed}, nil
	}

	return Decision{Allowed: true}, nil
}

func (l *MemoryLoginLimiter) RecordFailure(_ context.Context, identity, origin string) error {
	now := l.now()
	key := Key(identity, origin)

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.entries[key]
	if !entry.lastAttempt.IsZero() && now.Sub(entry.lastAttempt) > l.lockoutWindow {
		entry.count = 0
	}
	entry.count++
	entry.lastAttempt = now
	l.entries[key] = entry
	return nil
}

func (l *MemoryLoginLimiter) Clear(_ context.Context, identity, origin string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, Key(identity, origin))
	return nil
}
