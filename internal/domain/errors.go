package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation marks malformed or missing input the caller can correct.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials is returned for unknown identities and wrong
	// passwords alike, so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRateLimited marks a login attempt rejected by the lockout policy.
	ErrRateLimited = errors.New("too many failed attempts")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrConflict marks a uniqueness violation, e.g. a duplicate admin email.
	ErrConflict = errors.New("record already exists")
)

// RateLimitError carries the remaining lockout time alongside ErrRateLimited.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: try again in %d minutes", ErrRateLimited, e.RetryAfterMinutes())
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// RetryAfterMinutes returns the remaining lockout rounded up to whole minutes.
func (e *RateLimitError) RetryAfterMinutes() int {
	if e == nil || e.RetryAfter <= 0 {
		return 0
	}
	minutes := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
