package security

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost matches the work factor used when admins were first
	// provisioned; lowering it would silently weaken new hashes.
	DefaultBcryptCost = 12

	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// HashPassword hashes a plaintext password with bcrypt. A cost outside the
// bcrypt-supported range falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// A mismatch returns (false, nil); an error is returned only for a malformed
// stored hash.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, fmt.Errorf("failed to compare password: %w", err)
}

// StrengthResult lists every policy rule a candidate password violates, not
// just the first one, so callers can report them all at once.
type StrengthResult struct {
	Valid      bool
	Violations []string
}

// CheckStrength enforces the creation-time password policy: length bounds plus
// lowercase, uppercase, digit and symbol character classes. Login-time checks
// are intentionally looser (see service.AuthService).
func CheckStrength(password string) StrengthResult {
	var violations []string

	if len(password) < MinPasswordLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters long", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		violations = append(violations, fmt.Sprintf("password must be at most %d characters long", MaxPasswordLength))
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		violations = append(violations, "password must contain at least one digit")
	}
	if !strings.ContainsAny(password, `!@#$%^&*()_+-=[]{};':"\|,.<>/?`) {
		violations = append(violations, "password must contain at least one symbol")
	}

	return StrengthResult{Valid: len(violations) == 0, Violations: violations}
}

var commonPasswords = map[string]struct{}{
	"password": {}, "123456": {}, "123456789": {}, "qwerty": {}, "abc123": {},
	"password123": {}, "admin": {}, "letmein": {}, "welcome": {}, "monkey": {},
	"1234567890": {}, "dragon": {}, "master": {}, "hello": {}, "freedom": {},
	"whatever": {}, "qazwsx": {}, "trustno1": {}, "jordan": {}, "harley": {},
	"ranger": {}, "hunter": {}, "buster": {}, "soccer": {}, "hockey": {},
	"killer": {}, "george": {}, "andrew": {}, "charlie": {}, "superman": {},
	"dallas": {}, "jessica": {}, "pepper": {}, "1234": {}, "rocket": {},
	"purple": {}, "shadow": {}, "michael": {}, "lauren": {}, "jennifer": {},
	"hannah": {}, "michelle": {}, "samantha": {},
	"p@ssw0rd": {}, "p@ssword1": {}, "password1!": {}, "password123!": {},
}

// IsCommonPassword reports whether the password appears in the fixed deny-list
// of known weak passwords. The check is case-insensitive.
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}
