package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; the production cost is set by config.
	hash, err := HashPassword("Rahasia#Kuat123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if strings.Contains(hash, "Rahasia") {
		t.Fatal("hash must not contain the plaintext password")
	}

	ok, err := VerifyPassword("Rahasia#Kuat123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("salah-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() wrong password error = %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("whatever", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected error for malformed stored hash")
	}
}

func TestHashPasswordCostFallback(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Rahasia#Kuat123", 99)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("cost = %d, want %d", cost, DefaultBcryptCost)
	}
}

func TestCheckStrength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		password       string
		wantValid      bool
		wantViolations int
	}{
		{name: "strong password", password: "Str0ng!Pass", wantValid: true},
		{name: "too short reports length", password: "Ab1!", wantValid: false, wantViolations: 1},
		{name: "missing digit only", password: "Abcdefgh!", wantValid: false, wantViolations: 1},
		{name: "missing several classes", password: "abcdefgh", wantValid: false, wantViolations: 3},
		{name: "too long", password: strings.Repeat("Ab1!", 40), wantValid: false, wantViolations: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CheckStrength(tt.password)
			if got.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (violations: %v)", got.Valid, tt.wantValid, got.Violations)
			}
			if !tt.wantValid && len(got.Violations) != tt.wantViolations {
				t.Fatalf("violations = %d (%v), want %d", len(got.Violations), got.Violations, tt.wantViolations)
			}
		})
	}
}

func TestIsCommonPassword(t *testing.T) {
	t.Parallel()

	if !IsCommonPassword("PASSWORD") {
		t.Fatal("expected case-insensitive match for common password")
	}
	if IsCommonPassword("WS-not-on-the-list-9") {
		t.Fatal("expected uncommon password to pass")
	}
	// Pure function of input and deny-list.
	if IsCommonPassword("qwerty") != IsCommonPassword("qwerty") {
		t.Fatal("expected identical results for repeated calls")
	}
}
