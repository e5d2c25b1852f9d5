// Package phone normalizes Indonesian phone numbers to canonical +62 form.
package phone

import (
	"fmt"
	"strings"

	"github.com/anandaputra/layanan-tracker/internal/domain"
)

const countryCode = "62"

// Normalize converts a raw Indonesian phone number to the canonical
// international format, e.g. "0812-3456 7890" becomes "+6281234567890".
// Accepted inputs: local numbers starting with 0, numbers already carrying the
// 62 country code with or without a leading plus.
func Normalize(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// separators and the plus sign are dropped
		default:
			return "", fmt.Errorf("%w: invalid character %q in phone number", domain.ErrValidation, r)
		}
	}

	number := digits.String()
	switch {
	case strings.HasPrefix(number, "0"):
		number = countryCode + number[1:]
	case strings.HasPrefix(number, countryCode):
		// already in country-code form
	default:
		return "", fmt.Errorf("%w: phone number must start with 0 or +62", domain.ErrValidation)
	}

	// 62 plus an 8..12 digit subscriber number.
	if len(number) < 10 || len(number) > 15 {
		return "", fmt.Errorf("%w: phone number has invalid length", domain.ErrValidation)
	}

	return "+" + number, nil
}
