package phone

import (
	"errors"
	"testing"

	"github.com/anandaputra/layanan-tracker/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local leading zero", input: "081234567890", want: "+6281234567890"},
		{name: "already international", input: "+6281234567890", want: "+6281234567890"},
		{name: "country code without plus", input: "6281234567890", want: "+6281234567890"},
		{name: "separators stripped", input: "0812-3456 7890", want: "+6281234567890"},
		{name: "parentheses stripped", input: "(0812) 3456.7890", want: "+6281234567890"},
		{name: "letters rejected", input: "0812abc", wantErr: true},
		{name: "foreign prefix rejected", input: "+4915112345678", wantErr: true},
		{name: "too short", input: "0812", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("Normalize(%q) error = %v, want ErrValidation", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
