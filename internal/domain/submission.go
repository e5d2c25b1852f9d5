package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a submission.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
	StatusRejected   Status = "REJECTED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusComplete, StatusRejected:
		return true
	}
	return false
}

func ParseStatusFromString(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid status %q", ErrValidation, s)
	}
	return st, nil
}

// TrackingCodePrefix is the public prefix of every issued tracking code.
const TrackingCodePrefix = "WS"

const (
	trackingSuffixLen   = 6
	trackingSuffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewTrackingCode builds a tracking code of the form WS-<epochMillis>-<6 base36
// chars>. randIntn supplies the random suffix so callers can pin it in tests.
func NewTrackingCode(now time.Time, randIntn func(n int) int) string {
	suffix := make([]byte, trackingSuffixLen)
	for i := range suffix {
		suffix[i] = trackingSuffixChars[randIntn(len(trackingSuffixChars))]
	}
	return fmt.Sprintf("%s-%d-%s", TrackingCodePrefix, now.UnixMilli(), suffix)
}

// Submission is a citizen service request tracked by its public tracking code.
type Submission struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	TrackingCode string `gorm:"type:varchar(40);not null;uniqueIndex"`
	Name         string `gorm:"column:nama;type:varchar(255);not null"`
	NationalID   string `gorm:"column:nik;type:varchar(16);not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"column:no_wa;type:varchar(32);not null"`
	ServiceType  string `gorm:"column:jenis_layanan;type:varchar(100);not null"`
	Consent      bool   `gorm:"not null"`
	Status       Status `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: nama is required", ErrValidation)
	}
	if strings.TrimSpace(s.NationalID) == "" {
		return fmt.Errorf("%w: nik is required", ErrValidation)
	}
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if strings.TrimSpace(s.Phone) == "" {
		return fmt.Errorf("%w: no_wa is required", ErrValidation)
	}
	if strings.TrimSpace(s.ServiceType) == "" {
		return fmt.Errorf("%w: jenis_layanan is required", ErrValidation)
	}
	if !s.Consent {
		return fmt.Errorf("%w: consent is required", ErrValidation)
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, s.Status)
	}
	return nil
}
