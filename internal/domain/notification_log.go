package domain

import (
	"fmt"
	"strings"
	"time"
)

// Channel represents the notification transport used for a log entry.
type Channel string

const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelEmail    Channel = "EMAIL"
)

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelWhatsApp, ChannelEmail:
		return true
	}
	return false
}

func ParseChannelFromString(s string) (Channel, error) {
	ch := Channel(strings.ToUpper(strings.TrimSpace(s)))
	if !ch.IsValid() {
		return "", fmt.Errorf("%w: invalid channel %q", ErrValidation, s)
	}
	return ch, nil
}

// SendStatus represents the outcome of a single notification attempt.
type SendStatus string

const (
	SendStatusSuccess SendStatus = "SUCCESS"
	SendStatusFailed  SendStatus = "FAILED"
)

func (s SendStatus) String() string { return string(s) }

func (s SendStatus) IsValid() bool {
	switch s {
	case SendStatusSuccess, SendStatusFailed:
		return true
	}
	return false
}

// NotificationLog records exactly one outbound notification attempt for a
// submission. Entries are append-only; a FAILED entry never rolls back the
// submission it belongs to.
type NotificationLog struct {
	ID           string     `gorm:"type:uuid;primaryKey"`
	SubmissionID string     `gorm:"type:uuid;not null"`
	Channel      Channel    `gorm:"type:varchar(10);not null"`
	SendStatus   SendStatus `gorm:"type:varchar(10);not null"`
	Payload      string     `gorm:"type:text;not null"`
	CreatedAt    time.Time
}
