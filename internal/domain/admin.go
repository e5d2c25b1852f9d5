package domain

import "time"

// Admin is a credential record for the review console. PasswordHash is the
// bcrypt hash of the admin's password and must never be logged or serialized
// into responses.
type Admin struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password;type:varchar(100);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
