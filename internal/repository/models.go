package repository

import (
	"time"

	"github.com/anandaputra/layanan-tracker/internal/domain"
)

// AdminModel is the persistence model for the admins table.
type AdminModel struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"column:password;type:varchar(100);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminModel) TableName() string {
	return "admins"
}

// SubmissionModel is the persistence model for the submissions table.
type SubmissionModel struct {
	ID           string        `gorm:"type:uuid;primaryKey"`
	TrackingCode string        `gorm:"type:varchar(40);not null"`
	Name         string        `gorm:"column:nama;type:varchar(255);not null"`
	NationalID   string        `gorm:"column:nik;type:varchar(16);not null"`
	Email        string        `gorm:"type:varchar(255);not null"`
	Phone        string        `gorm:"column:no_wa;type:varchar(32);not null"`
	ServiceType  string        `gorm:"column:jenis_layanan;type:varchar(100);not null"`
	Consent      bool          `gorm:"not null"`
	Status       domain.Status `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubmissionModel) TableName() string {
	return "submissions"
}

// NotificationLogModel is the persistence model for notification_logs.
type NotificationLogModel struct {
	ID           string            `gorm:"type:uuid;primaryKey"`
	SubmissionID string            `gorm:"type:uuid;not null"`
	Channel      domain.Channel    `gorm:"type:varchar(10);not null"`
	SendStatus   domain.SendStatus `gorm:"column:send_status;type:varchar(10);not null"`
	Payload      string            `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

func (NotificationLogModel) TableName() string {
	return "notification_logs"
}

func adminModelFromDomain(a *domain.Admin) *AdminModel {
	if a == nil {
		return nil
	}

	return &AdminModel{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func adminModelToDomain(m *AdminModel) *domain.Admin {
	if m == nil {
		return nil
	}

	return &domain.Admin{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func submissionModelFromDomain(s *domain.Submission) *SubmissionModel {
	if s == nil {
		return nil
	}

	return &SubmissionModel{
		ID:           s.ID,
		TrackingCode: s.TrackingCode,
		Name:         s.Name,
		NationalID:   s.NationalID,
		Email:        s.Email,
		Phone:        s.Phone,
		ServiceType:  s.ServiceType,
		Consent:      s.Consent,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func submissionModelToDomain(m *SubmissionModel) *domain.Submission {
	if m == nil {
		return nil
	}

	return &domain.Submission{
		ID:           m.ID,
		TrackingCode: m.TrackingCode,
		Name:         m.Name,
		NationalID:   m.NationalID,
		Email:        m.Email,
		Phone:        m.Phone,
		ServiceType:  m.ServiceType,
		Consent:      m.Consent,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func notificationLogModelFromDomain(l *domain.NotificationLog) *NotificationLogModel {
	if l == nil {
		return nil
	}

	return &NotificationLogModel{
		ID:           l.ID,
		SubmissionID: l.SubmissionID,
		Channel:      l.Channel,
		SendStatus:   l.SendStatus,
		Payload:      l.Payload,
		CreatedAt:    l.CreatedAt,
	}
}

func notificationLogModelToDomain(m *NotificationLogModel) *domain.NotificationLog {
	if m == nil {
		return nil
	}

	return &domain.NotificationLog{
		ID:           m.ID,
		SubmissionID: m.SubmissionID,
		Channel:      m.Channel,
		SendStatus:   m.SendStatus,
		Payload:      m.Payload,
		CreatedAt:    m.CreatedAt,
	}
}
