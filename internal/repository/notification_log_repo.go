package repository

import (
	"context"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"gorm.io/gorm"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, l *domain.NotificationLog) error
	GetBySubmissionID(ctx context.Context, submissionID string) ([]domain.NotificationLog, error)
}

type GormNotificationLogRepo struct {
	db *gorm.DB
}

func NewGormNotificationLogRepo(db *gorm.DB) *GormNotificationLogRepo {
	return &GormNotificationLogRepo{db: db}
}

func (r *GormNotificationLogRepo) Create(ctx context.Context, l *domain.NotificationLog) error {
	model := notificationLogModelFromDomain(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if l != nil {
		*l = *notificationLogModelToDomain(model)
	}
	return nil
}

func (r *GormNotificationLogRepo) GetBySubmissionID(ctx context.Context, submissionID string) ([]domain.NotificationLog, error) {
	var models []NotificationLogModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	logs := make([]domain.NotificationLog, 0, len(models))
	for i := range models {
		logs = append(logs, *notificationLogModelToDomain(&models[i]))
	}

	return logs, nil
}
