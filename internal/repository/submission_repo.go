package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"gorm.io/gorm"
)

// SortField is a whitelisted submission list sort key.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByStatus    SortField = "status"
)

var sortColumns = map[SortField]string{
	SortByCreatedAt: "created_at",
	SortByStatus:    "status",
}

// ListParams filters and orders the submission listing. Query matches nama and
// email case-insensitively as a substring.
type ListParams struct {
	Query     string
	SortBy    SortField
	Ascending bool
}

type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) error
	GetByTrackingCode(ctx context.Context, trackingCode string) (*domain.Submission, error)
	List(ctx context.Context, params ListParams) ([]domain.Submission, error)
	UpdateStatus(ctx context.Context, trackingCode string, status domain.Status) (*domain.Submission, error)
}

type GormSubmissionRepo struct {
	db *gorm.DB
}

func NewGormSubmissionRepo(db *gorm.DB) *GormSubmissionRepo {
	return &GormSubmissionRepo{db: db}
}

func (r *GormSubmissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	model := submissionModelFromDomain(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolationError(err) {
			return fmt.Errorf("%w: tracking code collision", domain.ErrConflict)
		}
		return err
	}
	if s != nil {
		*s = *submissionModelToDomain(model)
	}
	return nil
}

func (r *GormSubmissionRepo) GetByTrackingCode(ctx context.Context, trackingCode string) (*domain.Submission, error) {
	var model SubmissionModel
	err := r.db.WithContext(ctx).
		Where("tracking_code = ?", strings.TrimSpace(trackingCode)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return submissionModelToDomain(&model), nil
}

func (r *GormSubmissionRepo) List(ctx context.Context, params ListParams) ([]domain.Submission, error) {
	query := r.db.WithContext(ctx).Model(&SubmissionModel{})

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("nama ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = sortColumns[SortByCreatedAt]
	}
	direction := "DESC"
	if params.Ascending {
		direction = "ASC"
	}

	var models []SubmissionModel
	err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	submissions := make([]domain.Submission, 0, len(models))
	for i := range models {
		submissions = append(submissions, *submissionModelToDomain(&models[i]))
	}

	return submissions, nil
}

func (r *GormSubmissionRepo) UpdateStatus(ctx context.Context, trackingCode string, status domain.Status) (*domain.Submission, error) {
	result := r.db.WithContext(ctx).
		Model(&SubmissionModel{}).
		Where("tracking_code = ?", strings.TrimSpace(trackingCode)).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByTrackingCode(ctx, trackingCode)
}
