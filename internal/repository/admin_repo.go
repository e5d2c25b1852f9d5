package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type GormAdminRepo struct {
	db *gorm.DB
}

func NewGormAdminRepo(db *gorm.DB) *GormAdminRepo {
	return &GormAdminRepo{db: db}
}

func (r *GormAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	model := adminModelFromDomain(a)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolationError(err) {
			return fmt.Errorf("%w: admin email already registered", domain.ErrConflict)
		}
		return err
	}
	if a != nil {
		*a = *adminModelToDomain(model)
	}
	return nil
}

func (r *GormAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var model AdminModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return adminModelToDomain(&model), nil
}
