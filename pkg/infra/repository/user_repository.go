package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainErrors "github.com/SentraLabs/Sentra/pkg/domain/errors"
	"github.com/SentraLabs/Sentra/pkg/domain/user"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var entity user.User
	err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainErrors.NewNotFoundError("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *userRepository) CountBanned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("banned = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) CountWarned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("warning_count > 0").Count(&count).Error
	return count, err
}

func (r *userRepository) CountHighRisk(ctx context.Context, minScore float64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).
		Where("risk_score >= ?", minScore).Count(&count).Error
	return count, err
}
