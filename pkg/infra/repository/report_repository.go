package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SentraLabs/Sentra/pkg/domain/report"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{db: db}
}

func (r *reportRepository) FindAgainstUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]report.Report, error) {
	var reports []report.Report
	err := r.db.WithContext(ctx).
		Where("reported_user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindByReporterSince(ctx context.Context, reporterID uuid.UUID, since time.Time) ([]report.Report, error) {
	var reports []report.Report
	err := r.db.WithContext(ctx).
		Where("reporter_id = ? AND created_at >= ?", reporterID, since).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&report.Report{}).
		Where("status = ?", report.StatusPending).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&report.Report{}).
		Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&report.Report{}).
		Where("created_at >= ? AND created_at < ?", from, to).Count(&count).Error
	return count, err
}
