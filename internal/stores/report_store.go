package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taka_track/internal/models"
)

// GormReportStore backs ReportStore with the shared GORM handle.
type GormReportStore struct {
	db *gorm.DB
}

func NewGormReportStore(db *gorm.DB) *GormReportStore {
	return &GormReportStore{db: db}
}

func (s *GormReportStore) Create(ctx context.Context, report *models.Report) error {
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *GormReportStore) ListByUser(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *GormReportStore) List(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	q := s.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if filter.Bounds != nil {
		// Bounds carries XY order: X is longitude, Y is latitude.
		q = q.Where("longitude BETWEEN ? AND ?", filter.Bounds.Min(0), filter.Bounds.Max(0)).
			Where("latitude BETWEEN ? AND ?", filter.Bounds.Min(1), filter.Bounds.Max(1))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var reports []models.Report
	err := q.Find(&reports).Error
	return reports, err
}

func (s *GormReportStore) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := s.db.WithContext(ctx).Preload("User").First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *GormReportStore) Save(ctx context.Context, report *models.Report) error {
	return s.db.WithContext(ctx).Save(report).Error
}

func (s *GormReportStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormReportStore) Stats(ctx context.Context) (ReportStats, error) {
	var stats ReportStats
	if err := s.db.WithContext(ctx).Model(&models.Report{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("status = ?", models.StatusPending).Count(&stats.Pending).Error; err != nil {
		return stats, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("status = ?", models.StatusResolved).Count(&stats.Resolved).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
