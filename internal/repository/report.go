package repository

import (
	"context"

	"gorm.io/gorm"

	"stockbot/internal/models"
)

type ReportRepository struct {
	Repository[models.Report]
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{Repository: NewRepository[models.Report](db)}
}

func (r *ReportRepository) ListByCompany(ctx context.Context, companyID int64, skip, limit int) ([]models.Report, int64, error) {
	query := r.DB().WithContext(ctx).Model(&models.Report{}).Where("company_id = ?", companyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
