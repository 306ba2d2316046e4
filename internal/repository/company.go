package repository

import (
	"context"

	"gorm.io/gorm"

	"stockbot/internal/models"
)

type CompanyRepository struct {
	Repository[models.Company]
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{Repository: NewRepository[models.Company](db)}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.GetBy(ctx, "id", id)
}

func (r *CompanyRepository) GetByCode(ctx context.Context, code string) (*models.Company, error) {
	return r.GetBy(ctx, "code", code)
}

// All returns every tracked company. The crawler needs the full code set.
func (r *CompanyRepository) All(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := r.DB().WithContext(ctx).Order("id").Find(&companies).Error
	return companies, err
}

// Search returns a page of companies whose name or code contains the search
// term, together with the total match count.
func (r *CompanyRepository) Search(ctx context.Context, search string, skip, limit int) ([]models.Company, int64, error) {
	query := r.DB().WithContext(ctx).Model(&models.Company{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []models.Company
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}
