package repository

import (
	"context"

	"gorm.io/gorm"

	"stockbot/internal/models"
)

type UserRepository struct {
	Repository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[models.User](db)}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.GetBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.GetBy(ctx, "email", email)
}

// SearchByEmail returns a page of users whose email contains the search term,
// together with the total match count.
func (r *UserRepository) SearchByEmail(ctx context.Context, search string, skip, limit int) ([]models.User, int64, error) {
	query := r.DB().WithContext(ctx).Model(&models.User{})
	if search != "" {
		query = query.Where("email ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
