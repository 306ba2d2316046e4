package repository

import (
	"context"

	"gorm.io/gorm"

	"stockbot/internal/models"
)

type NotificationRepository struct {
	Repository[models.Notification]
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{Repository: NewRepository[models.Notification](db)}
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	return r.GetBy(ctx, "id", id)
}

// Search returns a page of notifications matching the search term on content
// or short_content, newest first, together with the total match count.
func (r *NotificationRepository) Search(ctx context.Context, search string, skip, limit int) ([]models.Notification, int64, error) {
	query := r.DB().WithContext(ctx).Model(&models.Notification{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("content ILIKE ? OR short_content ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}
