package service

import (
	"context"

	"stockbot/internal/models"
	"stockbot/internal/repository"
)

type NotificationService struct {
	notifications *repository.NotificationRepository
}

func NewNotificationService(notifications *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) GetNotifications(ctx context.Context, search string, skip, limit int) ([]models.Notification, int64, error) {
	return s.notifications.Search(ctx, search, skip, limit)
}

func (s *NotificationService) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}
