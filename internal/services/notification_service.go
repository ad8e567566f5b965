package services

import (
	"errors"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notifier delivers a notification without blocking or failing the caller.
type Notifier interface {
	Notify(n models.Notification)
}

// --- NotificationService Interface ---
type NotificationService interface {
	Notifier
	GetNotifications(workerID int64) ([]models.Notification, error)
	MarkRead(workerID, notificationID int64) error
	MarkAllRead(workerID int64) error
}

// --- notificationService Implementation ---
type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(nr repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: nr}
}

// Notify persists the notification on a background goroutine. Delivery is
// best effort: a failure is logged and never surfaces to the operation that
// triggered it.
func (s *notificationService) Notify(n models.Notification) {
	go func() {
		if err := s.notificationRepo.CreateNotification(&n); err != nil {
			utils.LogError(err, "failed to persist notification")
		}
	}()
}

func (s *notificationService) GetNotifications(workerID int64) ([]models.Notification, error) {
	return s.notificationRepo.GetNotificationsByWorkerID(workerID)
}

func (s *notificationService) MarkRead(workerID, notificationID int64) error {
	err := s.notificationRepo.MarkRead(workerID, notificationID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) MarkAllRead(workerID int64) error {
	return s.notificationRepo.MarkAllRead(workerID)
}
