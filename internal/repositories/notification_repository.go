package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	CreateNotification(n *models.Notification) error
	GetNotificationsByWorkerID(workerID int64) ([]models.Notification, error)
	MarkRead(workerID, notificationID int64) error
	MarkAllRead(workerID int64) error
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(n *models.Notification) error {
	query := `INSERT INTO notifications (worker_id, job_id, type, title, message, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, false, $6)
	          RETURNING id, created_at`

	err := r.db.QueryRow(query, n.WorkerID, n.JobID, n.Type, n.Title, n.Message, time.Now()).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating notification: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *notificationRepository) GetNotificationsByWorkerID(workerID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := `SELECT id, worker_id, job_id, type, title, message, is_read, created_at
	          FROM notifications WHERE worker_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, workerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notifications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		if scanErr := rows.Scan(&n.ID, &n.WorkerID, &n.JobID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, scanErr)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notification rows: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(workerID, notificationID int64) error {
	result, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE id = $1 AND worker_id = $2`, notificationID, workerID)
	if err != nil {
		return fmt.Errorf("%w: marking notification %d read: %v", ErrDatabaseError, notificationID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(workerID int64) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE worker_id = $1 AND NOT is_read`, workerID)
	if err != nil {
		return fmt.Errorf("%w: marking notifications read for worker %d: %v", ErrDatabaseError, workerID, err)
	}
	return nil
}
