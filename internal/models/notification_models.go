package models

import "time"

// Notification types.
const (
	NotificationTypeJob = "Job"
)

// Notification is a message persisted for a worker, written by the async
// dispatcher after an allocation event.
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	WorkerID  int64     `json:"worker_id" db:"worker_id"`
	JobID     *int64    `json:"job_id,omitempty" db:"job_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
