package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
)

var ErrReviewNotPending = errors.New("application has already been reviewed")

// --- ReviewService Interface ---

// ReviewService is the admin gate over applications. Approve and reject are
// the only adminStatus transitions and neither touches a vacancy counter.
type ReviewService interface {
	Approve(applicationID int64) (*models.Application, error)
	Reject(applicationID int64, reason string) (*models.Application, error)
}

// --- reviewService Implementation ---
type reviewService struct {
	applicationRepo repositories.ApplicationRepository
	notifier        Notifier
	db              *sql.DB
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(ar repositories.ApplicationRepository, notifier Notifier, db *sql.DB) ReviewService {
	return &reviewService{applicationRepo: ar, notifier: notifier, db: db}
}

func (s *reviewService) Approve(applicationID int64) (*models.Application, error) {
	return s.review(applicationID, models.AdminStatusConfirmed, nil)
}

func (s *reviewService) Reject(applicationID int64, reason string) (*models.Application, error) {
	if reason == "" {
		reason = "No reason provided"
	}
	return s.review(applicationID, models.AdminStatusRejected, &reason)
}

func (s *reviewService) review(applicationID int64, target models.AdminStatus, reason *string) (*models.Application, error) {
	app, err := s.applicationRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application for review: %w", err)
	}
	if !models.CanReview(app.AdminStatus) {
		return nil, ErrReviewNotPending
	}

	if err = s.applicationRepo.UpdateAdminStatus(s.db, applicationID, target, reason); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update admin status: %w", err)
	}

	app.AdminStatus = target
	if reason != nil {
		app.DescribedReason = reason
	}

	title := "Application confirmed"
	message := "Your application has been confirmed. See you at the shift!"
	if target == models.AdminStatusRejected {
		title = "Application rejected"
		message = fmt.Sprintf("Your application was rejected: %s", *reason)
	}
	s.notifier.Notify(models.Notification{
		WorkerID: app.WorkerID,
		JobID:    &app.JobID,
		Type:     models.NotificationTypeJob,
		Title:    title,
		Message:  message,
	})
	return app, nil
}
