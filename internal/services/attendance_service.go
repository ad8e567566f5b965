package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
)

var (
	ErrAlreadyClockedIn   = errors.New("application already has a clock-in time")
	ErrNotClockedIn       = errors.New("application has no clock-in time")
	ErrAlreadyClockedOut  = errors.New("application already has a clock-out time")
	ErrAttendanceRequired = errors.New("application needs both clock-in and clock-out before completion")
	ErrNotUpcoming        = errors.New("application is not in an upcoming state")
)

// --- Attendance DTOs ---
type ClockInRequest struct {
	Location *string `json:"location"`
}

// --- AttendanceService Interface ---

// AttendanceService records attendance evidence on applications and moves
// them to their terminal worker-facing statuses.
type AttendanceService interface {
	ClockIn(workerID, applicationID int64, req ClockInRequest) (*models.Application, error)
	ClockOut(workerID, applicationID int64) (*models.Application, error)
	Complete(applicationID int64) (*models.Application, error)
	MarkNoShow(applicationID int64) (*models.Application, error)
}

// --- attendanceService Implementation ---
type attendanceService struct {
	applicationRepo repositories.ApplicationRepository
	db              *sql.DB
	now             func() time.Time
}

// NewAttendanceService creates a new instance of AttendanceService.
func NewAttendanceService(ar repositories.ApplicationRepository, db *sql.DB) AttendanceService {
	return &attendanceService{applicationRepo: ar, db: db, now: time.Now}
}

func (s *attendanceService) getUpcoming(workerID, applicationID int64) (*models.Application, error) {
	app, err := s.applicationRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	if workerID != 0 && app.WorkerID != workerID {
		return nil, ErrApplicationNotFound
	}
	if app.Status != models.ApplicationStatusUpcoming {
		return nil, ErrNotUpcoming
	}
	return app, nil
}

func (s *attendanceService) ClockIn(workerID, applicationID int64, req ClockInRequest) (*models.Application, error) {
	app, err := s.getUpcoming(workerID, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ClockInTime != nil {
		return nil, ErrAlreadyClockedIn
	}

	at := s.now()
	if err = s.applicationRepo.SetClockIn(s.db, app.ID, at, req.Location); err != nil {
		return nil, fmt.Errorf("failed to record clock-in: %w", err)
	}
	app.ClockInTime = &at
	app.CheckInLocation = req.Location
	return app, nil
}

func (s *attendanceService) ClockOut(workerID, applicationID int64) (*models.Application, error) {
	app, err := s.getUpcoming(workerID, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ClockInTime == nil {
		return nil, ErrNotClockedIn
	}
	if app.ClockOutTime != nil {
		return nil, ErrAlreadyClockedOut
	}

	at := s.now()
	if err = s.applicationRepo.SetClockOut(s.db, app.ID, at); err != nil {
		return nil, fmt.Errorf("failed to record clock-out: %w", err)
	}
	app.ClockOutTime = &at
	return app, nil
}

func (s *attendanceService) Complete(applicationID int64) (*models.Application, error) {
	app, err := s.getUpcoming(0, applicationID)
	if err != nil {
		return nil, err
	}
	if !app.HasAttendanceEvidence() {
		return nil, ErrAttendanceRequired
	}

	at := s.now()
	if err = s.applicationRepo.MarkCompleted(s.db, app.ID, at); err != nil {
		return nil, fmt.Errorf("failed to complete application: %w", err)
	}
	app.Status = models.ApplicationStatusCompleted
	app.CompletedAt = &at
	return app, nil
}

func (s *attendanceService) MarkNoShow(applicationID int64) (*models.Application, error) {
	app, err := s.getUpcoming(0, applicationID)
	if err != nil {
		return nil, err
	}

	if err = s.applicationRepo.MarkNoShow(s.db, app.ID); err != nil {
		return nil, fmt.Errorf("failed to mark application as no-show: %w", err)
	}
	app.Status = models.ApplicationStatusNoShow
	return app, nil
}
