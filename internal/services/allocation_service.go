package services

import (
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/pkg/storage"
)

// --- Custom Service Errors for Allocation ---
var (
	ErrWorkerNotFound       = errors.New("worker not found")
	ErrProfileIncomplete    = errors.New("worker profile is not completed")
	ErrJobNotFound          = errors.New("job not found")
	ErrJobCancelled         = errors.New("job has been cancelled")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrShiftNotInJob        = errors.New("shift does not belong to the given job")
	ErrDuplicateApplication = errors.New("worker already has an active application for this shift")
	ErrCapacityExceeded     = errors.New("no vacancies left for this shift")
	ErrInvalidDate          = errors.New("invalid application date")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAlreadyCancelled     = errors.New("application is already cancelled")
	ErrInvalidReason        = errors.New("invalid cancellation reason")
	ErrEvidenceRequired     = errors.New("medical certificate is required for medical cancellations")
	ErrEvidenceUpload       = errors.New("failed to store medical certificate")
)

// txRetryAttempts bounds retries on serialization failures and deadlocks.
const txRetryAttempts = 3

// --- Allocation DTOs ---
type ApplyRequest struct {
	JobID   int64  `json:"job_id" binding:"required"`
	ShiftID int64  `json:"shift_id" binding:"required"`
	Date    string `json:"date" binding:"required"` // "2006-01-02"
}

type CancelRequest struct {
	Reason          string                `form:"reason" binding:"required"`
	DescribedReason string                `form:"described_reason"`
	Evidence        *multipart.FileHeader `form:"-"`
}

// --- AllocationService Interface ---

// AllocationService owns the apply and cancel flows: the only two code paths
// that move the vacancy counters.
type AllocationService interface {
	Apply(workerID int64, req ApplyRequest) (*models.Application, error)
	Cancel(workerID, applicationID int64, req CancelRequest) (*models.Application, error)
}

// --- allocationService Implementation ---
type allocationService struct {
	workerRepo      repositories.WorkerRepository
	jobRepo         repositories.JobRepository
	shiftRepo       repositories.ShiftRepository
	applicationRepo repositories.ApplicationRepository
	fileStore       storage.FileStore
	notifier        Notifier
	db              *sql.DB
	now             func() time.Time
}

// NewAllocationService creates a new instance of AllocationService.
func NewAllocationService(
	wr repositories.WorkerRepository,
	jr repositories.JobRepository,
	sr repositories.ShiftRepository,
	ar repositories.ApplicationRepository,
	fs storage.FileStore,
	notifier Notifier,
	db *sql.DB,
) AllocationService {
	return &allocationService{
		workerRepo:      wr,
		jobRepo:         jr,
		shiftRepo:       sr,
		applicationRepo: ar,
		fileStore:       fs,
		notifier:        notifier,
		db:              db,
		now:             time.Now,
	}
}

func (s *allocationService) Apply(workerID int64, req ApplyRequest) (*models.Application, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	worker, err := s.workerRepo.GetWorkerByID(workerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker for application: %w", err)
	}
	if !worker.ProfileCompleted {
		return nil, ErrProfileIncomplete
	}

	job, err := s.jobRepo.GetJobByID(req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to fetch job for application: %w", err)
	}
	if job.IsCancelled {
		return nil, ErrJobCancelled
	}

	shift, err := s.shiftRepo.GetShiftByID(req.ShiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to fetch shift for application: %w", err)
	}
	if shift.JobID != job.ID {
		return nil, ErrShiftNotInJob
	}

	exists, err := s.applicationRepo.HasActiveApplication(workerID, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing application: %w", err)
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	var app *models.Application
	err = s.withRetry(func() error {
		var txErr error
		app, txErr = s.applyTx(workerID, job, shift, date)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(models.Notification{
		WorkerID: workerID,
		JobID:    &job.ID,
		Type:     models.NotificationTypeJob,
		Title:    "Application received",
		Message:  fmt.Sprintf("You have applied for %s on %s.", job.JobName, date.Format("02 Jan 2006")),
	})
	return app, nil
}

// applyTx reserves a seat and inserts the application inside one transaction.
// The conditional counter update is the capacity authority; the unique index
// on live (worker, shift) applications backstops the duplicate pre-check.
func (s *allocationService) applyTx(workerID int64, job *models.Job, shift *models.Shift, date time.Time) (*models.Application, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	reserved, err := s.shiftRepo.ReserveVacancy(tx, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve vacancy: %w", err)
	}
	isStandby := false
	if !reserved {
		reserved, err = s.shiftRepo.ReserveStandby(tx, shift.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve standby vacancy: %w", err)
		}
		if !reserved {
			return nil, ErrCapacityExceeded
		}
		isStandby = true
	}

	app := &models.Application{
		WorkerID:      workerID,
		JobID:         job.ID,
		ShiftID:       shift.ID,
		Date:          date,
		Status:        models.ApplicationStatusUpcoming,
		AppliedStatus: models.AppliedStatusApplied,
		AdminStatus:   models.AdminStatusPending,
		IsStandby:     isStandby,
	}
	if _, err = s.applicationRepo.CreateApplication(tx, app); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit application transaction: %w", err)
	}
	return app, nil
}

func (s *allocationService) Cancel(workerID, applicationID int64, req CancelRequest) (*models.Application, error) {
	reason := models.CancellationReason(req.Reason)
	if !models.IsValidCancellationReason(req.Reason) {
		return nil, ErrInvalidReason
	}

	app, err := s.applicationRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application for cancellation: %w", err)
	}
	if workerID != 0 && app.WorkerID != workerID {
		return nil, ErrApplicationNotFound
	}
	if app.AppliedStatus == models.AppliedStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if app.Shift == nil {
		return nil, ErrShiftNotFound
	}

	now := s.now()
	start, err := app.Shift.StartOn(now)
	if err != nil {
		return nil, fmt.Errorf("failed to compose shift start time: %w", err)
	}
	hoursBeforeStart := start.Sub(now).Hours()
	penalty, penaltyLabel := ComputePenalty(hoursBeforeStart)

	// Evidence is stored before the transaction: an upload failure must fail
	// the whole request without touching any counters.
	var certPath *string
	if reason.RequiresEvidence() {
		if req.Evidence == nil {
			return nil, ErrEvidenceRequired
		}
		path, uploadErr := s.fileStore.Save(req.Evidence, "mc-certificates")
		if uploadErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrEvidenceUpload, uploadErr)
		}
		certPath = &path
	}

	describedReason := req.DescribedReason
	if describedReason == "" {
		describedReason = "No additional details provided"
	}
	reasonStr := string(reason)

	app.Status = models.ApplicationStatusCancelled
	app.AppliedStatus = models.AppliedStatusCancelled
	app.AdminStatus = models.AdminStatusPending
	app.Reason = &reasonStr
	app.DescribedReason = &describedReason
	app.Penalty = &penalty
	app.PenaltyLabel = &penaltyLabel
	app.CancelledAt = &now
	app.MedicalCert = certPath

	err = s.withRetry(func() error {
		return s.cancelTx(app)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(models.Notification{
		WorkerID: app.WorkerID,
		JobID:    &app.JobID,
		Type:     models.NotificationTypeJob,
		Title:    "Application cancelled",
		Message:  fmt.Sprintf("Your application has been cancelled. Penalty: %s.", penaltyLabel),
	})
	return app, nil
}

// cancelTx flips the application, bumps the worker's cancellation count and
// releases the reserved seat, all in one transaction.
func (s *allocationService) cancelTx(app *models.Application) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// MarkCancelled only touches a still-live row. Losing the race to a
	// concurrent cancel reports as no row matched; the counter release below
	// must then not run a second time.
	if err = s.applicationRepo.MarkCancelled(tx, app); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAlreadyCancelled
		}
		return fmt.Errorf("failed to cancel application: %w", err)
	}
	if err = s.workerRepo.IncrementCancellationCount(tx, app.WorkerID); err != nil {
		return fmt.Errorf("failed to increment cancellation count: %w", err)
	}
	if err = s.shiftRepo.ReleaseVacancy(tx, app.ShiftID, app.IsStandby); err != nil {
		return fmt.Errorf("failed to release vacancy: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation transaction: %w", err)
	}
	return nil
}

// withRetry reruns fn on serialization failures and deadlocks, up to
// txRetryAttempts total attempts. Every attempt runs in a fresh transaction.
func (s *allocationService) withRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= txRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !repositories.IsSerializationFailure(err) {
			return err
		}
	}
	return err
}
