package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"
)

// --- Application view DTOs ---

// ApplicationView is the worker-facing row for the my-jobs screens.
type ApplicationView struct {
	Application models.Application `json:"application"`
	JobStatus   JobStatus          `json:"job_status"`
	TotalWage   string             `json:"total_wage"`
	PayRate     string             `json:"pay_rate"`
	Penalty     string             `json:"penalty,omitempty"`
}

// ApplicationDetail adds the penalty breakdown recomputed from the recorded
// cancellation moment, so the figure shown always matches the stored label.
type ApplicationDetail struct {
	ApplicationView
	HoursBeforeStart *float64 `json:"hours_before_start,omitempty"`
	PenaltyLabel     string   `json:"penalty_label,omitempty"`
}

// --- ApplicationService Interface ---
type ApplicationService interface {
	GetOngoing(workerID int64, page, pageSize int) ([]ApplicationView, int, error)
	GetCompleted(workerID int64, page, pageSize int) ([]ApplicationView, int, error)
	GetCancelled(workerID int64, page, pageSize int) ([]ApplicationView, int, error)
	GetDetail(workerID, applicationID int64) (*ApplicationDetail, error)
	GetApplications(filters models.ApplicationFilters) ([]models.Application, int, error)
}

// --- applicationService Implementation ---
type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	now             func() time.Time
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(ar repositories.ApplicationRepository) ApplicationService {
	return &applicationService{applicationRepo: ar, now: time.Now}
}

func (s *applicationService) toView(app models.Application) ApplicationView {
	view := ApplicationView{Application: app}
	if app.Shift != nil {
		view.TotalWage = utils.FormatMoney(app.Shift.TotalWage)
		view.PayRate = utils.FormatMoney(app.Shift.PayRate) + "/hr"
		if app.Shift.RateType == models.RateTypeFlat {
			view.PayRate = utils.FormatMoney(app.Shift.PayRate)
		}
	}
	if app.Job != nil {
		view.JobStatus = ProjectJobStatus(app.Job, app.HasAttendanceEvidence(), s.now())
	}
	if app.Penalty != nil {
		view.Penalty = utils.FormatPenalty(*app.Penalty)
	}
	return view
}

// listByStatus fetches one page of a worker's applications in the given
// worker-facing status and projects each row into its view form.
func (s *applicationService) listByStatus(workerID int64, status string, adminStatus *string, page, pageSize int) ([]ApplicationView, int, error) {
	filters := models.ApplicationFilters{
		WorkerID:    &workerID,
		Status:      &status,
		AdminStatus: adminStatus,
		Page:        page,
		PageSize:    pageSize,
	}
	apps, total, err := s.applicationRepo.GetApplications(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
	}

	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, s.toView(app))
	}
	return views, total, nil
}

// GetOngoing lists a worker's upcoming applications that an admin has
// confirmed.
func (s *applicationService) GetOngoing(workerID int64, page, pageSize int) ([]ApplicationView, int, error) {
	confirmed := string(models.AdminStatusConfirmed)
	return s.listByStatus(workerID, string(models.ApplicationStatusUpcoming), &confirmed, page, pageSize)
}

func (s *applicationService) GetCompleted(workerID int64, page, pageSize int) ([]ApplicationView, int, error) {
	return s.listByStatus(workerID, string(models.ApplicationStatusCompleted), nil, page, pageSize)
}

func (s *applicationService) GetCancelled(workerID int64, page, pageSize int) ([]ApplicationView, int, error) {
	return s.listByStatus(workerID, string(models.ApplicationStatusCancelled), nil, page, pageSize)
}

func (s *applicationService) GetDetail(workerID, applicationID int64) (*ApplicationDetail, error) {
	app, err := s.applicationRepo.GetApplicationByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch application detail: %w", err)
	}
	if workerID != 0 && app.WorkerID != workerID {
		return nil, ErrApplicationNotFound
	}

	detail := &ApplicationDetail{ApplicationView: s.toView(*app)}
	if app.PenaltyLabel != nil {
		detail.PenaltyLabel = *app.PenaltyLabel
	}

	// The projector counts any application's attendance as completion
	// evidence, not just this one's. List views settle for the row at hand;
	// the detail view can afford the lookup.
	if app.Job != nil {
		hasAttendance, attErr := s.applicationRepo.JobHasAttendanceEvidence(app.JobID)
		if attErr == nil {
			detail.JobStatus = ProjectJobStatus(app.Job, hasAttendance, s.now())
		}
	}

	// For cancelled applications, recompute the notice window from the
	// recorded cancellation moment so the breakdown matches the stored label.
	if app.CancelledAt != nil && app.Shift != nil {
		start, composeErr := app.Shift.StartOn(*app.CancelledAt)
		if composeErr == nil {
			hours := start.Sub(*app.CancelledAt).Hours()
			detail.HoursBeforeStart = &hours
			if app.Penalty == nil {
				amount, label := ComputePenalty(hours)
				detail.Penalty = utils.FormatPenalty(amount)
				detail.PenaltyLabel = label
			}
		}
	}
	return detail, nil
}

func (s *applicationService) GetApplications(filters models.ApplicationFilters) ([]models.Application, int, error) {
	return s.applicationRepo.GetApplications(filters)
}
