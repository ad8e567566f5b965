package services

import (
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
)

// DashboardOverview is the admin landing-page metric block.
type DashboardOverview struct {
	TotalJobs       int `json:"total_jobs"`
	TotalWorkers    int `json:"total_workers"`
	TotalEmployers  int `json:"total_employers"`
	ActiveJobs      int `json:"active_jobs"`
	UpcomingJobs    int `json:"upcoming_jobs"`
	CompletedJobs   int `json:"completed_jobs"`
	CancelledJobs   int `json:"cancelled_jobs"`
	TotalVacancies  int `json:"total_vacancies"`
	FilledVacancies int `json:"filled_vacancies"`
	NoShowCount     int `json:"no_show_count"`
	HighNoShowJobs  int `json:"high_no_show_jobs"`
}

// --- DashboardService Interface ---
type DashboardService interface {
	GetOverview() (*DashboardOverview, error)
}

// --- dashboardService Implementation ---
type dashboardService struct {
	jobRepo         repositories.JobRepository
	shiftRepo       repositories.ShiftRepository
	applicationRepo repositories.ApplicationRepository
	workerRepo      repositories.WorkerRepository
	employerRepo    repositories.EmployerRepository
	now             func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	jr repositories.JobRepository,
	sr repositories.ShiftRepository,
	ar repositories.ApplicationRepository,
	wr repositories.WorkerRepository,
	er repositories.EmployerRepository,
) DashboardService {
	return &dashboardService{
		jobRepo:         jr,
		shiftRepo:       sr,
		applicationRepo: ar,
		workerRepo:      wr,
		employerRepo:    er,
		now:             time.Now,
	}
}

// GetOverview aggregates the dashboard counters. Job statuses are projected
// per job from the same pure function the admin list uses, so the two screens
// can never disagree.
func (s *dashboardService) GetOverview() (*DashboardOverview, error) {
	overview := &DashboardOverview{}
	var err error

	if overview.TotalWorkers, err = s.workerRepo.CountWorkers(); err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}
	if overview.TotalEmployers, err = s.employerRepo.CountEmployers(); err != nil {
		return nil, fmt.Errorf("failed to count employers: %w", err)
	}
	if overview.NoShowCount, err = s.applicationRepo.CountByStatus(models.ApplicationStatusNoShow); err != nil {
		return nil, fmt.Errorf("failed to count no-shows: %w", err)
	}
	if overview.TotalJobs, err = s.jobRepo.CountJobs(); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	jobs, _, err := s.jobRepo.GetJobs(models.JobFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs for dashboard: %w", err)
	}
	if len(jobs) == 0 {
		return overview, nil
	}

	jobIDs := make([]int64, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}
	vacancies, err := s.shiftRepo.VacancyTotals(jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vacancies: %w", err)
	}
	stats, err := s.applicationRepo.StatsByJob(jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate application stats: %w", err)
	}

	now := s.now()
	for _, job := range jobs {
		jobStats := stats[job.ID]
		switch ProjectJobStatus(&job, jobStats.AttendedApplications > 0, now) {
		case JobStatusActive:
			overview.ActiveJobs++
		case JobStatusUpcoming:
			overview.UpcomingJobs++
		case JobStatusCompleted:
			overview.CompletedJobs++
		case JobStatusCancelled:
			overview.CancelledJobs++
		}
		if HasHighNoShowRate(jobStats.AttendedApplications, jobStats.TotalApplications) {
			overview.HighNoShowJobs++
		}

		vacancy := vacancies[job.ID]
		overview.TotalVacancies += vacancy.TotalVacancy
		overview.FilledVacancies += vacancy.FilledVacancy
	}
	return overview, nil
}
