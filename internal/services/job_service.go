package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"
)

// --- Custom Service Errors for Jobs ---
var (
	ErrEmployerNotFound  = errors.New("employer not found")
	ErrOutletNotFound    = errors.New("outlet not found")
	ErrOutletNotOwned    = errors.New("outlet does not belong to the employer")
	ErrJobValidation     = errors.New("job data validation error")
	ErrJobNotCancellable = errors.New("job is already cancelled")
)

// --- Job DTOs ---
type ShiftRequest struct {
	StartTime      string  `json:"start_time" binding:"required"`
	StartMeridian  string  `json:"start_meridian" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	EndMeridian    string  `json:"end_meridian" binding:"required"`
	Vacancy        int     `json:"vacancy" binding:"required"`
	StandbyVacancy int     `json:"standby_vacancy"`
	Duration       float64 `json:"duration"`
	BreakHours     float64 `json:"break_hours"`
	BreakType      string  `json:"break_type"`
	RateType       string  `json:"rate_type" binding:"required"`
	PayRate        float64 `json:"pay_rate" binding:"required"`
}

type CreateJobRequest struct {
	JobName         string         `json:"job_name" binding:"required"`
	JobIcon         string         `json:"job_icon"`
	EmployerID      int64          `json:"employer_id" binding:"required"`
	OutletID        int64          `json:"outlet_id" binding:"required"`
	Date            string         `json:"date" binding:"required"` // "2006-01-02"
	Location        string         `json:"location" binding:"required"`
	ShortAddress    *string        `json:"short_address"`
	Industry        *string        `json:"industry"`
	JobScope        []string       `json:"job_scope"`
	JobRequirements []string       `json:"job_requirements"`
	Shifts          []ShiftRequest `json:"shifts" binding:"required,min=1"`
}

type UpdateJobRequest struct {
	JobName         *string  `json:"job_name"`
	JobIcon         *string  `json:"job_icon"`
	OutletID        *int64   `json:"outlet_id"`
	Date            *string  `json:"date"`
	Location        *string  `json:"location"`
	ShortAddress    *string  `json:"short_address"`
	Industry        *string  `json:"industry"`
	JobScope        []string `json:"job_scope"`
	JobRequirements []string `json:"job_requirements"`
}

// JobListing is the worker-facing feed row with derived capacity fields.
type JobListing struct {
	Job              models.Job `json:"job"`
	SlotLabel        string     `json:"slot_label"`
	EstimatedWage    string     `json:"estimated_wage"`
	PayRatePerHour   string     `json:"pay_rate_per_hour"`
	RemainingVacancy int        `json:"remaining_vacancy"`
}

// AdminJobRow decorates a job with its projected status and application
// aggregates for the back-office list.
type AdminJobRow struct {
	Job            models.Job                    `json:"job"`
	Status         JobStatus                     `json:"status"`
	Vacancy        models.VacancySummary         `json:"vacancy"`
	Applications   repositories.ApplicationStats `json:"applications"`
	HighNoShow     bool                          `json:"high_no_show"`
	AttendanceRate float64                       `json:"attendance_rate"`
}

// --- JobService Interface ---
type JobService interface {
	CreateJob(req CreateJobRequest) (*models.Job, error)
	GetJobByID(jobID int64) (*models.Job, error)
	GetAdminJobs(filters models.JobFilters) ([]AdminJobRow, int, error)
	GetJobListings(filters models.JobFilters) ([]JobListing, int, error)
	UpdateJob(jobID int64, req UpdateJobRequest) (*models.Job, error)
	DuplicateJob(jobID int64) (*models.Job, error)
	CancelJob(jobID int64) error
	DeleteJob(jobID int64) error
}

// --- jobService Implementation ---
type jobService struct {
	jobRepo         repositories.JobRepository
	shiftRepo       repositories.ShiftRepository
	applicationRepo repositories.ApplicationRepository
	employerRepo    repositories.EmployerRepository
	db              *sql.DB
	now             func() time.Time
}

// NewJobService creates a new instance of JobService.
func NewJobService(
	jr repositories.JobRepository,
	sr repositories.ShiftRepository,
	ar repositories.ApplicationRepository,
	er repositories.EmployerRepository,
	db *sql.DB,
) JobService {
	return &jobService{
		jobRepo:         jr,
		shiftRepo:       sr,
		applicationRepo: ar,
		employerRepo:    er,
		db:              db,
		now:             time.Now,
	}
}

func (s *jobService) buildShifts(reqs []ShiftRequest) ([]models.Shift, error) {
	shifts := make([]models.Shift, 0, len(reqs))
	for i, sr := range reqs {
		if sr.Vacancy <= 0 {
			return nil, fmt.Errorf("%w: shift %d vacancy must be positive", ErrJobValidation, i+1)
		}
		if sr.StandbyVacancy < 0 {
			return nil, fmt.Errorf("%w: shift %d standby vacancy cannot be negative", ErrJobValidation, i+1)
		}
		if sr.RateType != models.RateTypeHourly && sr.RateType != models.RateTypeFlat {
			return nil, fmt.Errorf("%w: shift %d has unknown rate type %q", ErrJobValidation, i+1, sr.RateType)
		}

		shift := models.Shift{
			StartTime:      sr.StartTime,
			StartMeridian:  sr.StartMeridian,
			EndTime:        sr.EndTime,
			EndMeridian:    sr.EndMeridian,
			Vacancy:        sr.Vacancy,
			StandbyVacancy: sr.StandbyVacancy,
			Duration:       sr.Duration,
			BreakHours:     sr.BreakHours,
			BreakType:      sr.BreakType,
			RateType:       sr.RateType,
			PayRate:        sr.PayRate,
		}
		if _, err := shift.StartOn(s.now()); err != nil {
			return nil, fmt.Errorf("%w: shift %d: %v", ErrJobValidation, i+1, err)
		}
		if _, err := shift.EndOn(s.now()); err != nil {
			return nil, fmt.Errorf("%w: shift %d: %v", ErrJobValidation, i+1, err)
		}
		shift.TotalWage = models.ComputeTotalWage(sr.RateType, sr.PayRate, sr.Duration)
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

func (s *jobService) validateOutlet(employerID, outletID int64) error {
	if _, err := s.employerRepo.GetEmployerByID(employerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployerNotFound
		}
		return fmt.Errorf("failed to fetch employer: %w", err)
	}
	outlet, err := s.employerRepo.GetOutletByID(outletID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOutletNotFound
		}
		return fmt.Errorf("failed to fetch outlet: %w", err)
	}
	if outlet.EmployerID != employerID {
		return ErrOutletNotOwned
	}
	return nil
}

func (s *jobService) CreateJob(req CreateJobRequest) (*models.Job, error) {
	if err := s.validateOutlet(req.EmployerID, req.OutletID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrJobValidation, req.Date)
	}
	shifts, err := s.buildShifts(req.Shifts)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	job := &models.Job{
		JobName:         req.JobName,
		JobIcon:         req.JobIcon,
		EmployerID:      req.EmployerID,
		OutletID:        req.OutletID,
		Date:            date,
		Location:        req.Location,
		ShortAddress:    req.ShortAddress,
		Industry:        req.Industry,
		JobScope:        req.JobScope,
		JobRequirements: req.JobRequirements,
	}
	if _, err = s.jobRepo.CreateJob(tx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	if job.Shifts, err = s.shiftRepo.CreateShifts(tx, job.ID, shifts); err != nil {
		return nil, fmt.Errorf("failed to create shifts: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job creation: %w", err)
	}
	return job, nil
}

func (s *jobService) GetJobByID(jobID int64) (*models.Job, error) {
	job, err := s.jobRepo.GetJobByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	if job.Shifts, err = s.shiftRepo.GetShiftsByJobID(jobID); err != nil {
		return nil, fmt.Errorf("failed to fetch shifts for job %d: %w", jobID, err)
	}
	return job, nil
}

func (s *jobService) GetAdminJobs(filters models.JobFilters) ([]AdminJobRow, int, error) {
	statusFilter := ""
	if filters.Status != nil {
		statusFilter = *filters.Status
	}
	repoFilters := filters
	if statusFilter != "" {
		// Status is derived, never stored, so SQL cannot pre-filter on it.
		// Fetch the whole result set and page after projection.
		repoFilters.Page, repoFilters.PageSize = 0, 0
	}

	jobs, total, err := s.jobRepo.GetJobs(repoFilters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	rows := make([]AdminJobRow, 0, len(jobs))
	if len(jobs) == 0 {
		return rows, total, nil
	}

	jobIDs := make([]int64, 0, len(jobs))
	for _, job := range jobs {
		jobIDs = append(jobIDs, job.ID)
	}
	vacancies, err := s.shiftRepo.VacancyTotals(jobIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate vacancies: %w", err)
	}
	stats, err := s.applicationRepo.StatsByJob(jobIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate application stats: %w", err)
	}

	now := s.now()
	for _, job := range jobs {
		jobStats := stats[job.ID]
		status := ProjectJobStatus(&job, jobStats.AttendedApplications > 0, now)
		if statusFilter != "" && string(status) != statusFilter {
			continue
		}
		rows = append(rows, AdminJobRow{
			Job:            job,
			Status:         status,
			Vacancy:        vacancies[job.ID],
			Applications:   jobStats,
			HighNoShow:     HasHighNoShowRate(jobStats.AttendedApplications, jobStats.TotalApplications),
			AttendanceRate: AttendanceRate(jobStats.AttendedApplications, jobStats.TotalApplications),
		})
	}
	if statusFilter != "" {
		total = len(rows)
		rows = pageSlice(rows, filters.Page, filters.PageSize)
	}
	return rows, total, nil
}

// pageSlice applies page windowing to rows that were filtered in memory.
func pageSlice(rows []AdminJobRow, page, pageSize int) []AdminJobRow {
	if pageSize <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []AdminJobRow{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// GetJobListings is the worker-facing feed: cancelled jobs hidden, capacity
// summarized with a slot label and an estimated wage per job.
func (s *jobService) GetJobListings(filters models.JobFilters) ([]JobListing, int, error) {
	jobs, total, err := s.jobRepo.GetJobs(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch job listings: %w", err)
	}

	listings := make([]JobListing, 0, len(jobs))
	for _, job := range jobs {
		if job.IsCancelled {
			continue
		}
		shifts, shiftErr := s.shiftRepo.GetShiftsByJobID(job.ID)
		if shiftErr != nil {
			return nil, 0, fmt.Errorf("failed to fetch shifts for job %d: %w", job.ID, shiftErr)
		}
		job.Shifts = shifts

		var remaining int
		var standbyOpen bool
		var bestWage, bestRate float64
		for _, shift := range shifts {
			remaining += shift.Vacancy - shift.FilledVacancy
			if shift.StandbyOpen() {
				standbyOpen = true
			}
			if shift.TotalWage > bestWage {
				bestWage = shift.TotalWage
			}
			if shift.PayRate > bestRate {
				bestRate = shift.PayRate
			}
		}

		listings = append(listings, JobListing{
			Job:              job,
			SlotLabel:        SlotLabel(remaining, standbyOpen),
			EstimatedWage:    utils.FormatMoney(bestWage),
			PayRatePerHour:   utils.FormatMoney(bestRate) + "/hr",
			RemainingVacancy: remaining,
		})
	}
	return listings, total, nil
}

func (s *jobService) UpdateJob(jobID int64, req UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetJobByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to fetch job for update: %w", err)
	}

	if req.JobName != nil {
		job.JobName = *req.JobName
	}
	if req.JobIcon != nil {
		job.JobIcon = *req.JobIcon
	}
	if req.OutletID != nil {
		if err = s.validateOutlet(job.EmployerID, *req.OutletID); err != nil {
			return nil, err
		}
		job.OutletID = *req.OutletID
	}
	if req.Date != nil {
		date, parseErr := time.Parse("2006-01-02", *req.Date)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid date %q", ErrJobValidation, *req.Date)
		}
		job.Date = date
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.ShortAddress != nil {
		job.ShortAddress = req.ShortAddress
	}
	if req.Industry != nil {
		job.Industry = req.Industry
	}
	if req.JobScope != nil {
		job.JobScope = req.JobScope
	}
	if req.JobRequirements != nil {
		job.JobRequirements = req.JobRequirements
	}

	if err = s.jobRepo.UpdateJob(s.db, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// DuplicateJob creates a fresh copy of a job and its shifts with all
// counters reset to zero.
func (s *jobService) DuplicateJob(jobID int64) (*models.Job, error) {
	source, err := s.GetJobByID(jobID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	copied := &models.Job{
		JobName:         source.JobName,
		JobIcon:         source.JobIcon,
		EmployerID:      source.EmployerID,
		OutletID:        source.OutletID,
		Date:            source.Date,
		Location:        source.Location,
		ShortAddress:    source.ShortAddress,
		Industry:        source.Industry,
		JobScope:        source.JobScope,
		JobRequirements: source.JobRequirements,
	}
	if _, err = s.jobRepo.CreateJob(tx, copied); err != nil {
		return nil, fmt.Errorf("failed to duplicate job: %w", err)
	}

	shifts := make([]models.Shift, 0, len(source.Shifts))
	for _, shift := range source.Shifts {
		shift.ID = 0
		shift.FilledVacancy = 0
		shift.StandbyFilled = 0
		shifts = append(shifts, shift)
	}
	if copied.Shifts, err = s.shiftRepo.CreateShifts(tx, copied.ID, shifts); err != nil {
		return nil, fmt.Errorf("failed to duplicate shifts: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit job duplication: %w", err)
	}
	return copied, nil
}

// CancelJob flips the cancelled flag. Applications and counters are left
// untouched; the projector hides the job behind its Cancelled status.
func (s *jobService) CancelJob(jobID int64) error {
	job, err := s.jobRepo.GetJobByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("failed to fetch job for cancellation: %w", err)
	}
	if job.IsCancelled {
		return ErrJobNotCancellable
	}
	return s.jobRepo.SetCancelled(s.db, jobID, true)
}

// DeleteJob removes a job and its shifts outright only while nobody has
// applied to it. Once applications exist the job is soft-cancelled instead,
// keeping penalty and attendance history queryable.
func (s *jobService) DeleteJob(jobID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := s.applicationRepo.CountByJob(tx, jobID)
	if err != nil {
		return fmt.Errorf("failed to count applications for job %d: %w", jobID, err)
	}
	if count > 0 {
		if err = s.jobRepo.SetCancelled(tx, jobID, true); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("failed to cancel job %d: %w", jobID, err)
		}
	} else {
		if err = s.shiftRepo.DeleteShiftsByJobID(tx, jobID); err != nil {
			return fmt.Errorf("failed to delete shifts for job %d: %w", jobID, err)
		}
		if err = s.jobRepo.DeleteJob(tx, jobID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("failed to delete job %d: %w", jobID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit job deletion: %w", err)
	}
	return nil
}
