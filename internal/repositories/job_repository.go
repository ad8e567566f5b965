package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"

	"github.com/lib/pq"
)

// JobRepository defines the interface for job-related database operations.
type JobRepository interface {
	CreateJob(executor SQLExecutor, job *models.Job) (*models.Job, error)
	GetJobByID(id int64) (*models.Job, error)
	GetJobs(filters models.JobFilters) ([]models.Job, int, error)
	UpdateJob(executor SQLExecutor, job *models.Job) error
	SetCancelled(executor SQLExecutor, id int64, cancelled bool) error
	DeleteJob(executor SQLExecutor, id int64) error
	CountJobs() (int, error)
}

type jobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new instance of JobRepository.
func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{db: db}
}

const selectJobFields = `
	j.id, j.job_name, j.job_icon, j.employer_id, j.outlet_id, j.date, j.location,
	j.short_address, j.industry, j.job_scope, j.job_requirements, j.is_cancelled,
	j.created_at, j.updated_at,
	e.company_legal_name, e.company_logo,
	o.outlet_name, o.outlet_address, o.outlet_image
`

const jobJoins = `
	FROM jobs j
	JOIN employers e ON j.employer_id = e.id
	JOIN outlets o ON j.outlet_id = o.id
`

// scanJobRow scans one job row joined with its employer and outlet.
func scanJobRow(row scanner, isList bool) (*models.Job, int, error) {
	var job models.Job
	var employer models.Employer
	var outlet models.Outlet
	var totalCount int

	scanDest := []interface{}{
		&job.ID, &job.JobName, &job.JobIcon, &job.EmployerID, &job.OutletID, &job.Date, &job.Location,
		&job.ShortAddress, &job.Industry, pq.Array(&job.JobScope), pq.Array(&job.JobRequirements), &job.IsCancelled,
		&job.CreatedAt, &job.UpdatedAt,
		&employer.CompanyLegalName, &employer.CompanyLogo,
		&outlet.OutletName, &outlet.OutletAddress, &outlet.OutletImage,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning job with details: %v", ErrDatabaseError, err)
	}

	employer.ID = job.EmployerID
	outlet.ID = job.OutletID
	outlet.EmployerID = job.EmployerID
	job.Employer = &employer
	job.Outlet = &outlet
	return &job, totalCount, nil
}

func (r *jobRepository) CreateJob(executor SQLExecutor, job *models.Job) (*models.Job, error) {
	query := `INSERT INTO jobs
	            (job_name, job_icon, employer_id, outlet_id, date, location, short_address, industry, job_scope, job_requirements, is_cancelled, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	          RETURNING id, created_at, updated_at`

	err := executor.QueryRow(query,
		job.JobName, job.JobIcon, job.EmployerID, job.OutletID, job.Date, job.Location,
		job.ShortAddress, job.Industry, pq.Array(job.JobScope), pq.Array(job.JobRequirements),
		job.IsCancelled, time.Now(),
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating job: %v", ErrDatabaseError, err)
	}
	return job, nil
}

func (r *jobRepository) GetJobByID(id int64) (*models.Job, error) {
	query := "SELECT " + selectJobFields + jobJoins + " WHERE j.id = $1"
	job, _, err := scanJobRow(r.db.QueryRow(query, id), false)
	return job, err
}

func (r *jobRepository) GetJobs(filters models.JobFilters) ([]models.Job, int, error) {
	jobs := []models.Job{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectJobFields + ", COUNT(*) OVER() AS total_count " + jobJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.JobName != nil && *filters.JobName != "" {
		conditions = append(conditions, fmt.Sprintf("(j.job_name ILIKE $%d OR j.location ILIKE $%d OR e.company_legal_name ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+*filters.JobName+"%")
		argCount++
	}
	if filters.EmployerID != nil {
		conditions = append(conditions, fmt.Sprintf("j.employer_id = $%d", argCount))
		args = append(args, *filters.EmployerID)
		argCount++
	}
	if filters.OutletID != nil {
		conditions = append(conditions, fmt.Sprintf("j.outlet_id = $%d", argCount))
		args = append(args, *filters.OutletID)
		argCount++
	}
	if filters.City != nil && *filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("j.location ILIKE $%d", argCount))
		args = append(args, "%"+*filters.City+"%")
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("j.date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("j.date <= $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	sortColumn := "j.date"
	switch filters.SortBy {
	case "job_name":
		sortColumn = "j.job_name"
	case "created_at":
		sortColumn = "j.created_at"
	case "location":
		sortColumn = "j.location"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		sortOrder = "DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, j.id", sortColumn, sortOrder))

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying jobs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		job, scannedTotal, scanErr := scanJobRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		jobs = append(jobs, *job)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating job rows: %v", ErrDatabaseError, err)
	}
	if len(jobs) == 0 {
		totalCount = 0
	}
	return jobs, totalCount, nil
}

func (r *jobRepository) UpdateJob(executor SQLExecutor, job *models.Job) error {
	query := `UPDATE jobs SET
	            job_name = $1, job_icon = $2, employer_id = $3, outlet_id = $4, date = $5,
	            location = $6, short_address = $7, industry = $8, job_scope = $9, job_requirements = $10,
	            updated_at = $11
	          WHERE id = $12
	          RETURNING updated_at`

	err := executor.QueryRow(query,
		job.JobName, job.JobIcon, job.EmployerID, job.OutletID, job.Date,
		job.Location, job.ShortAddress, job.Industry, pq.Array(job.JobScope), pq.Array(job.JobRequirements),
		time.Now(), job.ID,
	).Scan(&job.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating job ID %d: %v", ErrDatabaseError, job.ID, err)
	}
	return nil
}

func (r *jobRepository) SetCancelled(executor SQLExecutor, id int64, cancelled bool) error {
	query := `UPDATE jobs SET is_cancelled = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, cancelled, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: setting cancelled flag for job %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) DeleteJob(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting job %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) CountJobs() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM jobs WHERE NOT is_cancelled`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting jobs: %v", ErrDatabaseError, err)
	}
	return count, nil
}
