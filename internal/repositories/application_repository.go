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

// ApplicationStats aggregates one job's applications for admin views.
type ApplicationStats struct {
	TotalApplications     int
	StandbyApplications   int
	PendingApplications   int
	ConfirmedApplications int
	AttendedApplications  int
}

// ApplicationRepository defines the interface for application-related database operations.
type ApplicationRepository interface {
	CreateApplication(executor SQLExecutor, app *models.Application) (*models.Application, error)
	GetApplicationByID(id int64) (*models.Application, error)
	GetApplications(filters models.ApplicationFilters) ([]models.Application, int, error)
	HasActiveApplication(workerID, shiftID int64) (bool, error)
	MarkCancelled(executor SQLExecutor, app *models.Application) error
	UpdateAdminStatus(executor SQLExecutor, id int64, status models.AdminStatus, reason *string) error
	SetClockIn(executor SQLExecutor, id int64, at time.Time, location *string) error
	SetClockOut(executor SQLExecutor, id int64, at time.Time) error
	MarkCompleted(executor SQLExecutor, id int64, at time.Time) error
	MarkNoShow(executor SQLExecutor, id int64) error
	StatsByJob(jobIDs []int64) (map[int64]ApplicationStats, error)
	JobHasAttendanceEvidence(jobID int64) (bool, error)
	CountByJob(executor SQLExecutor, jobID int64) (int, error)
	CountByStatus(status models.ApplicationStatus) (int, error)
}

type applicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new instance of ApplicationRepository.
func NewApplicationRepository(db *sql.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const selectApplicationFields = `
	a.id, a.worker_id, a.job_id, a.shift_id, a.date,
	a.status, a.applied_status, a.admin_status, a.is_standby,
	a.reason, a.described_reason, a.penalty, a.penalty_label, a.cancelled_at, a.medical_certificate,
	a.clock_in_time, a.clock_out_time, a.check_in_location, a.completed_at,
	a.created_at, a.updated_at,
	j.job_name, j.job_icon, j.location, j.date, j.is_cancelled,
	s.start_time, s.start_meridian, s.end_time, s.end_meridian,
	s.duration, s.break_hours, s.break_type, s.rate_type, s.pay_rate, s.total_wage,
	s.vacancy, s.standby_vacancy, s.filled_vacancy, s.standby_filled
`

const applicationJoins = `
	FROM applications a
	JOIN jobs j ON a.job_id = j.id
	JOIN shifts s ON a.shift_id = s.id
`

// scanApplicationRow scans one application row with its joined job and shift
// details.
func scanApplicationRow(row scanner, isList bool) (*models.Application, int, error) {
	var app models.Application
	var job models.Job
	var shift models.Shift
	var totalCount int

	scanDest := []interface{}{
		&app.ID, &app.WorkerID, &app.JobID, &app.ShiftID, &app.Date,
		&app.Status, &app.AppliedStatus, &app.AdminStatus, &app.IsStandby,
		&app.Reason, &app.DescribedReason, &app.Penalty, &app.PenaltyLabel, &app.CancelledAt, &app.MedicalCert,
		&app.ClockInTime, &app.ClockOutTime, &app.CheckInLocation, &app.CompletedAt,
		&app.CreatedAt, &app.UpdatedAt,
		&job.JobName, &job.JobIcon, &job.Location, &job.Date, &job.IsCancelled,
		&shift.StartTime, &shift.StartMeridian, &shift.EndTime, &shift.EndMeridian,
		&shift.Duration, &shift.BreakHours, &shift.BreakType, &shift.RateType, &shift.PayRate, &shift.TotalWage,
		&shift.Vacancy, &shift.StandbyVacancy, &shift.FilledVacancy, &shift.StandbyFilled,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning application with details: %v", ErrDatabaseError, err)
	}

	job.ID = app.JobID
	shift.ID = app.ShiftID
	shift.JobID = app.JobID
	app.Job = &job
	app.Shift = &shift
	return &app, totalCount, nil
}

func (r *applicationRepository) CreateApplication(executor SQLExecutor, app *models.Application) (*models.Application, error) {
	query := `INSERT INTO applications
	            (worker_id, job_id, shift_id, date, status, applied_status, admin_status, is_standby, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          RETURNING id, created_at, updated_at`

	now := time.Now()
	err := executor.QueryRow(query,
		app.WorkerID, app.JobID, app.ShiftID, app.Date,
		app.Status, app.AppliedStatus, app.AdminStatus, app.IsStandby, now,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating application: %v", ErrDatabaseError, err)
	}
	return app, nil
}

func (r *applicationRepository) GetApplicationByID(id int64) (*models.Application, error) {
	query := "SELECT " + selectApplicationFields + applicationJoins + " WHERE a.id = $1"
	app, _, err := scanApplicationRow(r.db.QueryRow(query, id), false)
	return app, err
}

func (r *applicationRepository) GetApplications(filters models.ApplicationFilters) ([]models.Application, int, error) {
	applications := []models.Application{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectApplicationFields + ", COUNT(*) OVER() AS total_count " + applicationJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.WorkerID != nil {
		conditions = append(conditions, fmt.Sprintf("a.worker_id = $%d", argCount))
		args = append(args, *filters.WorkerID)
		argCount++
	}
	if filters.JobID != nil {
		conditions = append(conditions, fmt.Sprintf("a.job_id = $%d", argCount))
		args = append(args, *filters.JobID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.AdminStatus != nil && *filters.AdminStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.admin_status = $%d", argCount))
		args = append(args, *filters.AdminStatus)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY a.created_at DESC")

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
		return nil, 0, fmt.Errorf("%w: querying applications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		app, scannedTotal, scanErr := scanApplicationRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		applications = append(applications, *app)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating application rows: %v", ErrDatabaseError, err)
	}
	if len(applications) == 0 {
		totalCount = 0
	}
	return applications, totalCount, nil
}

func (r *applicationRepository) HasActiveApplication(workerID, shiftID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM applications
	          WHERE worker_id = $1 AND shift_id = $2 AND applied_status = $3`
	err := r.db.QueryRow(query, workerID, shiftID, models.AppliedStatusApplied).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: checking existing application: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}

func (r *applicationRepository) MarkCancelled(executor SQLExecutor, app *models.Application) error {
	// The status guard makes cancellation single-shot: two concurrent cancels
	// for the same application can both pass the service pre-check, but only
	// one of them flips the row and releases the seat.
	query := `UPDATE applications SET
	            status = $1, applied_status = $2, admin_status = $3,
	            reason = $4, described_reason = $5, penalty = $6, penalty_label = $7,
	            cancelled_at = $8, medical_certificate = $9, updated_at = $10
	          WHERE id = $11 AND applied_status = $12`

	app.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		app.Status, app.AppliedStatus, app.AdminStatus,
		app.Reason, app.DescribedReason, app.Penalty, app.PenaltyLabel,
		app.CancelledAt, app.MedicalCert, app.UpdatedAt, app.ID,
		models.AppliedStatusApplied,
	)
	if err != nil {
		return fmt.Errorf("%w: cancelling application ID %d: %v", ErrDatabaseError, app.ID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) UpdateAdminStatus(executor SQLExecutor, id int64, status models.AdminStatus, reason *string) error {
	query := `UPDATE applications SET admin_status = $1, described_reason = COALESCE($2, described_reason), updated_at = $3
	          WHERE id = $4`
	result, err := executor.Exec(query, status, reason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating admin status for application %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) SetClockIn(executor SQLExecutor, id int64, at time.Time, location *string) error {
	query := `UPDATE applications SET clock_in_time = $1, check_in_location = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, at, location, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: recording clock-in for application %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) SetClockOut(executor SQLExecutor, id int64, at time.Time) error {
	query := `UPDATE applications SET clock_out_time = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, at, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: recording clock-out for application %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) MarkCompleted(executor SQLExecutor, id int64, at time.Time) error {
	query := `UPDATE applications SET status = $1, completed_at = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, models.ApplicationStatusCompleted, at, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: completing application %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *applicationRepository) MarkNoShow(executor SQLExecutor, id int64) error {
	query := `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, models.ApplicationStatusNoShow, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: marking application %d no-show: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// StatsByJob aggregates application counts per job in a single query,
// replacing the document-store aggregation pipeline the admin screens need.
func (r *applicationRepository) StatsByJob(jobIDs []int64) (map[int64]ApplicationStats, error) {
	stats := make(map[int64]ApplicationStats, len(jobIDs))
	if len(jobIDs) == 0 {
		return stats, nil
	}

	query := `SELECT job_id,
	                 COUNT(*),
	                 COUNT(*) FILTER (WHERE is_standby),
	                 COUNT(*) FILTER (WHERE admin_status = 'Pending'),
	                 COUNT(*) FILTER (WHERE admin_status = 'Confirmed'),
	                 COUNT(*) FILTER (WHERE clock_in_time IS NOT NULL AND clock_out_time IS NOT NULL)
	          FROM applications WHERE job_id = ANY($1) GROUP BY job_id`
	rows, err := r.db.Query(query, pq.Array(jobIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregating application stats: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID int64
		var s ApplicationStats
		if err := rows.Scan(&jobID, &s.TotalApplications, &s.StandbyApplications,
			&s.PendingApplications, &s.ConfirmedApplications, &s.AttendedApplications); err != nil {
			return nil, fmt.Errorf("%w: scanning application stats: %v", ErrDatabaseError, err)
		}
		stats[jobID] = s
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating application stats: %v", ErrDatabaseError, err)
	}
	return stats, nil
}

func (r *applicationRepository) JobHasAttendanceEvidence(jobID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM applications
	          WHERE job_id = $1 AND clock_in_time IS NOT NULL AND clock_out_time IS NOT NULL`
	if err := r.db.QueryRow(query, jobID).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: checking attendance evidence for job %d: %v", ErrDatabaseError, jobID, err)
	}
	return count > 0, nil
}

func (r *applicationRepository) CountByJob(executor SQLExecutor, jobID int64) (int, error) {
	var count int
	if err := executor.QueryRow(`SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting applications for job %d: %v", ErrDatabaseError, jobID, err)
	}
	return count, nil
}

func (r *applicationRepository) CountByStatus(status models.ApplicationStatus) (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM applications WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting applications by status: %v", ErrDatabaseError, err)
	}
	return count, nil
}

