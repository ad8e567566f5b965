package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"

	"github.com/lib/pq"
)

// ShiftRepository owns the shifts table, including the capacity counters.
// The Reserve/Release methods are the only code paths that mutate
// filled_vacancy and standby_filled; both use conditional single-statement
// updates so two concurrent appliers can never both increment past capacity.
type ShiftRepository interface {
	CreateShifts(executor SQLExecutor, jobID int64, shifts []models.Shift) ([]models.Shift, error)
	GetShiftByID(id int64) (*models.Shift, error)
	GetShiftsByJobID(jobID int64) ([]models.Shift, error)
	DeleteShiftsByJobID(executor SQLExecutor, jobID int64) error
	ReserveVacancy(executor SQLExecutor, shiftID int64) (bool, error)
	ReserveStandby(executor SQLExecutor, shiftID int64) (bool, error)
	ReleaseVacancy(executor SQLExecutor, shiftID int64, standby bool) error
	VacancyTotals(jobIDs []int64) (map[int64]models.VacancySummary, error)
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

const selectShiftFields = `
	id, job_id, start_time, start_meridian, end_time, end_meridian,
	vacancy, standby_vacancy, filled_vacancy, standby_filled,
	duration, break_hours, break_type, rate_type, pay_rate, total_wage,
	created_at, updated_at
`

func scanShift(row scanner) (*models.Shift, error) {
	var s models.Shift
	err := row.Scan(
		&s.ID, &s.JobID, &s.StartTime, &s.StartMeridian, &s.EndTime, &s.EndMeridian,
		&s.Vacancy, &s.StandbyVacancy, &s.FilledVacancy, &s.StandbyFilled,
		&s.Duration, &s.BreakHours, &s.BreakType, &s.RateType, &s.PayRate, &s.TotalWage,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}
	return &s, nil
}

func (r *shiftRepository) CreateShifts(executor SQLExecutor, jobID int64, shifts []models.Shift) ([]models.Shift, error) {
	query := `INSERT INTO shifts
	            (job_id, start_time, start_meridian, end_time, end_meridian,
	             vacancy, standby_vacancy, filled_vacancy, standby_filled,
	             duration, break_hours, break_type, rate_type, pay_rate, total_wage,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8, $9, $10, $11, $12, $13, $14, $14)
	          RETURNING id, created_at, updated_at`

	created := make([]models.Shift, 0, len(shifts))
	now := time.Now()
	for _, s := range shifts {
		s.JobID = jobID
		s.FilledVacancy = 0
		s.StandbyFilled = 0
		s.TotalWage = models.ComputeTotalWage(s.RateType, s.PayRate, s.Duration)
		err := executor.QueryRow(query,
			jobID, s.StartTime, s.StartMeridian, s.EndTime, s.EndMeridian,
			s.Vacancy, s.StandbyVacancy,
			s.Duration, s.BreakHours, s.BreakType, s.RateType, s.PayRate, s.TotalWage,
			now,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: creating shift for job %d: %v", ErrDatabaseError, jobID, err)
		}
		created = append(created, s)
	}
	return created, nil
}

func (r *shiftRepository) GetShiftByID(id int64) (*models.Shift, error) {
	query := "SELECT " + selectShiftFields + " FROM shifts WHERE id = $1"
	return scanShift(r.db.QueryRow(query, id))
}

func (r *shiftRepository) GetShiftsByJobID(jobID int64) ([]models.Shift, error) {
	query := "SELECT " + selectShiftFields + " FROM shifts WHERE job_id = $1 ORDER BY id"
	rows, err := r.db.Query(query, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts for job %d: %v", ErrDatabaseError, jobID, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		s, scanErr := scanShift(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		shifts = append(shifts, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

func (r *shiftRepository) DeleteShiftsByJobID(executor SQLExecutor, jobID int64) error {
	_, err := executor.Exec(`DELETE FROM shifts WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("%w: deleting shifts for job %d: %v", ErrDatabaseError, jobID, err)
	}
	return nil
}

// ReserveVacancy increments filled_vacancy only while it is below vacancy.
// Returns false when the normal pool is already full; the caller then tries
// the standby pool.
func (r *shiftRepository) ReserveVacancy(executor SQLExecutor, shiftID int64) (bool, error) {
	return r.conditionalIncrement(executor, shiftID,
		`UPDATE shifts SET filled_vacancy = filled_vacancy + 1, updated_at = $2
		 WHERE id = $1 AND filled_vacancy < vacancy`)
}

// ReserveStandby increments standby_filled only while it is below
// standby_vacancy.
func (r *shiftRepository) ReserveStandby(executor SQLExecutor, shiftID int64) (bool, error) {
	return r.conditionalIncrement(executor, shiftID,
		`UPDATE shifts SET standby_filled = standby_filled + 1, updated_at = $2
		 WHERE id = $1 AND standby_filled < standby_vacancy`)
}

func (r *shiftRepository) conditionalIncrement(executor SQLExecutor, shiftID int64, query string) (bool, error) {
	result, err := executor.Exec(query, shiftID, time.Now())
	if err != nil {
		return false, fmt.Errorf("%w: reserving slot on shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: reserving slot on shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	return affected == 1, nil
}

// ReleaseVacancy decrements the counter matching the application's pool,
// clamped at zero so a stray double-release can never drive it negative.
func (r *shiftRepository) ReleaseVacancy(executor SQLExecutor, shiftID int64, standby bool) error {
	query := `UPDATE shifts SET filled_vacancy = GREATEST(filled_vacancy - 1, 0), updated_at = $2 WHERE id = $1`
	if standby {
		query = `UPDATE shifts SET standby_filled = GREATEST(standby_filled - 1, 0), updated_at = $2 WHERE id = $1`
	}
	result, err := executor.Exec(query, shiftID, time.Now())
	if err != nil {
		return fmt.Errorf("%w: releasing slot on shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// VacancyTotals aggregates capacity and filled counts per job for the given
// job IDs.
func (r *shiftRepository) VacancyTotals(jobIDs []int64) (map[int64]models.VacancySummary, error) {
	totals := make(map[int64]models.VacancySummary, len(jobIDs))
	if len(jobIDs) == 0 {
		return totals, nil
	}

	query := `SELECT job_id, COUNT(*),
	                 COALESCE(SUM(vacancy), 0), COALESCE(SUM(standby_vacancy), 0),
	                 COALESCE(SUM(filled_vacancy), 0), COALESCE(SUM(standby_filled), 0)
	          FROM shifts WHERE job_id = ANY($1) GROUP BY job_id`
	rows, err := r.db.Query(query, pq.Array(jobIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregating shift vacancies: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID int64
		var vs models.VacancySummary
		if err := rows.Scan(&jobID, &vs.TotalShifts, &vs.TotalVacancy, &vs.TotalStandby, &vs.FilledVacancy, &vs.StandbyFilled); err != nil {
			return nil, fmt.Errorf("%w: scanning vacancy totals: %v", ErrDatabaseError, err)
		}
		totals[jobID] = vs
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating vacancy totals: %v", ErrDatabaseError, err)
	}
	return totals, nil
}
