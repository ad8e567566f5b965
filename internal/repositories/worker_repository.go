package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
)

// WorkerRepository defines the interface for worker-related database operations.
type WorkerRepository interface {
	CreateWorker(worker *models.Worker) (*models.Worker, error)
	GetWorkerByID(id int64) (*models.Worker, error)
	GetWorkerByEmail(email string) (*models.Worker, error)
	IncrementCancellationCount(executor SQLExecutor, id int64) error
	UpdateLastLogin(id int64) error
	CountWorkers() (int, error)
}

type workerRepository struct {
	db *sql.DB
}

// NewWorkerRepository creates a new instance of WorkerRepository.
func NewWorkerRepository(db *sql.DB) WorkerRepository {
	return &workerRepository{db: db}
}

const selectWorkerFields = `
	id, full_name, phone_number, email, password_hash, role,
	profile_picture, profile_completed, cancellation_count, last_login,
	created_at, updated_at
`

func scanWorker(row scanner) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(
		&w.ID, &w.FullName, &w.PhoneNumber, &w.Email, &w.PasswordHash, &w.Role,
		&w.ProfilePicture, &w.ProfileCompleted, &w.CancellationCount, &w.LastLogin,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning worker: %v", ErrDatabaseError, err)
	}
	return &w, nil
}

func (r *workerRepository) CreateWorker(worker *models.Worker) (*models.Worker, error) {
	query := `INSERT INTO workers
	            (full_name, phone_number, email, password_hash, role, profile_picture, profile_completed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		worker.FullName, worker.PhoneNumber, worker.Email, worker.PasswordHash,
		worker.Role, worker.ProfilePicture, worker.ProfileCompleted, time.Now(),
	).Scan(&worker.ID, &worker.CreatedAt, &worker.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: creating worker: %v", ErrDatabaseError, err)
	}
	return worker, nil
}

func (r *workerRepository) GetWorkerByID(id int64) (*models.Worker, error) {
	query := "SELECT " + selectWorkerFields + " FROM workers WHERE id = $1"
	return scanWorker(r.db.QueryRow(query, id))
}

func (r *workerRepository) GetWorkerByEmail(email string) (*models.Worker, error) {
	query := "SELECT " + selectWorkerFields + " FROM workers WHERE email = $1"
	return scanWorker(r.db.QueryRow(query, email))
}

// IncrementCancellationCount bumps the worker's lifetime cancellation tally.
// It runs on the executor so the caller can keep it inside the cancellation
// transaction.
func (r *workerRepository) IncrementCancellationCount(executor SQLExecutor, id int64) error {
	query := `UPDATE workers SET cancellation_count = cancellation_count + 1, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: incrementing cancellation count for worker %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *workerRepository) UpdateLastLogin(id int64) error {
	query := `UPDATE workers SET last_login = $1, updated_at = $1 WHERE id = $2`
	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating last login for worker %d: %v", ErrDatabaseError, id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *workerRepository) CountWorkers() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM workers WHERE role = $1`, models.RoleUser).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting workers: %v", ErrDatabaseError, err)
	}
	return count, nil
}
