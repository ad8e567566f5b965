package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
)

// EmployerRepository defines the interface for employer and outlet database
// operations.
type EmployerRepository interface {
	CreateEmployer(employer *models.Employer) (*models.Employer, error)
	GetEmployerByID(id int64) (*models.Employer, error)
	GetEmployers() ([]models.Employer, error)
	CreateOutlet(outlet *models.Outlet) (*models.Outlet, error)
	GetOutletByID(id int64) (*models.Outlet, error)
	GetOutletsByEmployerID(employerID int64) ([]models.Outlet, error)
	CountEmployers() (int, error)
}

type employerRepository struct {
	db *sql.DB
}

// NewEmployerRepository creates a new instance of EmployerRepository.
func NewEmployerRepository(db *sql.DB) EmployerRepository {
	return &employerRepository{db: db}
}

const selectEmployerFields = `
	id, company_legal_name, company_logo, hq_address, company_email,
	contact_person, contact_number, account_manager, industry, created_at, updated_at
`

func scanEmployer(row scanner) (*models.Employer, error) {
	var e models.Employer
	err := row.Scan(
		&e.ID, &e.CompanyLegalName, &e.CompanyLogo, &e.HQAddress, &e.CompanyEmail,
		&e.ContactPerson, &e.ContactNumber, &e.AccountManager, &e.Industry, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning employer: %v", ErrDatabaseError, err)
	}
	return &e, nil
}

func (r *employerRepository) CreateEmployer(employer *models.Employer) (*models.Employer, error) {
	query := `INSERT INTO employers
	            (company_legal_name, company_logo, hq_address, company_email, contact_person, contact_number, account_manager, industry, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		employer.CompanyLegalName, employer.CompanyLogo, employer.HQAddress, employer.CompanyEmail,
		employer.ContactPerson, employer.ContactNumber, employer.AccountManager, employer.Industry, time.Now(),
	).Scan(&employer.ID, &employer.CreatedAt, &employer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating employer: %v", ErrDatabaseError, err)
	}
	return employer, nil
}

func (r *employerRepository) GetEmployerByID(id int64) (*models.Employer, error) {
	query := "SELECT " + selectEmployerFields + " FROM employers WHERE id = $1"
	return scanEmployer(r.db.QueryRow(query, id))
}

func (r *employerRepository) GetEmployers() ([]models.Employer, error) {
	employers := []models.Employer{}
	query := "SELECT " + selectEmployerFields + " FROM employers ORDER BY company_legal_name"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying employers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		employer, scanErr := scanEmployer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		employers = append(employers, *employer)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating employer rows: %v", ErrDatabaseError, err)
	}
	return employers, nil
}

func (r *employerRepository) CreateOutlet(outlet *models.Outlet) (*models.Outlet, error) {
	query := `INSERT INTO outlets
	            (employer_id, outlet_name, outlet_address, outlet_image, outlet_type, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(query,
		outlet.EmployerID, outlet.OutletName, outlet.OutletAddress, outlet.OutletImage, outlet.OutletType, time.Now(),
	).Scan(&outlet.ID, &outlet.CreatedAt, &outlet.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating outlet: %v", ErrDatabaseError, err)
	}
	return outlet, nil
}

func (r *employerRepository) GetOutletByID(id int64) (*models.Outlet, error) {
	var o models.Outlet
	query := `SELECT id, employer_id, outlet_name, outlet_address, outlet_image, outlet_type, created_at, updated_at
	          FROM outlets WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&o.ID, &o.EmployerID, &o.OutletName, &o.OutletAddress, &o.OutletImage, &o.OutletType, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning outlet: %v", ErrDatabaseError, err)
	}
	return &o, nil
}

func (r *employerRepository) GetOutletsByEmployerID(employerID int64) ([]models.Outlet, error) {
	outlets := []models.Outlet{}
	query := `SELECT id, employer_id, outlet_name, outlet_address, outlet_image, outlet_type, created_at, updated_at
	          FROM outlets WHERE employer_id = $1 ORDER BY outlet_name`

	rows, err := r.db.Query(query, employerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying outlets: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Outlet
		if scanErr := rows.Scan(
			&o.ID, &o.EmployerID, &o.OutletName, &o.OutletAddress, &o.OutletImage, &o.OutletType, &o.CreatedAt, &o.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("%w: scanning outlet: %v", ErrDatabaseError, scanErr)
		}
		outlets = append(outlets, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating outlet rows: %v", ErrDatabaseError, err)
	}
	return outlets, nil
}

func (r *employerRepository) CountEmployers() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM employers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting employers: %v", ErrDatabaseError, err)
	}
	return count, nil
}
