package models

import "time"

// Employer is a company posting jobs through the platform.
type Employer struct {
	ID               int64     `json:"id" db:"id"`
	CompanyLegalName string    `json:"company_legal_name" db:"company_legal_name" binding:"required"`
	CompanyLogo      string    `json:"company_logo" db:"company_logo"`
	HQAddress        *string   `json:"hq_address,omitempty" db:"hq_address"`
	CompanyEmail     *string   `json:"company_email,omitempty" db:"company_email"`
	ContactPerson    *string   `json:"contact_person,omitempty" db:"contact_person"`
	ContactNumber    *string   `json:"contact_number,omitempty" db:"contact_number"`
	AccountManager   *string   `json:"account_manager,omitempty" db:"account_manager"`
	Industry         *string   `json:"industry,omitempty" db:"industry"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Outlet is a physical location belonging to an employer where shifts happen.
type Outlet struct {
	ID            int64     `json:"id" db:"id"`
	EmployerID    int64     `json:"employer_id" db:"employer_id"`
	OutletName    string    `json:"outlet_name" db:"outlet_name" binding:"required"`
	OutletAddress string    `json:"outlet_address" db:"outlet_address"`
	OutletImage   string    `json:"outlet_image" db:"outlet_image"`
	OutletType    *string   `json:"outlet_type,omitempty" db:"outlet_type"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
