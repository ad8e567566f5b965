package models

import "time"

// Worker roles. Workers with RoleUser are the platform's "Hustle Heroes".
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Worker is a platform user: either a Hustle Hero applying to shifts or an
// admin operating the back office.
type Worker struct {
	ID                int64      `json:"id" db:"id"`
	FullName          string     `json:"full_name" db:"full_name"`
	PhoneNumber       string     `json:"phone_number" db:"phone_number"`
	Email             string     `json:"email" db:"email"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	Role              string     `json:"role" db:"role"`
	ProfilePicture    string     `json:"profile_picture" db:"profile_picture"`
	ProfileCompleted  bool       `json:"profile_completed" db:"profile_completed"`
	CancellationCount int        `json:"cancellation_count" db:"cancellation_count"`
	LastLogin         *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}
