package models

import "time"

// ApplicationStatus is the worker-facing lifecycle status of an application.
type ApplicationStatus string

const (
	ApplicationStatusUpcoming  ApplicationStatus = "Upcoming"
	ApplicationStatusCompleted ApplicationStatus = "Completed"
	ApplicationStatusCancelled ApplicationStatus = "Cancelled"
	ApplicationStatusNoShow    ApplicationStatus = "No Show"
)

// IsValidApplicationStatus checks if the provided status string is a valid ApplicationStatus.
func IsValidApplicationStatus(status string) bool {
	switch ApplicationStatus(status) {
	case ApplicationStatusUpcoming,
		ApplicationStatusCompleted,
		ApplicationStatusCancelled,
		ApplicationStatusNoShow:
		return true
	default:
		return false
	}
}

// AppliedStatus tracks whether the worker's claim on the shift is live.
type AppliedStatus string

const (
	AppliedStatusApplied   AppliedStatus = "Applied"
	AppliedStatusCancelled AppliedStatus = "Cancelled"
)

// AdminStatus is the admin-review gate, distinct from the worker-facing
// lifecycle status. Pending is the only state with outgoing transitions;
// Confirmed and Rejected are terminal.
type AdminStatus string

const (
	AdminStatusPending   AdminStatus = "Pending"
	AdminStatusConfirmed AdminStatus = "Confirmed"
	AdminStatusRejected  AdminStatus = "Rejected"
)

// IsValidAdminStatus checks if the provided status string is a valid AdminStatus.
func IsValidAdminStatus(status string) bool {
	switch AdminStatus(status) {
	case AdminStatusPending, AdminStatusConfirmed, AdminStatusRejected:
		return true
	default:
		return false
	}
}

// CanReview reports whether an application in the given admin state can still
// be approved or rejected.
func CanReview(current AdminStatus) bool {
	return current == AdminStatusPending
}

// CancellationReason is the enumerated reason a worker gives when cancelling.
type CancellationReason string

const (
	ReasonMedical        CancellationReason = "Medical"
	ReasonEmergency      CancellationReason = "Emergency"
	ReasonPersonal       CancellationReason = "Personal Reason"
	ReasonTransportIssue CancellationReason = "Transport Issue"
	ReasonOthers         CancellationReason = "Others"
)

// IsValidCancellationReason checks if the provided reason string is one of the
// enumerated cancellation reasons.
func IsValidCancellationReason(reason string) bool {
	switch CancellationReason(reason) {
	case ReasonMedical, ReasonEmergency, ReasonPersonal, ReasonTransportIssue, ReasonOthers:
		return true
	default:
		return false
	}
}

// RequiresEvidence reports whether the reason needs an uploaded certificate.
// Only Medical cancellations carry evidence.
func (r CancellationReason) RequiresEvidence() bool {
	return r == ReasonMedical
}

// Application is one worker's claim on one (Job, Shift) pair. It is retained
// as an audit trail and never deleted except via cascading job deletion.
type Application struct {
	ID              int64             `json:"id" db:"id"`
	WorkerID        int64             `json:"worker_id" db:"worker_id"`
	JobID           int64             `json:"job_id" db:"job_id"`
	ShiftID         int64             `json:"shift_id" db:"shift_id"`
	Date            time.Time         `json:"date" db:"date"`
	Status          ApplicationStatus `json:"status" db:"status"`
	AppliedStatus   AppliedStatus     `json:"applied_status" db:"applied_status"`
	AdminStatus     AdminStatus       `json:"admin_status" db:"admin_status"`
	IsStandby       bool              `json:"is_standby" db:"is_standby"`
	Reason          *string           `json:"reason,omitempty" db:"reason"`
	DescribedReason *string           `json:"described_reason,omitempty" db:"described_reason"`
	Penalty         *float64          `json:"penalty,omitempty" db:"penalty"`
	PenaltyLabel    *string           `json:"penalty_label,omitempty" db:"penalty_label"`
	CancelledAt     *time.Time        `json:"cancelled_at,omitempty" db:"cancelled_at"`
	MedicalCert     *string           `json:"medical_certificate,omitempty" db:"medical_certificate"`
	ClockInTime     *time.Time        `json:"clock_in_time,omitempty" db:"clock_in_time"`
	ClockOutTime    *time.Time        `json:"clock_out_time,omitempty" db:"clock_out_time"`
	CheckInLocation *string           `json:"check_in_location,omitempty" db:"check_in_location"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`

	Worker *Worker `json:"worker,omitempty"`
	Job    *Job    `json:"job,omitempty"`
	Shift  *Shift  `json:"shift,omitempty"`
}

// HasAttendanceEvidence reports whether both clock timestamps are recorded.
// This is the single authoritative definition of "attended", shared by the
// job status projector and the attendance-rate aggregation.
func (a *Application) HasAttendanceEvidence() bool {
	return a.ClockInTime != nil && a.ClockOutTime != nil
}

// ApplicationFilters defines the available filters for querying applications.
type ApplicationFilters struct {
	WorkerID    *int64  `form:"worker_id"`
	JobID       *int64  `form:"job_id"`
	Status      *string `form:"status"`
	AdminStatus *string `form:"admin_status"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}
