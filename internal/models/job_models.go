package models

import (
	"fmt"
	"time"
)

// RateType values for a shift's pay calculation.
const (
	RateTypeHourly = "Hourly rate"
	RateTypeFlat   = "Flat rate"
)

// BreakType values for whether a shift's break is paid.
const (
	BreakTypePaid   = "Paid"
	BreakTypeUnpaid = "Unpaid"
)

// Job is a posted work opportunity at an employer's outlet.
type Job struct {
	ID              int64     `json:"id" db:"id"`
	JobName         string    `json:"job_name" db:"job_name" binding:"required"`
	JobIcon         string    `json:"job_icon" db:"job_icon"`
	EmployerID      int64     `json:"employer_id" db:"employer_id"`
	OutletID        int64     `json:"outlet_id" db:"outlet_id"`
	Date            time.Time `json:"date" db:"date"`
	Location        string    `json:"location" db:"location"`
	ShortAddress    *string   `json:"short_address,omitempty" db:"short_address"`
	Industry        *string   `json:"industry,omitempty" db:"industry"`
	JobScope        []string  `json:"job_scope,omitempty" db:"job_scope"`
	JobRequirements []string  `json:"job_requirements,omitempty" db:"job_requirements"`
	IsCancelled     bool      `json:"is_cancelled" db:"is_cancelled"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Employer *Employer `json:"employer,omitempty"`
	Outlet   *Outlet   `json:"outlet,omitempty"`
	Shifts   []Shift   `json:"shifts,omitempty"`
}

// Shift is one schedulable occurrence within a job. The two filled counters
// are the only shared-mutable state in the system; they change exclusively
// through the allocation service's conditional updates and always satisfy
// 0 <= FilledVacancy <= Vacancy and 0 <= StandbyFilled <= StandbyVacancy.
type Shift struct {
	ID             int64     `json:"id" db:"id"`
	JobID          int64     `json:"job_id" db:"job_id"`
	StartTime      string    `json:"start_time" db:"start_time" binding:"required"`
	StartMeridian  string    `json:"start_meridian" db:"start_meridian" binding:"required"`
	EndTime        string    `json:"end_time" db:"end_time" binding:"required"`
	EndMeridian    string    `json:"end_meridian" db:"end_meridian" binding:"required"`
	Vacancy        int       `json:"vacancy" db:"vacancy"`
	StandbyVacancy int       `json:"standby_vacancy" db:"standby_vacancy"`
	FilledVacancy  int       `json:"filled_vacancy" db:"filled_vacancy"`
	StandbyFilled  int       `json:"standby_filled" db:"standby_filled"`
	Duration       float64   `json:"duration" db:"duration"`
	BreakHours     float64   `json:"break_hours" db:"break_hours"`
	BreakType      string    `json:"break_type" db:"break_type"`
	RateType       string    `json:"rate_type" db:"rate_type"`
	PayRate        float64   `json:"pay_rate" db:"pay_rate"`
	TotalWage      float64   `json:"total_wage" db:"total_wage"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ComputeTotalWage derives a shift's total wage from its rate type: hourly
// shifts pay rate times duration, everything else is a flat amount.
func ComputeTotalWage(rateType string, payRate, duration float64) float64 {
	if rateType == RateTypeHourly {
		return payRate * duration
	}
	return payRate
}

// IsFullyBooked reports whether the normal vacancy pool is exhausted.
func (s *Shift) IsFullyBooked() bool {
	return s.FilledVacancy >= s.Vacancy
}

// StandbyOpen reports whether the standby pool can still take a worker.
// Standby is only offered once the normal pool is full.
func (s *Shift) StandbyOpen() bool {
	return s.IsFullyBooked() && s.StandbyFilled < s.StandbyVacancy
}

// StartOn composes the shift's stored clock time and meridian onto the given
// date, in that date's location.
func (s *Shift) StartOn(date time.Time) (time.Time, error) {
	return composeShiftTime(date, s.StartTime, s.StartMeridian)
}

// EndOn composes the shift's stored end time and meridian onto the given date.
func (s *Shift) EndOn(date time.Time) (time.Time, error) {
	return composeShiftTime(date, s.EndTime, s.EndMeridian)
}

func composeShiftTime(date time.Time, clock, meridian string) (time.Time, error) {
	t, err := time.Parse("03:04 PM", fmt.Sprintf("%s %s", clock, meridian))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid shift time %q %q: %w", clock, meridian, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// VacancySummary aggregates shift capacity for one job.
type VacancySummary struct {
	TotalShifts   int `json:"total_shifts"`
	TotalVacancy  int `json:"total_vacancy"`
	TotalStandby  int `json:"total_standby"`
	FilledVacancy int `json:"filled_vacancy"`
	StandbyFilled int `json:"standby_filled"`
}

// JobFilters defines the available filters for querying jobs.
type JobFilters struct {
	JobName    *string    `form:"job_name"`
	EmployerID *int64     `form:"employer_id"`
	OutletID   *int64     `form:"outlet_id"`
	City       *string    `form:"city"`
	Status     *string    `form:"status"`
	DateFrom   *time.Time `form:"date_from"`
	DateTo     *time.Time `form:"date_to"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}
