package services

import (
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
)

// JobStatus is the derived, display-only status of a job. It is never stored;
// every surface that shows a job status computes it through ProjectJobStatus.
type JobStatus string

const (
	JobStatusActive    JobStatus = "Active"
	JobStatusUpcoming  JobStatus = "Upcoming"
	JobStatusCompleted JobStatus = "Completed"
	JobStatusCancelled JobStatus = "Cancelled"
)

// ProjectJobStatus derives a job's status from its cancellation flag, its
// date relative to now, and whether any application carries attendance
// evidence. Deterministic for fixed inputs, so repeated projection never
// changes the answer.
func ProjectJobStatus(job *models.Job, hasAttendance bool, now time.Time) JobStatus {
	if job.IsCancelled {
		return JobStatusCancelled
	}
	if job.Date.After(now) {
		return JobStatusUpcoming
	}
	if hasAttendance {
		return JobStatusCompleted
	}
	return JobStatusActive
}

// AttendanceRate returns attended/total as a percentage. A job with no
// applications counts as fully attended so it never trips the no-show filter.
func AttendanceRate(attended, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(attended) / float64(total) * 100
}

// HasHighNoShowRate flags jobs whose attendance rate falls below half.
func HasHighNoShowRate(attended, total int) bool {
	return AttendanceRate(attended, total) < 50
}

// SlotLabel summarizes a job's open capacity for the worker-facing job feed.
// remainingVacancy is the unfilled normal-pool count across the job's shifts;
// standbyOpen reports whether any standby seat is still free.
func SlotLabel(remainingVacancy int, standbyOpen bool) string {
	switch {
	case remainingVacancy >= 10:
		return "Trending"
	case remainingVacancy > 3:
		return "Limited Slots"
	case remainingVacancy == 1:
		return "Last Slot"
	case remainingVacancy == 0 && standbyOpen:
		return "Standby Slot Available"
	default:
		return "New"
	}
}
