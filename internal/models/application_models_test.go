package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidApplicationStatus(t *testing.T) {
	for _, status := range []string{"Upcoming", "Completed", "Cancelled", "No Show"} {
		assert.True(t, IsValidApplicationStatus(status), status)
	}
	assert.False(t, IsValidApplicationStatus("Active"))
	assert.False(t, IsValidApplicationStatus("upcoming"))
	assert.False(t, IsValidApplicationStatus(""))
}

func TestCanReview(t *testing.T) {
	tests := []struct {
		name    string
		current AdminStatus
		want    bool
	}{
		{"pending can be reviewed", AdminStatusPending, true},
		{"confirmed is terminal", AdminStatusConfirmed, false},
		{"rejected is terminal", AdminStatusRejected, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanReview(tt.current))
		})
	}
}

func TestCancellationReasonValidation(t *testing.T) {
	for _, reason := range []string{"Medical", "Emergency", "Personal Reason", "Transport Issue", "Others"} {
		assert.True(t, IsValidCancellationReason(reason), reason)
	}
	assert.False(t, IsValidCancellationReason("Sick"))
	assert.False(t, IsValidCancellationReason(""))
}

func TestRequiresEvidence(t *testing.T) {
	assert.True(t, ReasonMedical.RequiresEvidence())
	assert.False(t, ReasonEmergency.RequiresEvidence())
	assert.False(t, ReasonPersonal.RequiresEvidence())
	assert.False(t, ReasonTransportIssue.RequiresEvidence())
	assert.False(t, ReasonOthers.RequiresEvidence())
}

func TestHasAttendanceEvidence(t *testing.T) {
	now := time.Now()
	var app Application
	assert.False(t, app.HasAttendanceEvidence())

	app.ClockInTime = &now
	assert.False(t, app.HasAttendanceEvidence(), "clock-in alone is not evidence")

	app.ClockOutTime = &now
	assert.True(t, app.HasAttendanceEvidence())

	app.ClockInTime = nil
	assert.False(t, app.HasAttendanceEvidence(), "clock-out alone is not evidence")
}
