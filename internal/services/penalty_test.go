package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePenalty(t *testing.T) {
	tests := []struct {
		name       string
		hours      float64
		wantAmount float64
		wantLabel  string
	}{
		{"three days out", 72, 0, "> 48 Hours (No Penalty)"},
		{"exactly 48 hours", 48, 0, "> 48 Hours (No Penalty)"},
		{"30 hours", 30, 5, "> 24 Hours (1st Time)"},
		{"exactly 24 hours", 24, 5, "> 24 Hours (1st Time)"},
		{"18 hours", 18, 10, "> 12 Hours (2nd Time)"},
		{"exactly 12 hours", 12, 10, "> 12 Hours (2nd Time)"},
		{"8 hours", 8, 15, "> 6 Hours (3rd Time)"},
		{"exactly 6 hours", 6, 15, "> 6 Hours (3rd Time)"},
		{"90 minutes", 1.5, 50, "< 6 Hours (Last Minute)"},
		{"at the start", 0, 50, "< 6 Hours (Last Minute)"},
		{"shift already started", -2, 50, "Immediate Cancellation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, label := ComputePenalty(tt.hours)
			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

// Cancelling earlier never costs more than cancelling later.
func TestComputePenaltyMonotonic(t *testing.T) {
	prev := -0.1
	var prevAmount float64 = 50
	for hours := 0.0; hours <= 96; hours += 0.5 {
		amount, _ := ComputePenalty(hours)
		assert.LessOrEqual(t, amount, prevAmount, "penalty rose between %.1f and %.1f hours", prev, hours)
		prev = hours
		prevAmount = amount
	}
}
