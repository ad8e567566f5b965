package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalWage(t *testing.T) {
	assert.Equal(t, 90.0, ComputeTotalWage(RateTypeHourly, 15, 6))
	assert.Equal(t, 120.0, ComputeTotalWage(RateTypeFlat, 120, 6), "flat rate ignores duration")
	assert.Equal(t, 0.0, ComputeTotalWage(RateTypeHourly, 12.5, 0))
}

func TestShiftPoolHelpers(t *testing.T) {
	shift := Shift{Vacancy: 2, StandbyVacancy: 1}

	assert.False(t, shift.IsFullyBooked())
	assert.False(t, shift.StandbyOpen(), "standby only opens once the normal pool is full")

	shift.FilledVacancy = 2
	assert.True(t, shift.IsFullyBooked())
	assert.True(t, shift.StandbyOpen())

	shift.StandbyFilled = 1
	assert.True(t, shift.IsFullyBooked())
	assert.False(t, shift.StandbyOpen())
}

// Two seats plus one standby serve exactly three workers; a fourth finds
// every pool closed.
func TestShiftCapacitySequence(t *testing.T) {
	shift := Shift{Vacancy: 2, StandbyVacancy: 1}

	for i := 0; i < 2; i++ {
		require.False(t, shift.IsFullyBooked())
		shift.FilledVacancy++
	}
	require.True(t, shift.IsFullyBooked())
	require.True(t, shift.StandbyOpen())
	shift.StandbyFilled++

	assert.True(t, shift.IsFullyBooked())
	assert.False(t, shift.StandbyOpen())
}

func TestShiftStartOn(t *testing.T) {
	shift := Shift{
		StartTime: "09:30", StartMeridian: "AM",
		EndTime: "06:00", EndMeridian: "PM",
	}
	date := time.Date(2025, time.March, 14, 22, 45, 0, 0, time.UTC)

	start, err := shift.StartOn(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC), start)

	end, err := shift.EndOn(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 14, 18, 0, 0, 0, time.UTC), end)
}

func TestShiftStartOnInvalidTime(t *testing.T) {
	shift := Shift{StartTime: "25:00", StartMeridian: "AM"}
	_, err := shift.StartOn(time.Now())
	assert.Error(t, err)
}
