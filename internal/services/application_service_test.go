package services

import (
	"testing"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOngoingFiltersConfirmedUpcoming(t *testing.T) {
	var captured models.ApplicationFilters
	repo := &mockApplicationRepo{
		getApplications: func(filters models.ApplicationFilters) ([]models.Application, int, error) {
			captured = filters
			return []models.Application{}, 0, nil
		},
	}
	svc := NewApplicationService(repo)

	_, _, err := svc.GetOngoing(3, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, captured.WorkerID)
	assert.Equal(t, int64(3), *captured.WorkerID)
	require.NotNil(t, captured.Status)
	assert.Equal(t, "Upcoming", *captured.Status)
	require.NotNil(t, captured.AdminStatus)
	assert.Equal(t, "Confirmed", *captured.AdminStatus)
}

func TestCancelledViewFormatsPenalty(t *testing.T) {
	penalty := 15.0
	label := "> 6 Hours (3rd Time)"
	repo := &mockApplicationRepo{
		getApplications: func(filters models.ApplicationFilters) ([]models.Application, int, error) {
			return []models.Application{{
				ID:           1,
				Status:       models.ApplicationStatusCancelled,
				Penalty:      &penalty,
				PenaltyLabel: &label,
				Shift:        &models.Shift{TotalWage: 90, PayRate: 15, RateType: models.RateTypeHourly},
			}}, 1, nil
		},
	}
	svc := NewApplicationService(repo)

	views, total, err := svc.GetCancelled(3, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, views, 1)
	assert.Equal(t, "- $15", views[0].Penalty)
	assert.Equal(t, "$90", views[0].TotalWage)
	assert.Equal(t, "$15/hr", views[0].PayRate)
}

func TestGetDetailRecomputesNoticeWindow(t *testing.T) {
	penalty := 5.0
	label := "> 24 Hours (1st Time)"
	cancelledAt := time.Date(2025, time.June, 9, 8, 0, 0, 0, time.UTC)
	app := &models.Application{
		ID:           4,
		WorkerID:     3,
		Status:       models.ApplicationStatusCancelled,
		Penalty:      &penalty,
		PenaltyLabel: &label,
		CancelledAt:  &cancelledAt,
		Shift: &models.Shift{
			StartTime: "10:00", StartMeridian: "AM",
			EndTime: "06:00", EndMeridian: "PM",
			RateType: models.RateTypeHourly, PayRate: 12, TotalWage: 96,
		},
	}
	repo := &mockApplicationRepo{
		getByID: func(id int64) (*models.Application, error) { return app, nil },
	}
	svc := NewApplicationService(repo)

	detail, err := svc.GetDetail(3, 4)
	require.NoError(t, err)
	require.NotNil(t, detail.HoursBeforeStart)
	assert.InDelta(t, 2.0, *detail.HoursBeforeStart, 0.001)
	assert.Equal(t, "> 24 Hours (1st Time)", detail.PenaltyLabel, "stored label is authoritative")
	assert.Equal(t, "- $5", detail.Penalty)
}

func TestGetDetailHidesOtherWorkers(t *testing.T) {
	repo := &mockApplicationRepo{
		getByID: func(id int64) (*models.Application, error) {
			return &models.Application{ID: 4, WorkerID: 3}, nil
		},
	}
	svc := NewApplicationService(repo)

	_, err := svc.GetDetail(8, 4)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
