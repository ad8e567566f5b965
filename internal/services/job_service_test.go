package services

import (
	"testing"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobFixture(t *testing.T, jobRepo *mockJobRepo, shiftRepo *mockShiftRepo, appRepo *mockApplicationRepo, at time.Time) *jobService {
	t.Helper()
	return &jobService{
		jobRepo:         jobRepo,
		shiftRepo:       shiftRepo,
		applicationRepo: appRepo,
		db:              newStubDB(t),
		now:             func() time.Time { return at },
	}
}

func TestDeleteJobSoftCancelsWhenApplicationsExist(t *testing.T) {
	jobRepo := &mockJobRepo{}
	shiftRepo := &mockShiftRepo{}
	appRepo := &mockApplicationRepo{
		countByJob: func(jobID int64) (int, error) { return 3, nil },
	}
	cancelled := false
	jobRepo.setCancelled = func(id int64, flag bool) error {
		assert.Equal(t, int64(42), id)
		assert.True(t, flag)
		cancelled = true
		return nil
	}
	jobRepo.deleteJob = func(id int64) error {
		t.Fatal("a job with applications must never be hard-deleted")
		return nil
	}
	shiftRepo.deleteByJobID = func(jobID int64) error {
		t.Fatal("shifts of a job with applications must never be deleted")
		return nil
	}
	svc := newJobFixture(t, jobRepo, shiftRepo, appRepo, time.Now())

	require.NoError(t, svc.DeleteJob(42))
	assert.True(t, cancelled)
}

func TestDeleteJobHardDeletesWhenNoApplications(t *testing.T) {
	jobRepo := &mockJobRepo{}
	shiftRepo := &mockShiftRepo{}
	appRepo := &mockApplicationRepo{
		countByJob: func(jobID int64) (int, error) { return 0, nil },
	}
	shiftsDeleted := false
	shiftRepo.deleteByJobID = func(jobID int64) error {
		assert.Equal(t, int64(42), jobID)
		shiftsDeleted = true
		return nil
	}
	jobDeleted := false
	jobRepo.deleteJob = func(id int64) error {
		jobDeleted = true
		return nil
	}
	jobRepo.setCancelled = func(id int64, flag bool) error {
		t.Fatal("an unapplied job is removed outright, not cancelled")
		return nil
	}
	svc := newJobFixture(t, jobRepo, shiftRepo, appRepo, time.Now())

	require.NoError(t, svc.DeleteJob(42))
	assert.True(t, shiftsDeleted)
	assert.True(t, jobDeleted)
}

func TestAdminJobsStatusFilterPagesAfterProjection(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	jobs := []models.Job{
		{ID: 1, Date: now.AddDate(0, 0, 1)},  // Upcoming
		{ID: 2, Date: now.AddDate(0, 0, -1)}, // Active
		{ID: 3, Date: now.AddDate(0, 0, 2)},  // Upcoming
		{ID: 4, Date: now.AddDate(0, 0, -2)}, // Active
		{ID: 5, Date: now.AddDate(0, 0, 3)},  // Upcoming
	}
	var seen models.JobFilters
	jobRepo := &mockJobRepo{
		getJobs: func(filters models.JobFilters) ([]models.Job, int, error) {
			seen = filters
			return jobs, len(jobs), nil
		},
	}
	svc := newJobFixture(t, jobRepo, &mockShiftRepo{}, &mockApplicationRepo{}, now)

	status := string(JobStatusUpcoming)
	filters := models.JobFilters{Status: &status, Page: 1, PageSize: 2}
	rows, total, err := svc.GetAdminJobs(filters)
	require.NoError(t, err)

	// SQL pagination is bypassed so no matching job can fall outside the page
	// window before projection.
	assert.Zero(t, seen.Page)
	assert.Zero(t, seen.PageSize)

	assert.Equal(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Job.ID)
	assert.Equal(t, int64(3), rows[1].Job.ID)

	filters.Page = 2
	rows, total, err = svc.GetAdminJobs(filters)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5), rows[0].Job.ID)
}

func TestAdminJobsWithoutStatusFilterKeepsRepoPaging(t *testing.T) {
	var seen models.JobFilters
	jobRepo := &mockJobRepo{
		getJobs: func(filters models.JobFilters) ([]models.Job, int, error) {
			seen = filters
			return nil, 0, nil
		},
	}
	svc := newJobFixture(t, jobRepo, &mockShiftRepo{}, &mockApplicationRepo{}, time.Now())

	_, _, err := svc.GetAdminJobs(models.JobFilters{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, seen.Page)
	assert.Equal(t, 10, seen.PageSize)
}
