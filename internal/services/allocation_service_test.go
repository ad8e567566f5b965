package services

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyFixtures() (*models.Worker, *models.Job, *models.Shift) {
	worker := &models.Worker{ID: 2, ProfileCompleted: true}
	job := &models.Job{ID: 7, JobName: "Banquet Server"}
	shift := &models.Shift{ID: 11, JobID: 7, StartTime: "10:00", StartMeridian: "AM", Vacancy: 3, StandbyVacancy: 1}
	return worker, job, shift
}

func newAllocationFixture(t *testing.T, worker *models.Worker, job *models.Job, shift *models.Shift) (*allocationService, *mockShiftRepo, *mockApplicationRepo, *mockWorkerRepo, *mockFileStore, *mockNotifier) {
	t.Helper()
	workerRepo := &mockWorkerRepo{
		getByID: func(id int64) (*models.Worker, error) {
			if worker == nil || id != worker.ID {
				return nil, repositories.ErrNotFound
			}
			return worker, nil
		},
	}
	jobRepo := &mockJobRepo{
		getByID: func(id int64) (*models.Job, error) {
			if job == nil || id != job.ID {
				return nil, repositories.ErrNotFound
			}
			return job, nil
		},
	}
	shiftRepo := &mockShiftRepo{
		getByID: func(id int64) (*models.Shift, error) {
			if shift == nil || id != shift.ID {
				return nil, repositories.ErrNotFound
			}
			return shift, nil
		},
		reserveVacancy: func(shiftID int64) (bool, error) { return true, nil },
		reserveStandby: func(shiftID int64) (bool, error) { return false, nil },
	}
	appRepo := &mockApplicationRepo{}
	fileStore := &mockFileStore{}
	notifier := &mockNotifier{}
	svc := &allocationService{
		workerRepo:      workerRepo,
		jobRepo:         jobRepo,
		shiftRepo:       shiftRepo,
		applicationRepo: appRepo,
		fileStore:       fileStore,
		notifier:        notifier,
		db:              newStubDB(t),
		now:             time.Now,
	}
	return svc, shiftRepo, appRepo, workerRepo, fileStore, notifier
}

func TestApplyReservesNormalSeat(t *testing.T) {
	worker, job, shift := applyFixtures()
	svc, _, _, _, _, notifier := newAllocationFixture(t, worker, job, shift)

	app, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusUpcoming, app.Status)
	assert.Equal(t, models.AppliedStatusApplied, app.AppliedStatus)
	assert.Equal(t, models.AdminStatusPending, app.AdminStatus)
	assert.False(t, app.IsStandby)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, worker.ID, notifier.sent[0].WorkerID)
}

func TestApplyFallsBackToStandby(t *testing.T) {
	worker, job, shift := applyFixtures()
	svc, shiftRepo, _, _, _, _ := newAllocationFixture(t, worker, job, shift)
	shiftRepo.reserveVacancy = func(shiftID int64) (bool, error) { return false, nil }
	shiftRepo.reserveStandby = func(shiftID int64) (bool, error) { return true, nil }

	app, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	assert.True(t, app.IsStandby)
}

func TestApplyCapacityExceeded(t *testing.T) {
	worker, job, shift := applyFixtures()
	svc, shiftRepo, appRepo, _, _, notifier := newAllocationFixture(t, worker, job, shift)
	shiftRepo.reserveVacancy = func(shiftID int64) (bool, error) { return false, nil }
	shiftRepo.reserveStandby = func(shiftID int64) (bool, error) { return false, nil }
	appRepo.createApplication = func(app *models.Application) (*models.Application, error) {
		t.Fatal("no application may be created once both pools are full")
		return nil, nil
	}

	_, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "2025-06-10"})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, notifier.sent)
}

func TestApplyRejectsDuplicate(t *testing.T) {
	worker, job, shift := applyFixtures()
	svc, _, appRepo, _, _, _ := newAllocationFixture(t, worker, job, shift)
	appRepo.hasActive = func(workerID, shiftID int64) (bool, error) { return true, nil }

	_, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "2025-06-10"})
	assert.ErrorIs(t, err, ErrDuplicateApplication)
}

func TestApplyRejectsIncompleteProfile(t *testing.T) {
	worker, job, shift := applyFixtures()
	worker.ProfileCompleted = false
	svc, _, _, _, _, _ := newAllocationFixture(t, worker, job, shift)

	_, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "2025-06-10"})
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestApplyRejectsMalformedDate(t *testing.T) {
	worker, job, shift := applyFixtures()
	svc, _, _, workerRepo, _, _ := newAllocationFixture(t, worker, job, shift)
	workerRepo.getByID = func(id int64) (*models.Worker, error) {
		t.Fatal("a malformed date must be rejected before any repository read")
		return nil, nil
	}

	_, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "not-a-date"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestApplyRejectsShiftFromOtherJob(t *testing.T) {
	worker, job, shift := applyFixtures()
	shift.JobID = job.ID + 1
	svc, _, _, _, _, _ := newAllocationFixture(t, worker, job, shift)

	_, err := svc.Apply(worker.ID, ApplyRequest{JobID: job.ID, ShiftID: shift.ID, Date: "2025-06-10"})
	assert.ErrorIs(t, err, ErrShiftNotInJob)
}

func cancellableApplication(shift *models.Shift) *models.Application {
	return &models.Application{
		ID:            31,
		WorkerID:      2,
		JobID:         shift.JobID,
		ShiftID:       shift.ID,
		Status:        models.ApplicationStatusUpcoming,
		AppliedStatus: models.AppliedStatusApplied,
		AdminStatus:   models.AdminStatusConfirmed,
		Shift:         shift,
	}
}

func TestCancelAppliesPenaltyAndReleasesSeat(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	svc, shiftRepo, appRepo, workerRepo, _, notifier := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }
	// Seven hours before the 10:00 AM shift start.
	svc.now = func() time.Time { return time.Date(2025, time.June, 10, 3, 0, 0, 0, time.UTC) }

	var cancelled *models.Application
	appRepo.markCancelled = func(a *models.Application) error {
		cancelled = a
		return nil
	}
	incremented := false
	workerRepo.incrementCancels = func(id int64) error {
		assert.Equal(t, app.WorkerID, id)
		incremented = true
		return nil
	}
	released := false
	shiftRepo.releaseVacancy = func(shiftID int64, standby bool) error {
		assert.Equal(t, shift.ID, shiftID)
		assert.False(t, standby)
		released = true
		return nil
	}

	got, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{Reason: string(models.ReasonPersonal)})
	require.NoError(t, err)
	require.NotNil(t, cancelled)
	assert.Equal(t, models.AppliedStatusCancelled, cancelled.AppliedStatus)
	assert.Equal(t, models.AdminStatusPending, cancelled.AdminStatus)
	require.NotNil(t, cancelled.Penalty)
	assert.Equal(t, 15.0, *cancelled.Penalty)
	assert.Equal(t, "> 6 Hours (3rd Time)", *cancelled.PenaltyLabel)
	assert.Equal(t, "No additional details provided", *got.DescribedReason)
	assert.True(t, incremented)
	assert.True(t, released)
	require.Len(t, notifier.sent, 1)
}

func TestCancelStandbyReleasesStandbyPool(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	app.IsStandby = true
	svc, shiftRepo, appRepo, _, _, _ := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }

	var gotStandby bool
	shiftRepo.releaseVacancy = func(shiftID int64, standby bool) error {
		gotStandby = standby
		return nil
	}

	_, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{Reason: string(models.ReasonOthers)})
	require.NoError(t, err)
	assert.True(t, gotStandby)
}

func TestCancelMedicalRequiresEvidence(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	svc, _, appRepo, _, fileStore, _ := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }

	_, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{Reason: string(models.ReasonMedical)})
	assert.ErrorIs(t, err, ErrEvidenceRequired)
	assert.Empty(t, fileStore.saved)
}

func TestCancelMedicalStoresEvidence(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	svc, _, appRepo, _, fileStore, _ := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }

	got, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{
		Reason:   string(models.ReasonMedical),
		Evidence: &multipart.FileHeader{Filename: "mc.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, fileStore.saved, 1)
	assert.Contains(t, fileStore.saved[0], "mc-certificates")
	require.NotNil(t, got.MedicalCert)
}

func TestCancelIgnoresEvidenceForOtherReasons(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	svc, _, appRepo, _, fileStore, _ := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }

	got, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{
		Reason:   string(models.ReasonTransportIssue),
		Evidence: &multipart.FileHeader{Filename: "mc.pdf"},
	})
	require.NoError(t, err)
	assert.Empty(t, fileStore.saved)
	assert.Nil(t, got.MedicalCert)
}

func TestCancelEvidenceUploadFailureAborts(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	svc, _, appRepo, _, fileStore, _ := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }
	fileStore.err = assert.AnError
	appRepo.markCancelled = func(a *models.Application) error {
		t.Fatal("a failed evidence upload must abort before any mutation")
		return nil
	}

	_, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{
		Reason:   string(models.ReasonMedical),
		Evidence: &multipart.FileHeader{Filename: "mc.pdf"},
	})
	assert.ErrorIs(t, err, ErrEvidenceUpload)
}

func TestCancelRejectsInvalidReason(t *testing.T) {
	svc, _, _, _, _, _ := newAllocationFixture(t, nil, nil, nil)

	_, err := svc.Cancel(2, 31, CancelRequest{Reason: "Rain"})
	assert.ErrorIs(t, err, ErrInvalidReason)
}

func TestCancelLosingRaceReportsAlreadyCancelled(t *testing.T) {
	_, _, shift := applyFixtures()
	app := cancellableApplication(shift)
	svc, shiftRepo, appRepo, workerRepo, _, notifier := newAllocationFixture(t, nil, nil, nil)
	appRepo.getByID = func(id int64) (*models.Application, error) { return app, nil }
	appRepo.markCancelled = func(a *models.Application) error {
		// A concurrent cancel flipped the row first; the guarded update
		// matches nothing.
		return repositories.ErrNotFound
	}
	shiftRepo.releaseVacancy = func(shiftID int64, standby bool) error {
		t.Fatal("a lost cancellation race must not release the seat again")
		return nil
	}
	workerRepo.incrementCancels = func(id int64) error {
		t.Fatal("a lost cancellation race must not bump the cancellation count")
		return nil
	}

	_, err := svc.Cancel(app.WorkerID, app.ID, CancelRequest{Reason: string(models.ReasonOthers)})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Empty(t, notifier.sent)
}
