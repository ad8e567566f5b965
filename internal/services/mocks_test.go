package services

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"mime/multipart"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
)

// mockApplicationRepo is a hand-written stub; tests set only the functions
// the code under test will call.
type mockApplicationRepo struct {
	getByID           func(id int64) (*models.Application, error)
	updateAdminStatus func(id int64, status models.AdminStatus, reason *string) error
	getApplications   func(filters models.ApplicationFilters) ([]models.Application, int, error)
	setClockIn        func(id int64, at time.Time, location *string) error
	setClockOut       func(id int64, at time.Time) error
	markCompleted     func(id int64, at time.Time) error
	markNoShow        func(id int64) error
	createApplication func(app *models.Application) (*models.Application, error)
	hasActive         func(workerID, shiftID int64) (bool, error)
	markCancelled     func(app *models.Application) error
	jobHasAttendance  func(jobID int64) (bool, error)
	countByJob        func(jobID int64) (int, error)
}

func (m *mockApplicationRepo) CreateApplication(_ repositories.SQLExecutor, app *models.Application) (*models.Application, error) {
	if m.createApplication != nil {
		return m.createApplication(app)
	}
	return app, nil
}

func (m *mockApplicationRepo) GetApplicationByID(id int64) (*models.Application, error) {
	return m.getByID(id)
}

func (m *mockApplicationRepo) GetApplications(filters models.ApplicationFilters) ([]models.Application, int, error) {
	return m.getApplications(filters)
}

func (m *mockApplicationRepo) HasActiveApplication(workerID, shiftID int64) (bool, error) {
	if m.hasActive != nil {
		return m.hasActive(workerID, shiftID)
	}
	return false, nil
}

func (m *mockApplicationRepo) MarkCancelled(_ repositories.SQLExecutor, app *models.Application) error {
	if m.markCancelled != nil {
		return m.markCancelled(app)
	}
	return nil
}

func (m *mockApplicationRepo) UpdateAdminStatus(_ repositories.SQLExecutor, id int64, status models.AdminStatus, reason *string) error {
	return m.updateAdminStatus(id, status, reason)
}

func (m *mockApplicationRepo) SetClockIn(_ repositories.SQLExecutor, id int64, at time.Time, location *string) error {
	return m.setClockIn(id, at, location)
}

func (m *mockApplicationRepo) SetClockOut(_ repositories.SQLExecutor, id int64, at time.Time) error {
	return m.setClockOut(id, at)
}

func (m *mockApplicationRepo) MarkCompleted(_ repositories.SQLExecutor, id int64, at time.Time) error {
	return m.markCompleted(id, at)
}

func (m *mockApplicationRepo) MarkNoShow(_ repositories.SQLExecutor, id int64) error {
	return m.markNoShow(id)
}

func (m *mockApplicationRepo) StatsByJob(jobIDs []int64) (map[int64]repositories.ApplicationStats, error) {
	return map[int64]repositories.ApplicationStats{}, nil
}

func (m *mockApplicationRepo) JobHasAttendanceEvidence(jobID int64) (bool, error) {
	if m.jobHasAttendance != nil {
		return m.jobHasAttendance(jobID)
	}
	return false, nil
}

func (m *mockApplicationRepo) CountByJob(_ repositories.SQLExecutor, jobID int64) (int, error) {
	if m.countByJob != nil {
		return m.countByJob(jobID)
	}
	return 0, nil
}

func (m *mockApplicationRepo) CountByStatus(status models.ApplicationStatus) (int, error) {
	return 0, nil
}

// mockNotifier records the notifications the code under test emitted.
type mockNotifier struct {
	sent []models.Notification
}

func (m *mockNotifier) Notify(n models.Notification) {
	m.sent = append(m.sent, n)
}

// mockWorkerRepo stubs worker lookups for allocation flows.
type mockWorkerRepo struct {
	getByID          func(id int64) (*models.Worker, error)
	incrementCancels func(id int64) error
}

func (m *mockWorkerRepo) CreateWorker(worker *models.Worker) (*models.Worker, error) {
	return worker, nil
}

func (m *mockWorkerRepo) GetWorkerByID(id int64) (*models.Worker, error) {
	return m.getByID(id)
}

func (m *mockWorkerRepo) GetWorkerByEmail(email string) (*models.Worker, error) {
	return nil, repositories.ErrNotFound
}

func (m *mockWorkerRepo) IncrementCancellationCount(_ repositories.SQLExecutor, id int64) error {
	if m.incrementCancels != nil {
		return m.incrementCancels(id)
	}
	return nil
}

func (m *mockWorkerRepo) UpdateLastLogin(id int64) error { return nil }

func (m *mockWorkerRepo) CountWorkers() (int, error) { return 0, nil }

// mockJobRepo stubs the job table.
type mockJobRepo struct {
	getByID      func(id int64) (*models.Job, error)
	getJobs      func(filters models.JobFilters) ([]models.Job, int, error)
	setCancelled func(id int64, cancelled bool) error
	deleteJob    func(id int64) error
	countJobs    func() (int, error)
}

func (m *mockJobRepo) CreateJob(_ repositories.SQLExecutor, job *models.Job) (*models.Job, error) {
	return job, nil
}

func (m *mockJobRepo) GetJobByID(id int64) (*models.Job, error) {
	return m.getByID(id)
}

func (m *mockJobRepo) GetJobs(filters models.JobFilters) ([]models.Job, int, error) {
	return m.getJobs(filters)
}

func (m *mockJobRepo) UpdateJob(_ repositories.SQLExecutor, job *models.Job) error { return nil }

func (m *mockJobRepo) SetCancelled(_ repositories.SQLExecutor, id int64, cancelled bool) error {
	if m.setCancelled != nil {
		return m.setCancelled(id, cancelled)
	}
	return nil
}

func (m *mockJobRepo) DeleteJob(_ repositories.SQLExecutor, id int64) error {
	if m.deleteJob != nil {
		return m.deleteJob(id)
	}
	return nil
}

func (m *mockJobRepo) CountJobs() (int, error) {
	if m.countJobs != nil {
		return m.countJobs()
	}
	return 0, nil
}

// mockShiftRepo stubs the shift table and its counter updates.
type mockShiftRepo struct {
	getByID        func(id int64) (*models.Shift, error)
	reserveVacancy func(shiftID int64) (bool, error)
	reserveStandby func(shiftID int64) (bool, error)
	releaseVacancy func(shiftID int64, standby bool) error
	deleteByJobID  func(jobID int64) error
	vacancyTotals  func(jobIDs []int64) (map[int64]models.VacancySummary, error)
}

func (m *mockShiftRepo) CreateShifts(_ repositories.SQLExecutor, jobID int64, shifts []models.Shift) ([]models.Shift, error) {
	return shifts, nil
}

func (m *mockShiftRepo) GetShiftByID(id int64) (*models.Shift, error) {
	return m.getByID(id)
}

func (m *mockShiftRepo) GetShiftsByJobID(jobID int64) ([]models.Shift, error) {
	return nil, nil
}

func (m *mockShiftRepo) DeleteShiftsByJobID(_ repositories.SQLExecutor, jobID int64) error {
	if m.deleteByJobID != nil {
		return m.deleteByJobID(jobID)
	}
	return nil
}

func (m *mockShiftRepo) ReserveVacancy(_ repositories.SQLExecutor, shiftID int64) (bool, error) {
	return m.reserveVacancy(shiftID)
}

func (m *mockShiftRepo) ReserveStandby(_ repositories.SQLExecutor, shiftID int64) (bool, error) {
	return m.reserveStandby(shiftID)
}

func (m *mockShiftRepo) ReleaseVacancy(_ repositories.SQLExecutor, shiftID int64, standby bool) error {
	if m.releaseVacancy != nil {
		return m.releaseVacancy(shiftID, standby)
	}
	return nil
}

func (m *mockShiftRepo) VacancyTotals(jobIDs []int64) (map[int64]models.VacancySummary, error) {
	if m.vacancyTotals != nil {
		return m.vacancyTotals(jobIDs)
	}
	return map[int64]models.VacancySummary{}, nil
}

// mockFileStore records saved evidence files without touching disk.
type mockFileStore struct {
	saved []string
	err   error
}

func (m *mockFileStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	path := filepath.Join(subdir, file.Filename)
	m.saved = append(m.saved, path)
	return path, nil
}

// stubTxDriver backs a *sql.DB whose transactions begin, commit and roll back
// without a database. Repository calls never reach it: the services under
// test only hand the transaction through to mocked repositories.
type stubTxDriver struct{}

func (stubTxDriver) Open(string) (driver.Conn, error) { return stubTxConn{}, nil }

type stubTxConn struct{}

func (stubTxConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("statements not supported")
}
func (stubTxConn) Close() error              { return nil }
func (stubTxConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var registerStubDriver sync.Once

// newStubDB returns a *sql.DB suitable for exercising transaction-owning
// services against mocked repositories.
func newStubDB(t *testing.T) *sql.DB {
	t.Helper()
	registerStubDriver.Do(func() {
		sql.Register("stubtx", stubTxDriver{})
	})
	db, err := sql.Open("stubtx", "")
	if err != nil {
		t.Fatalf("opening stub database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
