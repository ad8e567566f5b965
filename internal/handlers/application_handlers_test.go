package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAllocationService struct {
	apply  func(workerID int64, req services.ApplyRequest) (*models.Application, error)
	cancel func(workerID, applicationID int64, req services.CancelRequest) (*models.Application, error)
}

func (m *mockAllocationService) Apply(workerID int64, req services.ApplyRequest) (*models.Application, error) {
	return m.apply(workerID, req)
}

func (m *mockAllocationService) Cancel(workerID, applicationID int64, req services.CancelRequest) (*models.Application, error) {
	return m.cancel(workerID, applicationID, req)
}

func newApplyRouter(alloc services.AllocationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewApplicationHandler(alloc, nil, nil)
	router.POST("/applications", func(c *gin.Context) {
		c.Set("userID", int64(3))
		handler.Apply(c)
	})
	router.POST("/applications/:id/cancel", func(c *gin.Context) {
		c.Set("userID", int64(3))
		handler.Cancel(c)
	})
	return router
}

func performApply(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestApplyCreated(t *testing.T) {
	alloc := &mockAllocationService{
		apply: func(workerID int64, req services.ApplyRequest) (*models.Application, error) {
			assert.Equal(t, int64(3), workerID)
			assert.Equal(t, int64(11), req.JobID)
			return &models.Application{ID: 1, WorkerID: workerID, JobID: req.JobID, ShiftID: req.ShiftID}, nil
		},
	}
	router := newApplyRouter(alloc)

	rec := performApply(t, router, gin.H{"job_id": 11, "shift_id": 4, "date": "2025-06-10"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, int64(1), app.ID)
}

func TestApplyErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"capacity exceeded conflicts", services.ErrCapacityExceeded, http.StatusConflict},
		{"duplicate application conflicts", services.ErrDuplicateApplication, http.StatusConflict},
		{"missing job is 404", services.ErrJobNotFound, http.StatusNotFound},
		{"cancelled job is 400", services.ErrJobCancelled, http.StatusBadRequest},
		{"incomplete profile is 400", services.ErrProfileIncomplete, http.StatusBadRequest},
		{"malformed date is 400", services.ErrInvalidDate, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := &mockAllocationService{
				apply: func(workerID int64, req services.ApplyRequest) (*models.Application, error) {
					return nil, tt.err
				},
			}
			router := newApplyRouter(alloc)

			rec := performApply(t, router, gin.H{"job_id": 11, "shift_id": 4, "date": "2025-06-10"})
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestApplyRejectsBadPayload(t *testing.T) {
	router := newApplyRouter(&mockAllocationService{})
	rec := performApply(t, router, gin.H{"job_id": 11}) // missing shift_id and date
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelPassesFormFields(t *testing.T) {
	alloc := &mockAllocationService{
		cancel: func(workerID, applicationID int64, req services.CancelRequest) (*models.Application, error) {
			assert.Equal(t, int64(3), workerID)
			assert.Equal(t, int64(9), applicationID)
			assert.Equal(t, "Emergency", req.Reason)
			assert.Equal(t, "flat tyre", req.DescribedReason)
			return &models.Application{ID: applicationID, Status: models.ApplicationStatusCancelled}, nil
		},
	}
	router := newApplyRouter(alloc)

	form := "reason=Emergency&described_reason=flat tyre"
	req := httptest.NewRequest(http.MethodPost, "/applications/9/cancel", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelEvidenceRequiredIs400(t *testing.T) {
	alloc := &mockAllocationService{
		cancel: func(workerID, applicationID int64, req services.CancelRequest) (*models.Application, error) {
			return nil, services.ErrEvidenceRequired
		},
	}
	router := newApplyRouter(alloc)

	req := httptest.NewRequest(http.MethodPost, "/applications/9/cancel", bytes.NewBufferString("reason=Medical"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
