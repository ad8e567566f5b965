package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Hanu-soni/worklah-backend/internal/services"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler holds the services backing the worker-facing
// application endpoints.
type ApplicationHandler struct {
	allocationService  services.AllocationService
	applicationService services.ApplicationService
	attendanceService  services.AttendanceService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(
	alloc services.AllocationService,
	apps services.ApplicationService,
	att services.AttendanceService,
) *ApplicationHandler {
	return &ApplicationHandler{
		allocationService:  alloc,
		applicationService: apps,
		attendanceService:  att,
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", err.Error()))
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return page, pageSize
}

// Apply handles a worker applying to a shift.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Apply: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	app, err := h.allocationService.Apply(workerID, req)
	if err != nil {
		utils.LogError(err, "Apply: Error from allocationService.Apply")
		switch {
		case errors.Is(err, services.ErrWorkerNotFound),
			errors.Is(err, services.ErrJobNotFound),
			errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		case errors.Is(err, services.ErrInvalidDate):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		case errors.Is(err, services.ErrProfileIncomplete),
			errors.Is(err, services.ErrJobCancelled),
			errors.Is(err, services.ErrShiftNotInJob):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		case errors.Is(err, services.ErrDuplicateApplication),
			errors.Is(err, services.ErrCapacityExceeded):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to apply for shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, app)
}

// Cancel handles cancelling an application. The request arrives as multipart
// form data so a medical certificate can ride along.
func (h *ApplicationHandler) Cancel(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	req := services.CancelRequest{
		Reason:          c.PostForm("reason"),
		DescribedReason: c.PostForm("described_reason"),
	}
	if file, err := c.FormFile("medical_certificate"); err == nil {
		req.Evidence = file
	}

	app, err := h.allocationService.Cancel(workerID, appID, req)
	if err != nil {
		utils.LogError(err, "Cancel: Error from allocationService.Cancel")
		switch {
		case errors.Is(err, services.ErrApplicationNotFound), errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		case errors.Is(err, services.ErrAlreadyCancelled):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
		case errors.Is(err, services.ErrInvalidReason), errors.Is(err, services.ErrEvidenceRequired):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		case errors.Is(err, services.ErrEvidenceUpload):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to cancel application.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) respondList(c *gin.Context, views []services.ApplicationView, total int, err error, what string) {
	if err != nil {
		utils.LogError(err, "ApplicationHandler: failed to fetch "+what)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch "+what+".", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"total": total,
	})
}

// GetOngoing lists the worker's confirmed upcoming applications.
func (h *ApplicationHandler) GetOngoing(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	views, total, err := h.applicationService.GetOngoing(workerID, page, pageSize)
	h.respondList(c, views, total, err, "ongoing applications")
}

// GetCompleted lists the worker's completed applications.
func (h *ApplicationHandler) GetCompleted(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	views, total, err := h.applicationService.GetCompleted(workerID, page, pageSize)
	h.respondList(c, views, total, err, "completed applications")
}

// GetCancelled lists the worker's cancelled applications with penalties.
func (h *ApplicationHandler) GetCancelled(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	views, total, err := h.applicationService.GetCancelled(workerID, page, pageSize)
	h.respondList(c, views, total, err, "cancelled applications")
}

// GetDetail returns one application with its penalty breakdown.
func (h *ApplicationHandler) GetDetail(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.applicationService.GetDetail(workerID, appID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		} else {
			utils.LogError(err, "GetDetail: Error from applicationService.GetDetail")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch application.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ClockIn records the worker's arrival at the shift.
func (h *ApplicationHandler) ClockIn(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	app, err := h.attendanceService.ClockIn(workerID, appID, req)
	if err != nil {
		h.respondAttendanceError(c, err, "clock in")
		return
	}
	c.JSON(http.StatusOK, app)
}

// ClockOut records the worker's departure from the shift.
func (h *ApplicationHandler) ClockOut(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.attendanceService.ClockOut(workerID, appID)
	if err != nil {
		h.respondAttendanceError(c, err, "clock out")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) respondAttendanceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrNotUpcoming),
		errors.Is(err, services.ErrAlreadyClockedIn),
		errors.Is(err, services.ErrNotClockedIn),
		errors.Is(err, services.ErrAlreadyClockedOut),
		errors.Is(err, services.ErrAttendanceRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	default:
		utils.LogError(err, "ApplicationHandler: failed to "+action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}
