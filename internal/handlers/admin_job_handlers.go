package handlers

import (
	"errors"
	"net/http"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/services"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminJobHandler serves the back-office job and review endpoints.
type AdminJobHandler struct {
	jobService         services.JobService
	reviewService      services.ReviewService
	attendanceService  services.AttendanceService
	applicationService services.ApplicationService
}

// NewAdminJobHandler creates a new AdminJobHandler.
func NewAdminJobHandler(
	js services.JobService,
	rs services.ReviewService,
	as services.AttendanceService,
	aps services.ApplicationService,
) *AdminJobHandler {
	return &AdminJobHandler{
		jobService:         js,
		reviewService:      rs,
		attendanceService:  as,
		applicationService: aps,
	}
}

// CreateJob handles the creation of a new job with its shifts.
func (h *AdminJobHandler) CreateJob(c *gin.Context) {
	var req services.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateJob: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	job, err := h.jobService.CreateJob(req)
	if err != nil {
		h.respondJobError(c, err, "create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJobs lists jobs with projected statuses and application aggregates.
func (h *AdminJobHandler) GetJobs(c *gin.Context) {
	filters, ok := parseJobFilters(c)
	if !ok {
		return
	}

	rows, totalCount, err := h.jobService.GetAdminJobs(filters)
	if err != nil {
		utils.LogError(err, "GetJobs: Error from jobService.GetAdminJobs")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch jobs.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"total": totalCount,
		"page":  filters.Page,
	})
}

// GetJobApplications lists applications for one job, optionally filtered by
// status or admin status.
func (h *AdminJobHandler) GetJobApplications(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var filters models.ApplicationFilters
	filters.JobID = &jobID
	filters.Page, filters.PageSize = parsePagination(c)
	if status := c.Query("status"); status != "" {
		if !models.IsValidApplicationStatus(status) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status value.", "status: "+status))
			return
		}
		filters.Status = &status
	}
	if adminStatus := c.Query("admin_status"); adminStatus != "" {
		if !models.IsValidAdminStatus(adminStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid admin_status value.", "admin_status: "+adminStatus))
			return
		}
		filters.AdminStatus = &adminStatus
	}

	apps, totalCount, err := h.applicationService.GetApplications(filters)
	if err != nil {
		utils.LogError(err, "GetJobApplications: Error from applicationService.GetApplications")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch applications.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  apps,
		"total": totalCount,
	})
}

// UpdateJob handles partial updates to a job's details.
func (h *AdminJobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	job, err := h.jobService.UpdateJob(jobID, req)
	if err != nil {
		h.respondJobError(c, err, "update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DuplicateJob clones a job and its shifts with counters reset.
func (h *AdminJobHandler) DuplicateJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.DuplicateJob(jobID)
	if err != nil {
		h.respondJobError(c, err, "duplicate job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// CancelJob flips the job's cancelled flag.
func (h *AdminJobHandler) CancelJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.CancelJob(jobID); err != nil {
		h.respondJobError(c, err, "cancel job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job cancelled successfully"})
}

// DeleteJob hard-deletes a job with its shifts and applications.
func (h *AdminJobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(jobID); err != nil {
		h.respondJobError(c, err, "delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// ApproveApplication confirms a pending application.
func (h *AdminJobHandler) ApproveApplication(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.reviewService.Approve(appID)
	if err != nil {
		h.respondReviewError(c, err, "approve application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// RejectApplication rejects a pending application with an optional reason.
func (h *AdminJobHandler) RejectApplication(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	app, err := h.reviewService.Reject(appID, req.Reason)
	if err != nil {
		h.respondReviewError(c, err, "reject application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// CompleteApplication moves an upcoming application with attendance evidence
// to Completed.
func (h *AdminJobHandler) CompleteApplication(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.attendanceService.Complete(appID)
	if err != nil {
		h.respondReviewError(c, err, "complete application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// MarkNoShow flags an upcoming application as a no-show.
func (h *AdminJobHandler) MarkNoShow(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	app, err := h.attendanceService.MarkNoShow(appID)
	if err != nil {
		h.respondReviewError(c, err, "mark no-show")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *AdminJobHandler) respondJobError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrEmployerNotFound),
		errors.Is(err, services.ErrOutletNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrJobValidation),
		errors.Is(err, services.ErrOutletNotOwned):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrJobNotCancellable):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	default:
		utils.LogError(err, "AdminJobHandler: failed to "+action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}

func (h *AdminJobHandler) respondReviewError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrReviewNotPending),
		errors.Is(err, services.ErrNotUpcoming),
		errors.Is(err, services.ErrAttendanceRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	default:
		utils.LogError(err, "AdminJobHandler: failed to "+action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+".", "Internal error"))
	}
}
