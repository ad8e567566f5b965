package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/services"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the worker-facing job feed.
type JobHandler struct {
	jobService services.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(js services.JobService) *JobHandler {
	return &JobHandler{jobService: js}
}

func parseJobFilters(c *gin.Context) (models.JobFilters, bool) {
	var filters models.JobFilters
	filters.Page, filters.PageSize = parsePagination(c)
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")

	filters.JobName = utils.NewNullString(c.Query("search"))
	filters.City = utils.NewNullString(c.Query("city"))
	if employerIDStr := c.Query("employer_id"); employerIDStr != "" {
		id, err := strconv.ParseInt(employerIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employer_id format.", err.Error()))
			return filters, false
		}
		filters.EmployerID = &id
	}
	if outletIDStr := c.Query("outlet_id"); outletIDStr != "" {
		id, err := strconv.ParseInt(outletIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid outlet_id format.", err.Error()))
			return filters, false
		}
		filters.OutletID = &id
	}
	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		t, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_from format. Use YYYY-MM-DD.", err.Error()))
			return filters, false
		}
		filters.DateFrom = &t
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		t, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_to format. Use YYYY-MM-DD.", err.Error()))
			return filters, false
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second) // End of day
		filters.DateTo = &t
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	return filters, true
}

// GetJobListings lists open jobs with slot labels and estimated wages.
func (h *JobHandler) GetJobListings(c *gin.Context) {
	filters, ok := parseJobFilters(c)
	if !ok {
		return
	}

	listings, totalCount, err := h.jobService.GetJobListings(filters)
	if err != nil {
		utils.LogError(err, "GetJobListings: Error from jobService.GetJobListings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch jobs.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  listings,
		"total": totalCount,
		"page":  filters.Page,
	})
}

// GetJobByID returns one job with its shifts.
func (h *JobHandler) GetJobByID(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetJobByID(jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		} else {
			utils.LogError(err, "GetJobByID: Error from jobService.GetJobByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch job.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, job)
}
