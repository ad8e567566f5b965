package handlers

import (
	"errors"
	"net/http"

	"github.com/Hanu-soni/worklah-backend/internal/models"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// EmployerHandler serves employer and outlet management for the back office.
// Employer data has no business rules beyond persistence, so the handler
// talks to the repository directly.
type EmployerHandler struct {
	employerRepo repositories.EmployerRepository
}

// NewEmployerHandler creates a new EmployerHandler.
func NewEmployerHandler(er repositories.EmployerRepository) *EmployerHandler {
	return &EmployerHandler{employerRepo: er}
}

// CreateEmployer registers a new employer company.
func (h *EmployerHandler) CreateEmployer(c *gin.Context) {
	var employer models.Employer
	if err := c.ShouldBindJSON(&employer); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	created, err := h.employerRepo.CreateEmployer(&employer)
	if err != nil {
		utils.LogError(err, "CreateEmployer: Error from employerRepo.CreateEmployer")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create employer.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetEmployers lists all employers.
func (h *EmployerHandler) GetEmployers(c *gin.Context) {
	employers, err := h.employerRepo.GetEmployers()
	if err != nil {
		utils.LogError(err, "GetEmployers: Error from employerRepo.GetEmployers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employers.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": employers})
}

// GetEmployerByID returns one employer with its outlets.
func (h *EmployerHandler) GetEmployerByID(c *gin.Context) {
	employerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	employer, err := h.employerRepo.GetEmployerByID(employerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employer not found.", ""))
		} else {
			utils.LogError(err, "GetEmployerByID: Error from employerRepo.GetEmployerByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employer.", "Internal error"))
		}
		return
	}

	outlets, err := h.employerRepo.GetOutletsByEmployerID(employerID)
	if err != nil {
		utils.LogError(err, "GetEmployerByID: Error from employerRepo.GetOutletsByEmployerID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch outlets.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"employer": employer, "outlets": outlets})
}

// CreateOutlet adds an outlet to an employer.
func (h *EmployerHandler) CreateOutlet(c *gin.Context) {
	employerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	outlet.EmployerID = employerID

	if _, err := h.employerRepo.GetEmployerByID(employerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employer not found.", ""))
		} else {
			utils.LogError(err, "CreateOutlet: Error from employerRepo.GetEmployerByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employer.", "Internal error"))
		}
		return
	}

	created, err := h.employerRepo.CreateOutlet(&outlet)
	if err != nil {
		utils.LogError(err, "CreateOutlet: Error from employerRepo.CreateOutlet")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create outlet.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, created)
}
