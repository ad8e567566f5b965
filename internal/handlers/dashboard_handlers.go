package handlers

import (
	"net/http"

	"github.com/Hanu-soni/worklah-backend/internal/services"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the admin overview metrics.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetOverview returns the dashboard counters.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetOverview()
	if err != nil {
		utils.LogError(err, "GetOverview: Error from dashboardService.GetOverview")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch dashboard overview.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, overview)
}
