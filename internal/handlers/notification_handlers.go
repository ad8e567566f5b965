package handlers

import (
	"errors"
	"net/http"

	"github.com/Hanu-soni/worklah-backend/internal/services"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the worker's notification feed.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GetNotifications lists the authenticated worker's notifications.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetNotifications(workerID)
	if err != nil {
		utils.LogError(err, "GetNotifications: Error from notificationService.GetNotifications")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch notifications.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(workerID, notificationID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
		} else {
			utils.LogError(err, "MarkRead: Error from notificationService.MarkRead")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notification read.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification for the worker as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	workerID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(workerID); err != nil {
		utils.LogError(err, "MarkAllRead: Error from notificationService.MarkAllRead")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notifications read.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
