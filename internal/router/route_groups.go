package router

import (
	"github.com/Hanu-soni/worklah-backend/internal/handlers"
	"github.com/Hanu-soni/worklah-backend/internal/middleware"
	"github.com/Hanu-soni/worklah-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.GetProfile)
		}
	}
}

// SetupJobRoutes sets up the worker-facing job feed routes.
func SetupJobRoutes(authenticatedGroup *gin.RouterGroup, jobHandler *handlers.JobHandler) {
	jobRoutes := authenticatedGroup.Group("/jobs")
	{
		jobRoutes.GET("", jobHandler.GetJobListings)
		jobRoutes.GET("/:id", jobHandler.GetJobByID)
	}
}

// SetupApplicationRoutes sets up the worker application routes.
func SetupApplicationRoutes(authenticatedGroup *gin.RouterGroup, applicationHandler *handlers.ApplicationHandler) {
	applicationRoutes := authenticatedGroup.Group("/applications")
	applicationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleUser, models.RoleAdmin))
	{
		applicationRoutes.POST("", applicationHandler.Apply)
		applicationRoutes.GET("/ongoing", applicationHandler.GetOngoing)
		applicationRoutes.GET("/completed", applicationHandler.GetCompleted)
		applicationRoutes.GET("/cancelled", applicationHandler.GetCancelled)
		applicationRoutes.GET("/:id", applicationHandler.GetDetail)
		applicationRoutes.POST("/:id/cancel", applicationHandler.Cancel)
		applicationRoutes.POST("/:id/clock-in", applicationHandler.ClockIn)
		applicationRoutes.POST("/:id/clock-out", applicationHandler.ClockOut)
	}
}

// SetupNotificationRoutes sets up the worker notification routes.
func SetupNotificationRoutes(authenticatedGroup *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notificationRoutes := authenticatedGroup.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.GetNotifications)
		notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
		notificationRoutes.PATCH("/read-all", notificationHandler.MarkAllRead)
	}
}

// SetupAdminRoutes sets up the back-office routes.
func SetupAdminRoutes(
	authenticatedGroup *gin.RouterGroup,
	adminJobHandler *handlers.AdminJobHandler,
	employerHandler *handlers.EmployerHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	adminRoutes := authenticatedGroup.Group("/admin")
	adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		jobRoutes := adminRoutes.Group("/jobs")
		{
			jobRoutes.POST("", adminJobHandler.CreateJob)
			jobRoutes.GET("", adminJobHandler.GetJobs)
			jobRoutes.GET("/:id/applications", adminJobHandler.GetJobApplications)
			jobRoutes.PUT("/:id", adminJobHandler.UpdateJob)
			jobRoutes.POST("/:id/duplicate", adminJobHandler.DuplicateJob)
			jobRoutes.POST("/:id/cancel", adminJobHandler.CancelJob)
			jobRoutes.DELETE("/:id", adminJobHandler.DeleteJob)
		}

		applicationRoutes := adminRoutes.Group("/applications")
		{
			applicationRoutes.POST("/:id/approve", adminJobHandler.ApproveApplication)
			applicationRoutes.POST("/:id/reject", adminJobHandler.RejectApplication)
			applicationRoutes.POST("/:id/complete", adminJobHandler.CompleteApplication)
			applicationRoutes.POST("/:id/no-show", adminJobHandler.MarkNoShow)
		}

		employerRoutes := adminRoutes.Group("/employers")
		{
			employerRoutes.POST("", employerHandler.CreateEmployer)
			employerRoutes.GET("", employerHandler.GetEmployers)
			employerRoutes.GET("/:id", employerHandler.GetEmployerByID)
			employerRoutes.POST("/:id/outlets", employerHandler.CreateOutlet)
		}

		adminRoutes.GET("/dashboard", dashboardHandler.GetOverview)
	}
}
