package router

import (
	"database/sql"

	"github.com/Hanu-soni/worklah-backend/internal/handlers"
	"github.com/Hanu-soni/worklah-backend/internal/middleware"
	"github.com/Hanu-soni/worklah-backend/internal/repositories"
	"github.com/Hanu-soni/worklah-backend/internal/services"
	"github.com/Hanu-soni/worklah-backend/pkg/storage"
	"github.com/Hanu-soni/worklah-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	workerRepo := repositories.NewWorkerRepository(db)
	employerRepo := repositories.NewEmployerRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	fileStore := storage.NewLocalFileStore(utils.Getenv("UPLOAD_DIR", "uploads"))

	// Initialize Services
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(workerRepo)
	allocationService := services.NewAllocationService(workerRepo, jobRepo, shiftRepo, applicationRepo, fileStore, notificationService, db)
	applicationService := services.NewApplicationService(applicationRepo)
	attendanceService := services.NewAttendanceService(applicationRepo, db)
	jobService := services.NewJobService(jobRepo, shiftRepo, applicationRepo, employerRepo, db)
	reviewService := services.NewReviewService(applicationRepo, notificationService, db)
	dashboardService := services.NewDashboardService(jobRepo, shiftRepo, applicationRepo, workerRepo, employerRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(allocationService, applicationService, attendanceService)
	adminJobHandler := handlers.NewAdminJobHandler(jobService, reviewService, attendanceService, applicationService)
	employerHandler := handlers.NewEmployerHandler(employerRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupJobRoutes(authenticated, jobHandler)
		SetupApplicationRoutes(authenticated, applicationHandler)
		SetupNotificationRoutes(authenticated, notificationHandler)
		SetupAdminRoutes(authenticated, adminJobHandler, employerHandler, dashboardHandler)
	}
}
