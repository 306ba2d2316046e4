package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stockbot/internal/config"
	"stockbot/internal/controllers"
	"stockbot/internal/middleware"
	"stockbot/internal/repository"
	"stockbot/internal/security"
	"stockbot/internal/service"
)

// SetupRouter initializes all services, controllers, and API routes
func SetupRouter(db *gorm.DB, cfg *config.Config, enqueuer service.TaskEnqueuer) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	tokens := security.NewTokenMaker(cfg.SecretKey)

	authService := service.NewAuthService(userRepo, tokens, cfg)
	userService := service.NewUserService(userRepo, tokens, enqueuer, cfg)
	companyService := service.NewCompanyService(companyRepo, reportRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	authController := controllers.AuthController{Auth: authService, Users: userService}
	userController := controllers.UserController{Users: userService}
	companyController := controllers.CompanyController{Companies: companyService}
	notificationController := controllers.NotificationController{Notifications: notificationService}
	healthController := controllers.HealthController{}

	authRequired := middleware.AuthRequired(tokens, userRepo)

	// Set up Gin router
	router := gin.Default()

	// Group API routes under /api/v1
	api := router.Group("/api/v1")
	{
		healths := api.Group("/healths")
		{
			healths.GET("/liveness", healthController.Liveness)
			healths.GET("/readiness", healthController.Readiness)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh-token", authController.RefreshToken)
			auth.GET("/me", authRequired, authController.Me)
			auth.PUT("/me", authRequired, authController.UpdateMe)
			auth.POST("/change-password", authRequired, authController.ChangePassword)
		}

		users := api.Group("/users")
		{
			users.GET("/", authRequired, middleware.AdminRequired(), userController.GetUsers)
			users.POST("/", authRequired, middleware.AdminRequired(), userController.CreateUser)
			users.POST("/forgot-password", userController.ForgotPassword)
			users.POST("/reset-password", userController.ResetPassword)
			users.POST("/verify-reset-token", userController.VerifyResetToken)
		}

		companies := api.Group("/companies", authRequired)
		{
			companies.GET("/", companyController.GetCompanies)
			companies.GET("/:id", companyController.GetCompany)
			companies.GET("/:id/reports", companyController.GetCompanyReports)
		}

		notifications := api.Group("/notifications", authRequired)
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/:id", notificationController.GetNotification)
		}
	}

	return router
}
