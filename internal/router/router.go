package router

import (
	"github.com/gin-gonic/gin"

	"loandocs/internal/domain"
	"loandocs/internal/handler"
	"loandocs/internal/middleware"
	"loandocs/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	fileH *handler.FileHandler,
	docH *handler.DocumentHandler,
	notifH *handler.NotificationHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// File routes
	files := protected.Group("/files")
	files.POST("", fileH.Upload)
	files.GET("/:id/url", fileH.GetDownloadURL)

	// Document routes
	docs := protected.Group("/documents")
	docs.POST("", docH.Create)
	docs.GET("", docH.List)
	docs.GET("/:id", docH.GetByID)
	docs.POST("/:id/reprocess", docH.Reprocess)
	docs.DELETE("/:id", docH.Delete)

	// Reviewer actions - back office only
	docs.PUT("/:id/verify", middleware.RequireRole(domain.RoleOfficer, domain.RoleAdmin), docH.Verify)
	docs.POST("/:id/reupload", middleware.RequireRole(domain.RoleOfficer, domain.RoleAdmin), docH.RequestReupload)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notifH.List)
	notifications.PUT("/:id/read", notifH.MarkRead)

	// Report routes - back office only
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(domain.RoleOfficer, domain.RoleAdmin))
	reports.GET("/verification-register", reportH.VerificationRegister)

	return r
}
