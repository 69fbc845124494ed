package router

import (
	"github.com/gin-gonic/gin"

	"docflow/internal/config"
	"docflow/internal/handler"
	"docflow/internal/middleware"
	"docflow/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	docH *handler.DocumentHandler,
	projectH *handler.ProjectHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Healthz)
	r.GET("/readyz", healthH.Readyz)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Document workflow routes
	documents := protected.Group("/documents")
	documents.GET("/:id", docH.GetByID)
	documents.POST("/:id/actions", docH.SubmitAction)
	documents.GET("/:id/actions", docH.NextActions)
	documents.GET("/:id/history", docH.History)
	documents.DELETE("/:id", docH.Delete)

	// Project routes
	projects := protected.Group("/projects")
	projects.GET("/export", projectH.Export)
	projects.GET("/:id", projectH.GetByID)
	projects.GET("/:id/documents", projectH.ListDocuments)
	projects.POST("/:id/documents", projectH.SpawnDocument)
	projects.PUT("/:id/status", middleware.RequireSuperuser(), projectH.SetStatus)
	projects.POST("/:id/reconcile", middleware.RequireSuperuser(), projectH.Reconcile)

	return r
}
