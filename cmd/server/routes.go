package main

import (
	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/internal/config"
	"github.com/pkowalski/codeplay/backend/internal/handlers"
	"github.com/pkowalski/codeplay/backend/internal/middleware"
	"github.com/pkowalski/codeplay/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for mutating project routes
	writeLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Health check
	healthHandler := handlers.NewHealthHandler(svc.store, svc.projects)
	r.GET("/health", healthHandler.CheckHealth)

	projectHandler := handlers.NewProjectHandler(svc.projects)
	workspaceHandler := handlers.NewWorkspaceHandler(svc.workspace, svc.composer, svc.projects)
	settingsHandler := handlers.NewSettingsHandler(svc.settings)

	api := r.Group("/api")
	{
		// Projects
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.GET("/export", projectHandler.Export)
			projects.GET("/:index", projectHandler.GetByIndex)
			projects.GET("/:index/preview", workspaceHandler.PreviewProject)

			mutating := projects.Group("", writeLimiter.Middleware(), middleware.AuditLog())
			{
				mutating.POST("", projectHandler.Create)
				mutating.POST("/import", projectHandler.Import)
				mutating.POST("/sort", projectHandler.Sort)
				mutating.PUT("/:index/name", projectHandler.Rename)
				mutating.POST("/:index/duplicate", projectHandler.Duplicate)
				mutating.DELETE("/:index", projectHandler.Delete)
				mutating.DELETE("", projectHandler.DeleteAll)
			}
		}

		// Workspace (live buffers + preview)
		workspace := api.Group("/workspace")
		{
			workspace.GET("", workspaceHandler.Get)
			workspace.PUT("", workspaceHandler.Set)
			workspace.GET("/preview", workspaceHandler.Preview)
			workspace.POST("/refresh", workspaceHandler.Refresh)
			workspace.POST("/load/:index", workspaceHandler.Load)
			workspace.GET("/download", workspaceHandler.Download)
		}

		// Editor settings + theme
		settings := api.Group("/settings")
		{
			settings.GET("", settingsHandler.Get)
			settings.PUT("", settingsHandler.Update)
			settings.POST("/reset", settingsHandler.Reset)
			settings.GET("/export", settingsHandler.Export)
			settings.POST("/import", settingsHandler.Import)
			settings.GET("/theme", settingsHandler.GetTheme)
			settings.PUT("/theme", settingsHandler.SetTheme)
			settings.POST("/theme/toggle", settingsHandler.ToggleTheme)
		}
	}
}
