package http

import (
	"github.com/gin-gonic/gin"

	"beyondbridge/internal/webauth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(webauth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Auth endpoints stay outside the gated group so login is reachable
	if cfg.AuthService != nil {
		router.POST("/login", cfg.AuthService.Login)
		router.POST("/logout", cfg.AuthService.Logout)
		router.GET("/api/auth/status", cfg.AuthService.Status)
	}

	api := router.Group("/api")
	if cfg.AuthService != nil {
		api.Use(cfg.AuthService.RequireAuth())
	}

	contentController := NewContentController(cfg.Lister, cfg.Validator)
	api.GET("/content", contentController.GetContent)
	api.GET("/content/characters", contentController.GetCharacters)

	importController := NewImportController(cfg.Processor, cfg.Runs, cfg.TaskClient, cfg.RunRetentionDays)
	api.POST("/import", importController.StartImport)
	api.GET("/import/status", importController.GetStatus)
	api.POST("/import/cancel", importController.CancelImport)

	settingsController := NewSettingsController(cfg.SettingsStore, cfg.Validator, cfg.Scheduler)
	api.GET("/settings", settingsController.GetSettings)
	api.POST("/settings", settingsController.UpdateSettings)
	api.DELETE("/settings/cobalt-cookie", settingsController.ClearCobaltCookie)

	if cfg.Actors != nil {
		charactersController := NewCharactersController(cfg.Actors, cfg.TaskClient)
		api.GET("/characters", charactersController.ListImported)
		api.POST("/characters/:id/refresh", charactersController.Refresh)
	}

	return router
}
