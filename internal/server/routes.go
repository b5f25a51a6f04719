package server

import (
	"github.com/gin-gonic/gin"
	"github.com/san-kum/crashsim/internal/config"
)

// NewRouter builds the gin engine for the collision API.
func NewRouter(cfg *config.Server) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	SetupRoutes(router, cfg)
	return router
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, cfg *config.Server) {
	// CORS middleware for the web frontend dev servers
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/", Info)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)
		v1.POST("/simulate", Simulate)
		v1.GET("/presets", ListPresets)
		v1.GET("/presets/:id", GetPreset)
	}
}
