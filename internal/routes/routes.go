package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"taka_track/internal/config"
	"taka_track/internal/controllers"
	"taka_track/internal/middleware"
	"taka_track/internal/stores"
)

// SetupRouter builds the gin engine and registers every route group.
func SetupRouter(cfg *config.Config, auth *controllers.AuthController, reports *controllers.ReportController, users stores.UserStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	// Liveness probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "message": "Server is running"})
	})

	// Uploaded images are served back under a static path
	r.Static("/uploads", cfg.UploadDir)

	AuthRoutes(r, auth)
	ReportRoutes(r, reports, users)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "message": "Route not found"})
	})

	return r
}
