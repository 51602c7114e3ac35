package routes

import (
	"github.com/gin-gonic/gin"

	"taka_track/internal/controllers"
	"taka_track/internal/middleware"
	"taka_track/internal/stores"
)

func ReportRoutes(r *gin.Engine, reports *controllers.ReportController, users stores.UserStore) {
	group := r.Group("/reports")

	// Admin-scoped routes carry the store-backed role gate. Registered
	// before the :id routes so gin keeps the static segments distinct.
	admin := group.Group("/admin")
	admin.Use(middleware.RequireAdmin(users))
	{
		admin.GET("/all", reports.AdminList)
		admin.PUT("/resolve/:id", reports.AdminResolve)
		admin.DELETE("/:id", reports.AdminDelete)
	}

	// Authenticated-user routes
	auth := group.Group("")
	auth.Use(middleware.RequireAuth())
	{
		auth.POST("", reports.Create)
		auth.GET("/user", reports.ListMine)
		auth.PUT("/:id", reports.UpdateStatus)
		auth.DELETE("/:id", reports.Delete)
	}

	// Public routes
	group.GET("/all", reports.ListAll)
	group.GET("/:id", reports.Get)
}
