package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the portal API on router. limit throttles the
// transfer request endpoints; pass nil to leave them unthrottled.
func RegisterRoutes(router *gin.Engine, health *HealthHandler, pages *PageHandler, wizards *WizardHandler, limit gin.HandlerFunc) {
	router.GET("/health", health.Health)
	router.GET("/health/ready", health.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", health.Info)

		v1.GET("/search", pages.Search)
		v1.GET("/parcels/:id", pages.ParcelDetail)
		v1.GET("/transfers", pages.Transfers)
		v1.GET("/admin/dashboard", pages.AdminDashboard)
		v1.GET("/map", pages.Map)

		requests := v1.Group("/transfer-requests")
		if limit != nil {
			requests.Use(limit)
		}
		{
			requests.POST("", wizards.Create)
			requests.GET("/:session", wizards.Get)
			requests.PATCH("/:session", wizards.Update)
			requests.DELETE("/:session", wizards.Discard)
			requests.POST("/:session/documents", wizards.Attach)
			requests.POST("/:session/next", wizards.Next)
			requests.POST("/:session/back", wizards.Back)
			requests.POST("/:session/submit", wizards.Submit)
		}
	}
}
