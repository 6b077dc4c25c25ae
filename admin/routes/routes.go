package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/wisker-app/wisker/admin/controllers"
)

func RegisterAdminRoutes(r *gin.Engine, catalog *controllers.Catalog) {
	// Plan catalog
	r.GET("/plans", catalog.ListPlans)
	r.GET("/plans/:type", catalog.GetPlan)
	r.PUT("/plans/:type", catalog.UpdatePlan)

	// Promo codes
	r.GET("/promos", catalog.ListPromos)
	r.POST("/promos", catalog.CreatePromo)
	r.PUT("/promos/:code", catalog.UpdatePromo)
	r.DELETE("/promos/:code", catalog.DeletePromo)
}
