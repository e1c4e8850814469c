package routes

import (
	"github.com/gin-gonic/gin"

	"tally/internal/interfaces/http/handlers"
	"tally/internal/interfaces/http/middleware"
	"tally/internal/shared/authorization"
)

// ProductRouteConfig holds dependencies for product catalog routes.
type ProductRouteConfig struct {
	ProductHandler *handlers.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupProductRoutes configures catalog routes. Reads are open to any
// authenticated account, mutations are admin only.
func SetupProductRoutes(engine *gin.Engine, cfg *ProductRouteConfig) {
	product := engine.Group("/product")
	product.Use(cfg.AuthMiddleware.RequireAuth())
	{
		product.GET("/category", cfg.ProductHandler.ListCategories)
		product.GET("/beverage", cfg.ProductHandler.ListBeverages)

		admin := product.Group("")
		admin.Use(authorization.RequireRoles(authorization.RoleAdmin))
		{
			admin.POST("/category", cfg.ProductHandler.CreateCategory)
			admin.POST("/beverage", cfg.ProductHandler.CreateBeverage)
			admin.PUT("/beverage/:productId/pricing", cfg.ProductHandler.UpdatePricing)
			admin.DELETE("/:productId", cfg.ProductHandler.Delete)
		}
	}
}
