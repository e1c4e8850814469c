package routes

import (
	"github.com/gin-gonic/gin"

	"tally/internal/interfaces/http/handlers"
	"tally/internal/interfaces/http/middleware"
	"tally/internal/shared/authorization"
)

// UserRouteConfig holds dependencies for user routes.
type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user profile routes.
func SetupUserRoutes(engine *gin.Engine, cfg *UserRouteConfig) {
	user := engine.Group("/user")
	user.Use(cfg.AuthMiddleware.RequireAuth())
	{
		user.GET("/me", cfg.UserHandler.Me)

		admin := user.Group("")
		admin.Use(authorization.RequireRoles(authorization.RoleAdmin))
		{
			admin.POST("/", cfg.UserHandler.Create)
			admin.GET("/", cfg.UserHandler.List)
			admin.DELETE("/:userId", cfg.UserHandler.Delete)
			admin.PUT("/:userId/picture", cfg.UserHandler.SetProfilePicture)
		}
	}
}
