package routes

import (
	"github.com/gin-gonic/gin"

	"tally/internal/interfaces/http/handlers"
	"tally/internal/interfaces/http/middleware"
	"tally/internal/shared/authorization"
)

// NotificationRouteConfig holds dependencies for push notification routes.
type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupNotificationRoutes configures admin-only push dispatch routes.
func SetupNotificationRoutes(engine *gin.Engine, cfg *NotificationRouteConfig) {
	notification := engine.Group("/notification")
	notification.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireRoles(authorization.RoleAdmin))
	{
		notification.POST("/account/:accountId", cfg.NotificationHandler.NotifyAccount)
		notification.POST("/user/:userId", cfg.NotificationHandler.NotifyUser)
		notification.POST("/users", cfg.NotificationHandler.NotifyAllUsers)
		notification.POST("/admins", cfg.NotificationHandler.NotifyAdmins)
	}
}
