package routes

import (
	"github.com/gin-gonic/gin"

	"tally/internal/interfaces/http/handlers"
	"tally/internal/interfaces/http/middleware"
	"tally/internal/shared/authorization"
)

// AccountRouteConfig holds dependencies for account routes.
type AccountRouteConfig struct {
	AccountHandler *handlers.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAccountRoutes configures account and session lifecycle routes.
func SetupAccountRoutes(engine *gin.Engine, cfg *AccountRouteConfig) {
	account := engine.Group("/account")
	{
		account.POST("/register", cfg.RateLimiter.Limit(), cfg.AccountHandler.Register)
		account.POST("/login", cfg.RateLimiter.Limit(), cfg.AccountHandler.Login)
		account.GET("/refresh", cfg.AuthMiddleware.RequireRefreshToken(), cfg.AccountHandler.Refresh)
		account.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AccountHandler.Logout)
		account.PUT("/password", cfg.AuthMiddleware.RequireAuth(), cfg.AccountHandler.ChangePassword)
		account.POST("/notification-key", cfg.AuthMiddleware.RequireAuth(), cfg.AccountHandler.AttachNotificationKey)

		account.PUT("/link", cfg.AuthMiddleware.RequireAuth(), authorization.RequireRoles(authorization.RoleAdmin), cfg.AccountHandler.LinkUser)
		account.GET("/", cfg.AuthMiddleware.RequireAuth(), authorization.RequireRoles(authorization.RoleAdmin), cfg.AccountHandler.List)
	}
}
