package routes

import (
	"github.com/gin-gonic/gin"

	"tally/internal/interfaces/http/handlers"
	"tally/internal/interfaces/http/middleware"
	"tally/internal/shared/authorization"
)

// SessionRouteConfig holds dependencies for session administration routes.
type SessionRouteConfig struct {
	SessionHandler *handlers.SessionHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupSessionRoutes configures admin-only session inspection and
// termination routes.
func SetupSessionRoutes(engine *gin.Engine, cfg *SessionRouteConfig) {
	session := engine.Group("/session")
	session.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireRoles(authorization.RoleAdmin))
	{
		session.GET("/", cfg.SessionHandler.List)
		session.DELETE("/:accountId/:originId", cfg.SessionHandler.TerminateOrigin)
		session.DELETE("/:accountId", cfg.SessionHandler.TerminateAccount)
	}
}
