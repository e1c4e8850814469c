package routes

import (
	"github.com/gin-gonic/gin"

	"tally/internal/interfaces/http/handlers"
)

// SetupHealthRoutes configures the unauthenticated health probe.
func SetupHealthRoutes(engine *gin.Engine, healthHandler *handlers.HealthHandler) {
	engine.GET("/health", healthHandler.Check)
}
