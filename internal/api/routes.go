package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/webapp-backend/internal/handler"
)

// APIPrefix is the path prefix all API routes are mounted under. Serving the
// API under one prefix lets a reverse proxy route /api to this backend and
// everything else to the frontend.
const APIPrefix = "/api"

// SetupRoutes configures all API routes under the /api prefix.
func SetupRoutes(router *gin.Engine, healthHandler *handler.HealthHandler) {
	apiGroup := router.Group(APIPrefix)
	apiGroup.GET("/health", healthHandler.HealthCheck)
}
