// Package api assembles the HTTP application: it turns the loaded settings
// into a configured server with middleware and routes attached.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/webapp-backend/internal/config"
	"github.com/jonesrussell/webapp-backend/internal/handler"
	"github.com/jonesrussell/webapp-backend/internal/logger"
	"github.com/jonesrussell/webapp-backend/internal/server"
)

// NewServer builds the HTTP server from the application settings.
// Cross-origin requests are permitted from the configured origins, with
// credentials forwarded and all methods and headers allowed.
func NewServer(cfg *config.Config, log logger.Logger) *server.Server {
	srvCfg := &server.Config{
		Port:           cfg.Server.Port,
		Debug:          cfg.App.Debug,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		CORS: server.CORSConfig{
			Enabled:          true,
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowCredentials: true,
		},
	}

	healthHandler := handler.NewHealthHandler(cfg.App.Version)

	return server.New(srvCfg, log, func(router *gin.Engine) {
		SetupRoutes(router, healthHandler)
	})
}
