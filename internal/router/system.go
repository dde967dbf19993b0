package router

import (
	"github.com/blakeppc/fieldroutes-missive-integration/internal/handler"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API
// surface. They need no credentials and are not rate limited.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/health", h.Health.CheckHealth)
	r.GET("/health/ready", h.Health.CheckReadiness)
	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
}
