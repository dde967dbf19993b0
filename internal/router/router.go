// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/config"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/handler"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/lib/utils"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/middleware"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with global middleware, system routes
// and the /api surface.
//
// Middleware order matters:
//   - RequestID first, so every later log line and provider call carries it.
//   - New Relic before ContextEnhancer, so the request logger gets trace ids.
//   - Recover innermost of the global chain, so panics surface as 500s that
//     the logger and metrics still see.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = utils.JSONSerializer{}
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.IPExtractor = clientIPExtractor(s.Config.Server)

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Record(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group("/api", middlewares.RateLimit.Limit())
	registerCustomerRoutes(api, h, middlewares.Auth)

	api.POST("/test-credentials", handler.Handle(h.Credentials.Handler, h.Credentials.Test, http.StatusOK))

	return router
}

// clientIPExtractor decides what c.RealIP() returns, and so what the rate
// limiter keys on. Forwarding headers are only read from trusted proxies.
func clientIPExtractor(cfg config.ServerConfig) echo.IPExtractor {
	nets, err := cfg.TrustedProxyNets()
	if err != nil || len(nets) == 0 {
		return echo.ExtractIPDirect()
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range nets {
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// registerCustomerRoutes attaches credential checking per route rather than
// with Group.Use, so unmatched paths under /api/customers are plain 404s.
func registerCustomerRoutes(api *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	customers := api.Group("/customers")
	base := h.Customers.Handler

	customers.GET("/search/email/:email", handler.Handle(base, h.Customers.SearchByEmail, http.StatusOK), auth.RequireCredentials)
	customers.GET("/search/phone/:phone", handler.Handle(base, h.Customers.SearchByPhone, http.StatusOK), auth.RequireCredentials)
	customers.GET("/search", handler.Handle(base, h.Customers.Search, http.StatusOK), auth.RequireCredentials)
	customers.GET("/:id", handler.Handle(base, h.Customers.Get, http.StatusOK), auth.RequireCredentials)
	customers.GET("/:id/services", handler.Handle(base, h.Customers.Services, http.StatusOK), auth.RequireCredentials)
	customers.GET("/:id/appointments", handler.Handle(base, h.Customers.Appointments, http.StatusOK), auth.RequireCredentials)
}
