package middleware

import (
	"time"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// unmatchedRoute labels requests that matched no route, keeping the route
// label bounded.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records inbound request counts and durations.
type MetricsMiddleware struct {
	server *server.Server
	global *GlobalMiddlewares
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{
		server: s,
		global: NewGlobalMiddlewares(s),
	}
}

// Record observes every request after the rest of the chain has run.
func (mm *MetricsMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			route := c.Path()
			if err != nil {
				status = mm.global.ResponseFor(err).Status

				var echoErr *echo.HTTPError
				if errors.As(err, &echoErr) && echoErr.Code >= 404 && echoErr.Code <= 405 {
					route = unmatchedRoute
				}
			}
			if route == "" {
				route = unmatchedRoute
			}

			mm.server.Metrics.ObserveRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}
