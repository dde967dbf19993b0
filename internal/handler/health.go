package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/middleware"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/labstack/echo/v4"
)

// TimestampFormat is ISO-8601 in UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// HealthHandler exposes endpoints that load balancers and monitors use to
// verify the service is alive and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CheckHealth is the liveness probe. It needs no credentials and touches no
// dependency.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(TimestampFormat),
	})
}

// CheckReadiness reports dependency checks and returns 503 if any fails.
// Redis is only checked when the rate limiter uses it.
func (h *HealthHandler) CheckReadiness(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "readiness_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "ready",
		"timestamp":   time.Now().UTC().Format(TimestampFormat),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}
	isReady := true

	if h.server.Redis != nil && h.server.Config.Observability.HealthChecks.Enabled {
		timeout := h.server.Config.Observability.HealthChecks.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		redisStart := time.Now()

		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(redisStart).String(),
				"error":         err.Error(),
			}
			isReady = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(redisStart)).
				Msg("redis health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
					"check_type":       "redis",
					"operation":        "readiness_check",
					"error_type":       "redis_unhealthy",
					"response_time_ms": time.Since(redisStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		} else {
			checks["redis"] = map[string]interface{}{
				"status":        "healthy",
				"response_time": time.Since(redisStart).String(),
			}
		}
	}

	if !isReady {
		response["status"] = "unavailable"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("readiness check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("readiness check passed")

	return c.JSON(http.StatusOK, response)
}
