package middleware

import (
	"net/http"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// BodyLimit is the largest request body accepted.
const BodyLimit = "100K"

// GlobalMiddlewares groups "global" middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			APIKeyHeader,
			APISecretHeader,
			RequestIDHeader,
		},
	})
}

// RequestLogger writes one "API" log line per request, with severity based on status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet when a
			// handler returns an error, so derive the final status here.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = global.ResponseFor(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
	})
}

// Secure adds standard security-related headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// BodyLimit rejects request bodies larger than BodyLimit.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(BodyLimit)
}

// ResponseFor maps any error reaching the top of the stack to the body
// written to the caller.
//
// Echo's own errors cover routing (unmatched path or method) and framework
// failures such as the body limit. Everything else goes through the
// normalizer.
func (global *GlobalMiddlewares) ResponseFor(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return global.server.Normalizer.Normalize(httpErr)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return errs.NewRouteNotFoundError()
		case http.StatusRequestEntityTooLarge:
			return errs.NewPayloadTooLargeError()
		case http.StatusBadRequest, http.StatusUnsupportedMediaType:
			message := http.StatusText(echoErr.Code)
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				message = msg
			}
			return errs.NewBadRequestError("Bad request", message)
		}
		if echoErr.Internal != nil {
			err = echoErr.Internal
		}
	}

	return global.server.Normalizer.Normalize(err)
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error ends up here, regardless of where it happened. The original
// error is logged with its stack; the caller only sees the mapped body.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	response := global.ResponseFor(err)

	logger := *GetLogger(c)

	var e *zerolog.Event
	if response.Status >= 500 {
		e = logger.Error()
	} else {
		e = logger.Warn()
	}

	e = e.Stack().
		Err(err).
		Int("status", response.Status).
		Str("error_kind", string(response.Kind))

	var upstream errs.UpstreamError
	if errors.As(err, &upstream) {
		e = e.Int("provider_status", upstream.StatusCode())
		if body := upstream.ProviderBody(); body != nil {
			e = e.Interface("provider_body", body)
		}
	}

	e.Msg(response.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(response.Status)
	} else {
		err = c.JSON(response.Status, response)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
