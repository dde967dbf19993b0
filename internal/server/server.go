// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the FieldRoutes client factory
//   - the rate limit store (and its redis client, when used)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/config"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/metrics"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/ratelimit"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/validation"

	loggerPkg "github.com/blakeppc/fieldroutes-missive-integration/internal/logger"
)

// Server is the application container that holds shared resources.
//
// Nothing in it is tied to a caller: provider clients are built per request
// from Providers.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// Redis is only set when the redis rate limit backend is configured.
	Redis *redis.Client

	Metrics *metrics.Metrics

	// Providers builds one FieldRoutes client per inbound request.
	Providers *fieldroutes.Factory

	// Rules validates customer identifiers.
	Rules *validation.Rules

	// RateLimitStore backs the /api rate limiter.
	RateLimitStore ratelimit.Store

	// Normalizer maps handler failures to response bodies.
	Normalizer errs.Normalizer

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
//
// A Redis connection failure does not block startup; the redis store fails
// open and the readiness check reports the outage.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	rules, err := validation.NewRules(cfg.Provider.CustomerIDPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile customer id pattern: %w", err)
	}

	m := metrics.New()

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Metrics:       m,
		Rules:         rules,
		Normalizer:    errs.Normalizer{ExposeDetails: !cfg.IsProduction()},
	}

	var transport http.RoundTripper = http.DefaultTransport
	if loggerService.GetApplication() != nil {
		// Provider calls show up as external segments of the inbound transaction.
		transport = newrelic.NewRoundTripper(transport)
	}

	s.Providers = fieldroutes.NewFactory(fieldroutes.Options{
		BaseURL:      cfg.Provider.BaseURL,
		Timeout:      cfg.Provider.Timeout,
		SecretHeader: cfg.Provider.SecretHeader,
		Transport:    transport,
		Observer:     m.ObserveProvider,
	})

	s.RateLimitStore = s.newRateLimitStore()

	return s, nil
}

func (s *Server) newRateLimitStore() ratelimit.Store {
	cfg := s.Config.RateLimit
	if !cfg.Enabled {
		return ratelimit.AllowAll{}
	}

	limits := ratelimit.Config{Requests: cfg.Requests, Window: cfg.Window}

	if cfg.Backend != "redis" {
		return ratelimit.NewMemoryStore(limits)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: s.Config.Redis.Address,
	})

	if s.LoggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		s.Logger.Error().Err(err).Msg("Failed to connect to Redis, rate limiter will fail open")
	}

	s.Redis = redisClient

	return ratelimit.NewRedisStore(redisClient, limits, s.Logger)
}

// SetupHTTPServer configures the internal net/http server.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores int values, interpreted here as seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
//
// It requires SetupHTTPServer to be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("provider", s.Config.Provider.BaseURL).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then closes Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}
