// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types, and validates that required values
// are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for every block.
package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before we read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the RELAY_ prefix. Keys are lowercased, the prefix
	is removed and a double underscore marks nesting:

	  RELAY_SERVER__PORT              -> server.port
	  RELAY_PROVIDER__BASE_URL        -> provider.base_url
	  RELAY_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
*/

const (
	envPrefix = "RELAY_"

	// DefaultProviderBaseURL is the FieldRoutes REST endpoint used when no override is configured.
	DefaultProviderBaseURL = "https://api.fieldroutes.com/v1"

	// DefaultCustomerIDPattern is the character set accepted for customer identifiers.
	DefaultCustomerIDPattern = `^[A-Za-z0-9_-]+$`
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Provider      ProviderConfig       `koanf:"provider" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Env also decides whether provider error bodies are exposed to callers.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// TrustedProxies lists the CIDRs whose X-Forwarded-For header is believed.
	// When empty, callers are identified by the socket address alone.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,cidr"`
}

// TrustedProxyNets parses TrustedProxies.
func (s ServerConfig) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(s.TrustedProxies))
	for _, cidr := range s.TrustedProxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// ProviderConfig describes how outbound clients reach the FieldRoutes API.
type ProviderConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Timeout bounds every outbound call, connection and body read included.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// SecretHeader carries the API secret on outbound requests.
	SecretHeader string `koanf:"secret_header" validate:"required"`

	// CustomerIDPattern restricts the characters accepted in customer ids.
	// The provider's id format is not published, so it can be overridden.
	CustomerIDPattern string `koanf:"customer_id_pattern" validate:"required"`
}

// RateLimitConfig controls the inbound limiter applied to /api routes.
type RateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests" validate:"min=1"`
	Window   time.Duration `koanf:"window" validate:"min=1s"`

	// Backend is "memory" for a per-process limiter or "redis" to share
	// counters between replicas.
	Backend string `koanf:"backend" validate:"oneof=memory redis"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port" and only required for the redis rate limit backend.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Default returns a configuration usable for local development.
// LoadConfig overlays environment values on top of it.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Provider: ProviderConfig{
			BaseURL:           DefaultProviderBaseURL,
			Timeout:           10 * time.Second,
			SecretHeader:      "X-API-Secret",
			CustomerIDPattern: DefaultCustomerIDPattern,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 100,
			Window:   15 * time.Minute,
			Backend:  "memory",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it on
// top of Default(), validates it, applies observability defaults, and returns
// the resulting config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Default()

	// Only keys present in the environment are written; defaults survive.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags and cross-field rules, filling in the
// observability block when it was not provided.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := regexp.Compile(c.Provider.CustomerIDPattern); err != nil {
		return fmt.Errorf("invalid provider customer_id_pattern: %w", err)
	}

	if c.RateLimit.Backend == "redis" && c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when rate_limit.backend is redis")
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed, environment follows primary.env so logs and
	// traces are always tagged consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// IsProduction reports whether error details must be hidden from callers.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}

// envKey maps RELAY_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
