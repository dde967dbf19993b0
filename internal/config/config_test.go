package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultProviderBaseURL, cfg.Provider.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RELAY_PRIMARY__ENV", "production")
	t.Setenv("RELAY_SERVER__PORT", "8081")
	t.Setenv("RELAY_SERVER__CORS_ALLOWED_ORIGINS", "https://app.missiveapp.com,https://example.com")
	t.Setenv("RELAY_PROVIDER__BASE_URL", "https://sandbox.fieldroutes.test/v1")
	t.Setenv("RELAY_PROVIDER__TIMEOUT", "3s")
	t.Setenv("RELAY_RATE_LIMIT__WINDOW", "1m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.missiveapp.com", "https://example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "https://sandbox.fieldroutes.test/v1", cfg.Provider.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.GetLogLevel())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{
			name:   "unknown environment",
			mutate: func(c *Config) { c.Primary.Env = "qa" },
			errMsg: "config validation failed",
		},
		{
			name:   "bad customer id pattern",
			mutate: func(c *Config) { c.Provider.CustomerIDPattern = "[a-" },
			errMsg: "customer_id_pattern",
		},
		{
			name:   "redis backend without address",
			mutate: func(c *Config) { c.RateLimit.Backend = "redis" },
			errMsg: "redis.address",
		},
		{
			name:   "trusted proxy is not a CIDR",
			mutate: func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.1"} },
			errMsg: "config validation failed",
		},
		{
			name: "bad log level",
			mutate: func(c *Config) {
				c.Observability = DefaultObservabilityConfig()
				c.Observability.Logging.Level = "verbose"
			},
			errMsg: "invalid logging level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfig_TrustedProxies(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)

	t.Setenv("RELAY_SERVER__TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.0/24")

	cfg, err = LoadConfig()
	require.NoError(t, err)

	nets, err := cfg.Server.TrustedProxyNets()
	require.NoError(t, err)
	require.Len(t, nets, 2)
	assert.Equal(t, "10.0.0.0/8", nets[0].String())
	assert.Equal(t, "192.0.2.0/24", nets[1].String())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("RELAY_SERVER__READ_TIMEOUT"))
	assert.Equal(t, "observability.new_relic.license_key", envKey("RELAY_OBSERVABILITY__NEW_RELIC__LICENSE_KEY"))
}
