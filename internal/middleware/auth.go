package middleware

import (
	"strings"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	// APIKeyHeader carries the caller's FieldRoutes API key.
	APIKeyHeader = "X-API-Key"

	// APISecretHeader carries the caller's FieldRoutes API secret.
	APISecretHeader = "X-API-Secret"

	// ProviderClientKey stores the per-request *fieldroutes.Client in Echo context.
	ProviderClientKey = "provider_client"
)

// AuthMiddleware binds forwarded provider credentials to a client.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireCredentials rejects requests without both credential headers and
// otherwise stores a provider client built for them.
//
// Credential values are never logged.
func (auth *AuthMiddleware) RequireCredentials(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := strings.TrimSpace(c.Request().Header.Get(APIKeyHeader))
		secret := strings.TrimSpace(c.Request().Header.Get(APISecretHeader))

		if key == "" || secret == "" {
			GetLogger(c).Debug().
				Str("function", "RequireCredentials").
				Bool("has_key", key != "").
				Bool("has_secret", secret != "").
				Msg("missing provider credentials")

			return errs.NewMissingCredentialsError()
		}

		client := auth.server.Providers.New(fieldroutes.Credentials{
			Key:    key,
			Secret: secret,
		})
		c.Set(ProviderClientKey, client)

		return next(c)
	}
}

// GetProviderClient returns the client bound by RequireCredentials, or nil.
func GetProviderClient(c echo.Context) *fieldroutes.Client {
	if client, ok := c.Get(ProviderClientKey).(*fieldroutes.Client); ok {
		return client
	}
	return nil
}
