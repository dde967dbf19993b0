package handler

import (
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/service"
	"github.com/labstack/echo/v4"
)

// CredentialHandler serves POST /api/test-credentials. Credentials come from
// the body, not the headers.
type CredentialHandler struct {
	Handler
	credentials *service.CredentialService
}

func NewCredentialHandler(s *server.Server, credentials *service.CredentialService) *CredentialHandler {
	return &CredentialHandler{
		Handler:     NewHandler(s),
		credentials: credentials,
	}
}

func (h *CredentialHandler) Test(c echo.Context, req *TestCredentialsRequest) (*service.Acknowledgement, error) {
	return h.credentials.Test(c.Request().Context(), fieldroutes.Credentials{
		Key:     req.APIKey,
		Secret:  req.APISecret,
		BaseURL: req.BaseURL,
	})
}
