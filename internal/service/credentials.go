package service

import (
	"context"
	"net/http"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/rs/zerolog"
)

const (
	MsgCredentialsValid     = "Credentials are valid"
	MsgCredentialTestFailed = "Failed to test credentials"
)

// Prober is implemented by *fieldroutes.Client.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFactory builds a prober for a set of credentials.
type ProberFactory func(creds fieldroutes.Credentials) Prober

// CredentialService checks caller-supplied credentials against the provider.
type CredentialService struct {
	newProber ProberFactory
}

// NewCredentialService probes with clients from factory.
func NewCredentialService(factory *fieldroutes.Factory) *CredentialService {
	return &CredentialService{
		newProber: func(creds fieldroutes.Credentials) Prober {
			return factory.New(creds)
		},
	}
}

// Test makes one probe call. Provider 401/403 becomes the invalid-credentials error.
func (s *CredentialService) Test(ctx context.Context, creds fieldroutes.Credentials) (*Acknowledgement, error) {
	err := s.newProber(creds).Probe(ctx)
	if err != nil {
		if fieldroutes.IsStatus(err, http.StatusUnauthorized, http.StatusForbidden) {
			return nil, errs.NewInvalidCredentialsError()
		}
		return nil, errs.Provider(err, MsgCredentialTestFailed)
	}

	zerolog.Ctx(ctx).Info().
		Bool("base_url_override", creds.BaseURL != "").
		Msg("credential test passed")

	return &Acknowledgement{Success: true, Message: MsgCredentialsValid}, nil
}
