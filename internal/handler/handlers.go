package handler

import (
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health      *HealthHandler
	Customers   *CustomerHandler
	Credentials *CredentialHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		Customers:   NewCustomerHandler(s, services.Customers),
		Credentials: NewCredentialHandler(s, services.Credentials),
	}
}
