package service

import (
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
)

type Services struct {
	Customers   *CustomerService
	Credentials *CredentialService
}

func NewService(s *server.Server) (*Services, error) {
	return &Services{
		Customers:   NewCustomerService(),
		Credentials: NewCredentialService(s.Providers),
	}, nil
}
