package service

import (
	"context"
	"net/http"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/rs/zerolog"
)

// Fallback messages used when a failed provider call carries no message.
const (
	MsgSearchFailed       = "Failed to search customers"
	MsgGetCustomerFailed  = "Failed to fetch customer"
	MsgServicesFailed     = "Failed to fetch customer services"
	MsgAppointmentsFailed = "Failed to fetch customer appointments"
)

// CustomerProvider is the part of *fieldroutes.Client used for customer data.
type CustomerProvider interface {
	SearchCustomers(ctx context.Context, p fieldroutes.SearchParams) (*fieldroutes.CustomerList, error)
	GetCustomer(ctx context.Context, id string) (any, error)
	ListServices(ctx context.Context, id string, p fieldroutes.ListParams) (*fieldroutes.ServiceList, error)
	ListAppointments(ctx context.Context, id string, p fieldroutes.AppointmentParams) (*fieldroutes.AppointmentList, error)
}

// CustomerService reshapes provider customer data. It is stateless; the
// provider is bound to the caller's credentials and passed per call.
type CustomerService struct{}

func NewCustomerService() *CustomerService {
	return &CustomerService{}
}

// Search runs one customer search. query is echoed back in the envelope.
func (s *CustomerService) Search(ctx context.Context, provider CustomerProvider, params fieldroutes.SearchParams, query string) (*Envelope, error) {
	result, err := provider.SearchCustomers(ctx, params)
	if err != nil {
		return nil, errs.Provider(err, MsgSearchFailed)
	}

	zerolog.Ctx(ctx).Debug().
		Int("results", len(result.Customers)).
		Int("total", result.Total).
		Msg("customer search completed")

	envelope := list(result.Customers, result.Total)
	envelope.Query = query

	return envelope, nil
}

// Get fetches one customer. A provider 404 becomes the customer-not-found error.
func (s *CustomerService) Get(ctx context.Context, provider CustomerProvider, id string) (*Envelope, error) {
	customer, err := provider.GetCustomer(ctx, id)
	if err != nil {
		if fieldroutes.IsStatus(err, http.StatusNotFound) {
			return nil, errs.NewCustomerNotFoundError()
		}
		return nil, errs.Provider(err, MsgGetCustomerFailed)
	}

	return &Envelope{Success: true, Data: customer}, nil
}

// Services lists a customer's service history, newest first. A provider 404
// becomes the customer-not-found error.
func (s *CustomerService) Services(ctx context.Context, provider CustomerProvider, id string, params fieldroutes.ListParams) (*Envelope, error) {
	result, err := provider.ListServices(ctx, id, params)
	if err != nil {
		if fieldroutes.IsStatus(err, http.StatusNotFound) {
			return nil, errs.NewCustomerNotFoundError()
		}
		return nil, errs.Provider(err, MsgServicesFailed)
	}

	return list(result.Services, result.Total), nil
}

// Appointments lists a customer's appointments. Provider failures, 404
// included, go to the normalizer.
func (s *CustomerService) Appointments(ctx context.Context, provider CustomerProvider, id string, params fieldroutes.AppointmentParams) (*Envelope, error) {
	result, err := provider.ListAppointments(ctx, id, params)
	if err != nil {
		return nil, errs.Provider(err, MsgAppointmentsFailed)
	}

	return list(result.Appointments, result.Total), nil
}
