package handler

import (
	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/middleware"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/server"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/service"
	"github.com/labstack/echo/v4"
)

// CustomerHandler serves the customer data routes. Every route runs behind
// middleware.AuthMiddleware.RequireCredentials.
type CustomerHandler struct {
	Handler
	customers *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

func provider(c echo.Context) (*fieldroutes.Client, error) {
	client := middleware.GetProviderClient(c)
	if client == nil {
		// Route registered without RequireCredentials.
		return nil, errs.NewInternalServerError()
	}
	return client, nil
}

func (h *CustomerHandler) SearchByEmail(c echo.Context, req *SearchByEmailRequest) (*service.Envelope, error) {
	client, err := provider(c)
	if err != nil {
		return nil, err
	}

	return h.customers.Search(c.Request().Context(), client, fieldroutes.SearchParams{
		By:     fieldroutes.SearchByEmail,
		Term:   req.Email,
		Limit:  FixedSearchLimit,
		Offset: req.Offset,
	}, req.Email)
}

func (h *CustomerHandler) SearchByPhone(c echo.Context, req *SearchByPhoneRequest) (*service.Envelope, error) {
	client, err := provider(c)
	if err != nil {
		return nil, err
	}

	return h.customers.Search(c.Request().Context(), client, fieldroutes.SearchParams{
		By:     fieldroutes.SearchByPhone,
		Term:   req.Phone,
		Limit:  FixedSearchLimit,
		Offset: req.Offset,
	}, req.Phone)
}

func (h *CustomerHandler) Search(c echo.Context, req *SearchRequest) (*service.Envelope, error) {
	client, err := provider(c)
	if err != nil {
		return nil, err
	}

	return h.customers.Search(c.Request().Context(), client, fieldroutes.SearchParams{
		By:     fieldroutes.SearchByQuery,
		Term:   req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	}, req.Query)
}

func (h *CustomerHandler) Get(c echo.Context, req *CustomerRequest) (*service.Envelope, error) {
	client, err := provider(c)
	if err != nil {
		return nil, err
	}

	return h.customers.Get(c.Request().Context(), client, req.ID)
}

func (h *CustomerHandler) Services(c echo.Context, req *ServicesRequest) (*service.Envelope, error) {
	client, err := provider(c)
	if err != nil {
		return nil, err
	}

	return h.customers.Services(c.Request().Context(), client, req.ID, fieldroutes.ListParams{
		Limit:  req.Limit,
		Offset: req.Offset,
	})
}

func (h *CustomerHandler) Appointments(c echo.Context, req *AppointmentsRequest) (*service.Envelope, error) {
	client, err := provider(c)
	if err != nil {
		return nil, err
	}

	return h.customers.Appointments(c.Request().Context(), client, req.ID, fieldroutes.AppointmentParams{
		Limit:  req.Limit,
		Offset: req.Offset,
		Status: req.Status,
	})
}
