package fieldroutes

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Operation names reported to the ResponseObserver.
const (
	OpSearchCustomers  = "search_customers"
	OpGetCustomer      = "get_customer"
	OpListServices     = "list_services"
	OpListAppointments = "list_appointments"
	OpProbe            = "probe"
)

// SearchField is the provider query parameter a search filters on.
type SearchField string

const (
	SearchByEmail SearchField = "email"
	SearchByPhone SearchField = "phone"
	SearchByQuery SearchField = "q"
)

// SearchParams filters customers on one field. The filter is always sent,
// an empty Term included.
type SearchParams struct {
	By     SearchField
	Term   string
	Limit  int
	Offset int
}

func (p SearchParams) values() url.Values {
	q := pageQuery(p.Limit, p.Offset)
	if p.By != "" {
		q.Set(string(p.By), p.Term)
	}
	return q
}

// ListParams pages through a customer's records.
type ListParams struct {
	Limit  int
	Offset int
}

// AppointmentParams pages appointments, optionally filtered by status.
type AppointmentParams struct {
	Limit  int
	Offset int
	Status string
}

// CustomerList is the provider's search response.
type CustomerList struct {
	Customers []any `json:"customers"`
	Total     int   `json:"total"`
}

// ServiceList is the provider's service history response.
type ServiceList struct {
	Services []any `json:"services"`
	Total    int   `json:"total"`
}

// AppointmentList is the provider's appointments response.
type AppointmentList struct {
	Appointments []any `json:"appointments"`
	Total        int   `json:"total"`
}

// SearchCustomers calls GET /customers/search.
// Missing fields in the response default to an empty list and zero total.
func (c *Client) SearchCustomers(ctx context.Context, p SearchParams) (*CustomerList, error) {
	out := &CustomerList{}
	if err := c.do(ctx, OpSearchCustomers, http.MethodGet, "/customers/search", p.values(), nil, out); err != nil {
		return nil, err
	}
	if out.Customers == nil {
		out.Customers = []any{}
	}
	return out, nil
}

// GetCustomer calls GET /customers/{id}. The record is returned as decoded;
// when the provider wraps it in a "customer" field, that field is unwrapped.
func (c *Client) GetCustomer(ctx context.Context, id string) (any, error) {
	var body any
	if err := c.do(ctx, OpGetCustomer, http.MethodGet, customerPath(id), nil, nil, &body); err != nil {
		return nil, err
	}
	if m, ok := body.(map[string]any); ok {
		if customer, ok := m["customer"]; ok && customer != nil {
			return customer, nil
		}
	}
	return body, nil
}

// ListServices calls GET /customers/{id}/services, newest first.
func (c *Client) ListServices(ctx context.Context, id string, p ListParams) (*ServiceList, error) {
	q := pageQuery(p.Limit, p.Offset)
	q.Set("sort", "date")
	q.Set("order", "desc")

	out := &ServiceList{}
	if err := c.do(ctx, OpListServices, http.MethodGet, customerPath(id, "services"), q, nil, out); err != nil {
		return nil, err
	}
	if out.Services == nil {
		out.Services = []any{}
	}
	return out, nil
}

// ListAppointments calls GET /customers/{id}/appointments.
func (c *Client) ListAppointments(ctx context.Context, id string, p AppointmentParams) (*AppointmentList, error) {
	q := pageQuery(p.Limit, p.Offset)
	if p.Status != "" {
		q.Set("status", p.Status)
	}

	out := &AppointmentList{}
	if err := c.do(ctx, OpListAppointments, http.MethodGet, customerPath(id, "appointments"), q, nil, out); err != nil {
		return nil, err
	}
	if out.Appointments == nil {
		out.Appointments = []any{}
	}
	return out, nil
}

// Probe issues the cheapest authenticated call the provider offers: a
// one-row customer search. It is used to test credentials.
func (c *Client) Probe(ctx context.Context) error {
	body := map[string]int{"limit": 1}
	if err := c.do(ctx, OpProbe, http.MethodPost, "/customers/search", nil, body, nil); err != nil {
		return errors.Wrap(err, "credential probe")
	}
	return nil
}
