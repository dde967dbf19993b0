package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/fieldroutes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	customers    *fieldroutes.CustomerList
	customer     any
	services     *fieldroutes.ServiceList
	appointments *fieldroutes.AppointmentList
	err          error

	calls int
}

func (p *stubProvider) SearchCustomers(context.Context, fieldroutes.SearchParams) (*fieldroutes.CustomerList, error) {
	p.calls++
	return p.customers, p.err
}

func (p *stubProvider) GetCustomer(context.Context, string) (any, error) {
	p.calls++
	return p.customer, p.err
}

func (p *stubProvider) ListServices(context.Context, string, fieldroutes.ListParams) (*fieldroutes.ServiceList, error) {
	p.calls++
	return p.services, p.err
}

func (p *stubProvider) ListAppointments(context.Context, string, fieldroutes.AppointmentParams) (*fieldroutes.AppointmentList, error) {
	p.calls++
	return p.appointments, p.err
}

// providerError produces a real *fieldroutes.APIError with the given status.
func providerError(t *testing.T, status int, body string) error {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := fieldroutes.NewFactory(fieldroutes.Options{BaseURL: srv.URL}).New(fieldroutes.Credentials{Key: "k", Secret: "s"})
	_, err := client.GetCustomer(context.Background(), "c1")
	require.Error(t, err)
	return err
}

func TestCustomerService_Search(t *testing.T) {
	provider := &stubProvider{customers: &fieldroutes.CustomerList{
		Customers: []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}, map[string]any{"id": "3"}},
		Total:     3,
	}}

	env, err := NewCustomerService().Search(context.Background(), provider, fieldroutes.SearchParams{By: fieldroutes.SearchByEmail, Term: "a@b.co"}, "a@b.co")
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Len(t, env.Data, 3)
	require.NotNil(t, env.Total)
	assert.Equal(t, 3, *env.Total)
	assert.Equal(t, "a@b.co", env.Query)
	assert.Equal(t, 1, provider.calls)
}

func TestCustomerService_SearchEmptyDefaults(t *testing.T) {
	provider := &stubProvider{customers: &fieldroutes.CustomerList{}}

	env, err := NewCustomerService().Search(context.Background(), provider, fieldroutes.SearchParams{By: fieldroutes.SearchByQuery, Term: "smith"}, "smith")
	require.NoError(t, err)

	assert.Equal(t, []any{}, env.Data)
	assert.Equal(t, 0, *env.Total)
}

func TestCustomerService_GetNotFound(t *testing.T) {
	provider := &stubProvider{err: providerError(t, http.StatusNotFound, `{"message":"nope"}`)}

	_, err := NewCustomerService().Get(context.Background(), provider, "c1")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Customer not found", httpErr.Category)
	assert.Equal(t, errs.MsgCustomerNotFound, httpErr.Message)
}

func TestCustomerService_ServicesNotFound(t *testing.T) {
	provider := &stubProvider{err: providerError(t, http.StatusNotFound, `{}`)}

	_, err := NewCustomerService().Services(context.Background(), provider, "c1", fieldroutes.ListParams{Limit: 50})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, errs.KindNotFound, httpErr.Kind)
}

func TestCustomerService_AppointmentsNotFoundIsProviderError(t *testing.T) {
	provider := &stubProvider{err: providerError(t, http.StatusNotFound, `{"message":"no such customer"}`)}

	_, err := NewCustomerService().Appointments(context.Background(), provider, "c1", fieldroutes.AppointmentParams{Limit: 20})
	require.Error(t, err)

	got := errs.Normalizer{}.Normalize(err)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "API Error", got.Category)
	assert.Equal(t, "no such customer", got.Message)
}

func TestCustomerService_GetProviderFailure(t *testing.T) {
	provider := &stubProvider{err: providerError(t, http.StatusBadGateway, `{"error":"upstream down"}`)}

	_, err := NewCustomerService().Get(context.Background(), provider, "c1")

	got := errs.Normalizer{ExposeDetails: true}.Normalize(err)
	assert.Equal(t, http.StatusBadGateway, got.Status)
	assert.Equal(t, "upstream down", got.Message)
	assert.Equal(t, map[string]any{"error": "upstream down"}, got.Details)
}

func TestCustomerService_GetUnwrapsCustomer(t *testing.T) {
	provider := &stubProvider{customer: map[string]any{"id": "c1", "name": "Ada"}}

	env, err := NewCustomerService().Get(context.Background(), provider, "c1")
	require.NoError(t, err)

	assert.Nil(t, env.Total)
	assert.Equal(t, map[string]any{"id": "c1", "name": "Ada"}, env.Data)
}
