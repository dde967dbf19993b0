package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBadRequest(t *testing.T, err error, category string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, category, httpErr.Category)
}

func TestSearchRequest_Validate(t *testing.T) {
	rules := validation.DefaultRules()

	req := &SearchRequest{}
	req.SetDefaults()
	req.Query = "  smith "
	req.Offset = -3
	require.NoError(t, req.Validate(rules))

	assert.Equal(t, "smith", req.Query)
	assert.Equal(t, DefaultSearchLimit, req.Limit)
	assert.Equal(t, 0, req.Offset)

	req = &SearchRequest{Query: "smith", Limit: 0}
	require.NoError(t, req.Validate(rules))
	assert.Equal(t, DefaultSearchLimit, req.Limit, "zero falls back to the default")

	req = &SearchRequest{Query: "x"}
	requireBadRequest(t, req.Validate(rules), "Invalid query")
}

func TestServicesRequest_Validate(t *testing.T) {
	rules := validation.DefaultRules()

	req := &ServicesRequest{ID: "C-1", Limit: 1000}
	require.NoError(t, req.Validate(rules))
	assert.Equal(t, MaxServicesLimit, req.Limit)

	req = &ServicesRequest{ID: strings.Repeat("9", 100)}
	requireBadRequest(t, req.Validate(rules), "Invalid customer ID")
}

func TestAppointmentsRequest_Validate(t *testing.T) {
	rules := validation.DefaultRules()

	req := &AppointmentsRequest{ID: "C%2D1", Limit: 75, Status: " pending "}
	require.NoError(t, req.Validate(rules))

	assert.Equal(t, "C-1", req.ID, "path params are percent-decoded")
	assert.Equal(t, MaxAppointmentsLimit, req.Limit)
	assert.Equal(t, "pending", req.Status)
}

func TestCustomerRequest_CustomPattern(t *testing.T) {
	rules, err := validation.NewRules(`^[0-9]+$`)
	require.NoError(t, err)

	require.NoError(t, (&CustomerRequest{ID: "12345"}).Validate(rules))
	requireBadRequest(t, (&CustomerRequest{ID: "C-1"}).Validate(rules), "Invalid customer ID")
}

func TestSearchByPhoneRequest_Validate(t *testing.T) {
	req := &SearchByPhoneRequest{Phone: "+1 (555) 123-4567"}
	require.NoError(t, req.Validate(nil))
	assert.Equal(t, "15551234567", req.Phone)

	req = &SearchByPhoneRequest{Phone: "  "}
	requireBadRequest(t, req.Validate(nil), "Missing phone")

	// Only an absent phone is rejected.
	req = &SearchByPhoneRequest{Phone: "---"}
	require.NoError(t, req.Validate(nil))
	assert.Equal(t, "", req.Phone)
}

func TestSearchByEmailRequest_Validate(t *testing.T) {
	req := &SearchByEmailRequest{Email: "jane%40example.com"}
	require.NoError(t, req.Validate(nil))
	assert.Equal(t, "jane@example.com", req.Email)

	requireBadRequest(t, (&SearchByEmailRequest{}).Validate(nil), "Invalid email")
}

func TestTestCredentialsRequest_Validate(t *testing.T) {
	req := &TestCredentialsRequest{APIKey: " k ", APISecret: "s"}
	require.NoError(t, req.Validate(nil))
	assert.Equal(t, "k", req.APIKey)

	var httpErr *errs.HTTPError
	err := (&TestCredentialsRequest{APIKey: "k"}).Validate(nil)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, errs.KindMissingCredentials, httpErr.Kind)

	err = (&TestCredentialsRequest{APIKey: "k", APISecret: "s", BaseURL: "ftp://x"}).Validate(nil)
	assert.Error(t, err)
}
