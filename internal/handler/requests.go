package handler

import (
	"strings"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/blakeppc/fieldroutes-missive-integration/internal/validation"
)

// Paging defaults and caps per route.
const (
	FixedSearchLimit = 10

	DefaultSearchLimit = 20
	MaxSearchLimit     = 50

	DefaultServicesLimit = 50
	MaxServicesLimit     = 100

	DefaultAppointmentsLimit = 20
	MaxAppointmentsLimit     = 50
)

func invalidCustomerID() *errs.HTTPError {
	return errs.NewBadRequestError("Invalid customer ID",
		"Customer ID must be 1-99 characters of letters, digits, hyphens or underscores")
}

func validateCustomerID(rules *validation.Rules, id *string) error {
	*id = validation.UnescapeParam(*id)
	if !rules.IsValidCustomerID(*id) {
		return invalidCustomerID()
	}
	return nil
}

// SearchByEmailRequest is GET /api/customers/search/email/:email.
type SearchByEmailRequest struct {
	Email  string `param:"email"`
	Offset int    `query:"offset"`
}

func (r *SearchByEmailRequest) Validate(*validation.Rules) error {
	r.Email = strings.TrimSpace(validation.UnescapeParam(r.Email))
	if !validation.IsValidEmail(r.Email) {
		return errs.NewBadRequestError("Invalid email", "A valid email address is required")
	}
	r.Offset = validation.ClampOffset(r.Offset)
	return nil
}

// SearchByPhoneRequest is GET /api/customers/search/phone/:phone.
type SearchByPhoneRequest struct {
	Phone  string `param:"phone"`
	Offset int    `query:"offset"`
}

// Validate rejects only an absent phone. Non-digits are stripped; an
// all-punctuation value is sent to the provider as an empty phone filter.
func (r *SearchByPhoneRequest) Validate(*validation.Rules) error {
	raw := strings.TrimSpace(validation.UnescapeParam(r.Phone))
	if raw == "" {
		return errs.NewBadRequestError("Missing phone", "A phone number is required")
	}
	r.Phone = validation.NormalizePhone(raw)
	r.Offset = validation.ClampOffset(r.Offset)
	return nil
}

// SearchRequest is GET /api/customers/search?q=.
type SearchRequest struct {
	Query  string `query:"q"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (r *SearchRequest) SetDefaults() {
	r.Limit = DefaultSearchLimit
}

func (r *SearchRequest) Validate(*validation.Rules) error {
	q, ok := validation.NormalizeQuery(r.Query)
	if !ok {
		return errs.NewBadRequestError("Invalid query",
			"Search query must be at least 2 characters")
	}
	r.Query = q
	r.Limit = validation.ClampLimit(r.Limit, DefaultSearchLimit, MaxSearchLimit)
	r.Offset = validation.ClampOffset(r.Offset)
	return nil
}

// CustomerRequest is GET /api/customers/:id.
type CustomerRequest struct {
	ID string `param:"id"`
}

func (r *CustomerRequest) Validate(rules *validation.Rules) error {
	return validateCustomerID(rules, &r.ID)
}

// ServicesRequest is GET /api/customers/:id/services.
type ServicesRequest struct {
	ID     string `param:"id"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (r *ServicesRequest) SetDefaults() {
	r.Limit = DefaultServicesLimit
}

func (r *ServicesRequest) Validate(rules *validation.Rules) error {
	if err := validateCustomerID(rules, &r.ID); err != nil {
		return err
	}
	r.Limit = validation.ClampLimit(r.Limit, DefaultServicesLimit, MaxServicesLimit)
	r.Offset = validation.ClampOffset(r.Offset)
	return nil
}

// AppointmentsRequest is GET /api/customers/:id/appointments.
type AppointmentsRequest struct {
	ID     string `param:"id"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Status string `query:"status"`
}

func (r *AppointmentsRequest) SetDefaults() {
	r.Limit = DefaultAppointmentsLimit
}

func (r *AppointmentsRequest) Validate(rules *validation.Rules) error {
	if err := validateCustomerID(rules, &r.ID); err != nil {
		return err
	}
	r.Status = strings.TrimSpace(r.Status)
	r.Limit = validation.ClampLimit(r.Limit, DefaultAppointmentsLimit, MaxAppointmentsLimit)
	r.Offset = validation.ClampOffset(r.Offset)
	return nil
}

// TestCredentialsRequest is the POST /api/test-credentials body.
type TestCredentialsRequest struct {
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
	BaseURL   string `json:"baseUrl" validate:"omitempty,http_url"`
}

func (r *TestCredentialsRequest) Validate(*validation.Rules) error {
	r.APIKey = strings.TrimSpace(r.APIKey)
	r.APISecret = strings.TrimSpace(r.APISecret)
	if r.APIKey == "" || r.APISecret == "" {
		return errs.NewMissingCredentialsError()
	}
	r.BaseURL = strings.TrimSpace(r.BaseURL)
	return validation.Struct(r)
}
