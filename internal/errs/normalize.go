package errs

import (
	"net/http"

	"github.com/pkg/errors"
)

// UpstreamError is implemented by errors that carry a provider HTTP response.
type UpstreamError interface {
	error
	StatusCode() int
	ProviderMessage() string
	ProviderBody() any
}

// ProviderError marks a failed provider call and remembers the route's
// fallback message.
type ProviderError struct {
	Err            error
	DefaultMessage string
}

// Provider wraps a provider or network failure for the normalizer.
func Provider(err error, defaultMessage string) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Err: err, DefaultMessage: defaultMessage}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return e.DefaultMessage
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Normalizer maps any handler failure to the HTTPError written to the caller.
type Normalizer struct {
	// ExposeDetails includes the raw provider body under "details".
	// It must be false in production.
	ExposeDetails bool
}

// Normalize returns the response for err:
//   - *HTTPError passes through (details stripped when not exposed).
//   - provider failures become {error:"API Error"} with the provider status
//     (500 when none), and the first non-empty of provider message,
//     underlying error message, route default.
//   - anything else is an unexpected internal error.
func (n Normalizer) Normalize(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		if !n.ExposeDetails && httpErr.Details != nil {
			return httpErr.WithoutDetails()
		}
		return httpErr
	}

	var providerErr *ProviderError
	var upstream UpstreamError
	isProvider := errors.As(err, &providerErr)
	hasUpstream := errors.As(err, &upstream)

	if !isProvider && !hasUpstream {
		return NewInternalServerError()
	}

	status := http.StatusInternalServerError
	var message string
	var details any

	if hasUpstream {
		if code := upstream.StatusCode(); code > 0 {
			status = code
		}
		message = upstream.ProviderMessage()
		details = upstream.ProviderBody()
	}

	if message == "" {
		if providerErr != nil && providerErr.Err != nil {
			message = providerErr.Err.Error()
		} else if !isProvider {
			message = err.Error()
		}
	}

	if message == "" && providerErr != nil {
		message = providerErr.DefaultMessage
	}

	out := &HTTPError{
		Category: "API Error",
		Message:  message,
		Status:   status,
		Kind:     KindProvider,
	}
	if n.ExposeDetails {
		out.Details = details
	}

	return out
}
