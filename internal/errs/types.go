package errs

// Kind classifies an HTTPError for logging and metrics.
// It is never serialized; callers only see Category and Message.
type Kind string

const (
	KindMissingCredentials Kind = "missing_credentials"
	KindBadRequest         Kind = "bad_request"
	KindNotFound           Kind = "not_found"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindProvider           Kind = "provider_error"
	KindInternal           Kind = "internal_error"
	KindRateLimited        Kind = "rate_limited"
	KindRouteNotFound      Kind = "route_not_found"
)

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly to JSON. Status and Kind stay server-side.
type HTTPError struct {
	// Category is the short error label, e.g. "Invalid email".
	Category string `json:"error"`

	// Message is the human-friendly explanation.
	Message string `json:"message"`

	// Details carries the raw provider response body. It is only set
	// outside production.
	Details any `json:"details,omitempty"`

	Status int  `json:"-"`
	Kind   Kind `json:"-"`
}

// Error returns the Message, so printing/logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is returns true if target is also a *HTTPError.
// It does not compare fields; use errors.As to inspect them.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Category: e.Category,
		Message:  message,
		Details:  e.Details,
		Status:   e.Status,
		Kind:     e.Kind,
	}
}

// WithoutDetails returns a copy of this HTTPError with Details removed.
func (e *HTTPError) WithoutDetails() *HTTPError {
	return &HTTPError{
		Category: e.Category,
		Message:  e.Message,
		Status:   e.Status,
		Kind:     e.Kind,
	}
}
