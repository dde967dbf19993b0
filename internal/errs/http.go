package errs

import (
	"net/http"
)

// Fixed messages shared by routes and middleware.
const (
	MsgCredentialsRequired = "API key and secret are required"
	MsgCustomerNotFound    = "No customer found with the provided ID"
	MsgInvalidCredentials  = "The provided API credentials are invalid"
	MsgRouteNotFound       = "The requested endpoint was not found"
	MsgUnexpected          = "An unexpected error occurred"
	MsgTooManyRequests     = "Too many requests from this IP, please try again later."
)

// NewMissingCredentialsError is returned when a customer route is called
// without an API key or secret. The provider is never contacted.
func NewMissingCredentialsError() *HTTPError {
	return &HTTPError{
		Category: "Missing API credentials",
		Message:  MsgCredentialsRequired,
		Status:   http.StatusUnauthorized,
		Kind:     KindMissingCredentials,
	}
}

// NewInvalidCredentialsError is returned by the credential test when the
// provider rejects the key/secret pair.
func NewInvalidCredentialsError() *HTTPError {
	return &HTTPError{
		Category: "Invalid credentials",
		Message:  MsgInvalidCredentials,
		Status:   http.StatusUnauthorized,
		Kind:     KindInvalidCredentials,
	}
}

// NewBadRequestError creates a 400 with a route-specific category and message.
func NewBadRequestError(category, message string) *HTTPError {
	return &HTTPError{
		Category: category,
		Message:  message,
		Status:   http.StatusBadRequest,
		Kind:     KindBadRequest,
	}
}

// NewCustomerNotFoundError maps a provider 404 on identifier-scoped routes.
func NewCustomerNotFoundError() *HTTPError {
	return &HTTPError{
		Category: "Customer not found",
		Message:  MsgCustomerNotFound,
		Status:   http.StatusNotFound,
		Kind:     KindNotFound,
	}
}

// NewRouteNotFoundError is returned for unmatched routes.
func NewRouteNotFoundError() *HTTPError {
	return &HTTPError{
		Category: "Not found",
		Message:  MsgRouteNotFound,
		Status:   http.StatusNotFound,
		Kind:     KindRouteNotFound,
	}
}

// NewTooManyRequestsError is written by the rate limiter before any handler runs.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Category: "Too many requests",
		Message:  MsgTooManyRequests,
		Status:   http.StatusTooManyRequests,
		Kind:     KindRateLimited,
	}
}

// NewInternalServerError creates a generic 500.
//
// The message never includes the real error; that stays in the logs.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Category: "Internal server error",
		Message:  MsgUnexpected,
		Status:   http.StatusInternalServerError,
		Kind:     KindInternal,
	}
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed", err.Error())
}

// NewPayloadTooLargeError is returned when a request body exceeds the body limit.
func NewPayloadTooLargeError() *HTTPError {
	return &HTTPError{
		Category: "Payload too large",
		Message:  "The request body exceeds the allowed size",
		Status:   http.StatusRequestEntityTooLarge,
		Kind:     KindBadRequest,
	}
}
