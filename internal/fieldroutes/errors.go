package fieldroutes

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// APIError is a non-2xx response from the provider.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string

	// Body is the decoded JSON body, or the raw text when it was not JSON.
	Body any
}

func newAPIError(method, path string, status int, raw []byte) error {
	apiErr := &APIError{Method: method, Path: path, Status: status}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			apiErr.Body = decoded
			apiErr.Message = messageFrom(decoded)
		} else {
			apiErr.Body = string(raw)
		}
	}

	// WithStack so the error funnel can log where the call was made.
	return errors.WithStack(apiErr)
}

func messageFrom(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("fieldroutes: %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("fieldroutes: %s %s returned status %d", e.Method, e.Path, e.Status)
}

// StatusCode returns the provider's HTTP status.
func (e *APIError) StatusCode() int { return e.Status }

// ProviderMessage returns the provider's message field, if any.
func (e *APIError) ProviderMessage() string { return e.Message }

// ProviderBody returns the provider's response body.
func (e *APIError) ProviderBody() any { return e.Body }

// IsStatus reports whether err is an APIError with one of the given statuses.
func IsStatus(err error, statuses ...int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, s := range statuses {
		if apiErr.Status == s {
			return true
		}
	}
	return false
}
