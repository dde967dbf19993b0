// Package fieldroutes is a minimal REST client for the FieldRoutes API.
//
// A Client is bound to one set of credentials and is meant to live for a
// single inbound request. Clients are built by a Factory that carries the
// shared, credential-free settings (base URL, timeout, transport).
package fieldroutes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the production FieldRoutes endpoint.
	DefaultBaseURL = "https://api.fieldroutes.com/v1"

	// DefaultTimeout bounds every outbound call.
	DefaultTimeout = 10 * time.Second

	// DefaultSecretHeader carries the API secret.
	DefaultSecretHeader = "X-API-Secret"

	// maxBodySize caps how much of a provider response is read.
	maxBodySize = 10 << 20
)

// Credentials identify the caller to the provider.
type Credentials struct {
	Key    string
	Secret string

	// BaseURL overrides the factory's base URL when set.
	BaseURL string
}

// ResponseObserver is told about every completed provider call. status is 0
// when no response was received.
type ResponseObserver func(operation string, status int, elapsed time.Duration)

// Options are the credential-free settings shared by every client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	SecretHeader string

	// Transport is shared between clients; it holds connections, not credentials.
	Transport http.RoundTripper

	Observer ResponseObserver
}

// Factory creates per-request clients.
type Factory struct {
	opts Options
}

// NewFactory applies defaults to opts and returns a Factory.
func NewFactory(opts Options) *Factory {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.SecretHeader == "" {
		opts.SecretHeader = DefaultSecretHeader
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	return &Factory{opts: opts}
}

// New returns a client bound to creds. No network I/O happens here.
func (f *Factory) New(creds Credentials) *Client {
	baseURL := f.opts.BaseURL
	if creds.BaseURL != "" {
		baseURL = creds.BaseURL
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		key:          creds.Key,
		secret:       creds.Secret,
		secretHeader: f.opts.SecretHeader,
		observer:     f.opts.Observer,
		http: &http.Client{
			Timeout:   f.opts.Timeout,
			Transport: f.opts.Transport,
		},
	}
}

// Client talks to the provider on behalf of one caller.
type Client struct {
	baseURL      string
	key          string
	secret       string
	secretHeader string
	observer     ResponseObserver
	http         *http.Client
}

// BaseURL returns the endpoint this client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

type requestIDKey struct{}

// WithRequestID returns a context whose outbound calls carry X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// do executes one request and decodes a 2xx body into result.
// Non-2xx responses are returned as *APIError; there are no retries.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, result any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set(c.secretHeader, c.secret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(operation, 0, time.Since(start))

		// *url.Error quotes the full endpoint, query string included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return errors.Wrapf(err, "fieldroutes: %s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.observe(operation, resp.StatusCode, time.Since(start))
	if err != nil {
		return errors.Wrapf(err, "fieldroutes: reading %s %s response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, path, resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return errors.Wrapf(err, "fieldroutes: decoding %s %s response", method, path)
		}
	}

	return nil
}

func (c *Client) observe(operation string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer(operation, status, elapsed)
	}
}

func customerPath(id string, rest ...string) string {
	parts := append([]string{"/customers", url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	return q
}
