package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveProvider(t *testing.T) {
	m := New()

	m.ObserveProvider("get_customer", 200, 30*time.Millisecond)
	m.ObserveProvider("get_customer", 0, time.Second)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("get_customer", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("get_customer", "error")))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/customers/:id", 404, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/customers/:id", "4xx")))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.RateLimitRejectedTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fieldroutes_relay_ratelimit_rejected_total 1")
}
