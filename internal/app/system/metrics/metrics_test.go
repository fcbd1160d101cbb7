package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	tests := map[string]string{
		"/api/bookings/all":                                "/api/bookings/all",
		"/api/bookings/6650c0ffee0000000000a001/status":    "/api/bookings/{id}/status",
		"/api/driver/42":                                   "/api/driver/{id}",
		"/api/sensor/123e4567-e89b-12d3-a456-426614174000": "/api/sensor/{id}",
		"/api/admin/customers?page=2":                      "/api/admin/customers",
	}
	for in, want := range tests {
		assert.Equal(t, want, Endpoint(in), in)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/bookings/{id}/view", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/bookings/"+id+"/view", nil))
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/bookings/{id}/view", "GET", "418"))
	assert.Equal(t, 3.0, got)
}

func TestObserveUpstream(t *testing.T) {
	m := New()
	m.ObserveUpstream("GET", "/api/driver/42", 200, 30*time.Millisecond)
	m.ObserveUpstream("GET", "/api/driver/43", 200, 30*time.Millisecond)
	m.ObserveUpstream("GET", "/api/driver/all", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("GET", "/api/driver/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("GET", "/api/driver/all", "0")))
}

func TestHandler_Exposes(t *testing.T) {
	m := New()
	m.SetLiveSubscribers(2)
	m.CountAudit("auth", "login_success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "tankerhub_sensor_live_subscribers 2"))
	assert.True(t, strings.Contains(body, `tankerhub_audit_events_total{category="auth",event="login_success"} 1`))
}
