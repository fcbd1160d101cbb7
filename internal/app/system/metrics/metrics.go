// Package metrics exposes Prometheus instrumentation for inbound HTTP
// requests and outbound backend calls.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec

	liveSubscribers prometheus.Gauge
	auditEvents     *prometheus.CounterVec
}

// New registers every collector, including the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankerhub",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tankerhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankerhub",
			Name:      "backend_requests_total",
			Help:      "Calls to the REST backend, by method, endpoint and status (0 = no response).",
		}, []string{"method", "endpoint", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tankerhub",
			Name:      "backend_request_duration_seconds",
			Help:      "REST backend latency by method and endpoint.",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		}, []string{"method", "endpoint"}),
		liveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tankerhub",
			Name:      "sensor_live_subscribers",
			Help:      "Open live sensor websocket connections.",
		}),
		auditEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tankerhub",
			Name:      "audit_events_total",
			Help:      "Dashboard audit events, by category and event type.",
		}, []string{"category", "event"}),
	}
	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.upstreamCalls, m.upstreamDuration,
		m.liveSubscribers, m.auditEvents,
	)
	return m
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Middleware records every request under its chi route pattern, so
// /bookings/{id}/view is one series regardless of id.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveUpstream matches backend.Observer.
func (m *Metrics) ObserveUpstream(method, path string, status int, elapsed time.Duration) {
	ep := Endpoint(path)
	m.upstreamCalls.WithLabelValues(method, ep, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(method, ep).Observe(elapsed.Seconds())
}

// SetLiveSubscribers records the number of live feed connections.
func (m *Metrics) SetLiveSubscribers(n int) { m.liveSubscribers.Set(float64(n)) }

// CountAudit records one audit event.
func (m *Metrics) CountAudit(category, event string) {
	m.auditEvents.WithLabelValues(category, event).Inc()
}

var idSegment = regexp.MustCompile(`^([0-9a-fA-F]{24}|[0-9a-fA-F-]{36}|\d+)$`)

// Endpoint collapses id-like path segments (Mongo ObjectIDs, UUIDs,
// numbers) to {id} and drops the query.
func Endpoint(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if idSegment.MatchString(p) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
