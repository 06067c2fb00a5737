package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies for the gateway.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	upstream *prometheus.CounterVec
}

// NewHTTPMetrics registers the gateway metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests handled by the storefront gateway.",
	}, []string{"route", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	upstream := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_errors_total",
		Help: "Failed calls to the jewelry backend by status.",
	}, []string{"status"})
	reg.MustRegister(requests, duration, upstream)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
		upstream: upstream,
	}
}

// ObserveRequest records one handled request.
func (m *HTTPMetrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// IncUpstreamError counts a failed backend call.
func (m *HTTPMetrics) IncUpstreamError(status int) {
	if m == nil || m.upstream == nil {
		return
	}
	m.upstream.WithLabelValues(strconv.Itoa(status)).Inc()
}

func normalizeLabel(route string) string {
	if route == "" {
		return "unknown"
	}
	return route
}
