package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("/shop", "GET", 200, 120*time.Millisecond)
	metrics.ObserveRequest("/shop", "GET", 200, 80*time.Millisecond)
	metrics.IncUpstreamError(502)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected requests=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "backend_errors_total"); err != nil {
		t.Fatalf("fetch upstream errors: %v", err)
	} else if got != 1 {
		t.Fatalf("expected errors=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *HTTPMetrics
	metrics.ObserveRequest("/shop", "GET", 200, time.Millisecond)
	metrics.IncUpstreamError(500)

	unregistered := NewHTTPMetrics(nil)
	unregistered.ObserveRequest("/shop", "GET", 200, time.Millisecond)
	unregistered.IncUpstreamError(500)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	var sum float64
	for _, metric := range mf.GetMetric() {
		sum += metric.GetCounter().GetValue()
	}
	return sum, nil
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	var sum float64
	for _, metric := range mf.GetMetric() {
		sum += metric.GetHistogram().GetSampleSum()
	}
	return sum, nil
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}
