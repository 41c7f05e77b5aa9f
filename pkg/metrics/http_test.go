package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/products", 200, 30*time.Millisecond)
	m.Observe("GET", "/api/products", 200, 10*time.Millisecond)
	m.Observe("POST", "", 404, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	counter := byName["http_requests_total"]
	require.NotNil(t, counter)

	var productHits float64
	var unmatched bool
	for _, metric := range counter.GetMetric() {
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		if labels["route"] == "/api/products" {
			productHits = metric.GetCounter().GetValue()
		}
		if labels["route"] == "unmatched" {
			unmatched = true
		}
	}
	assert.Equal(t, float64(2), productHits)
	assert.True(t, unmatched)

	hist := byName["http_request_duration_seconds"]
	require.NotNil(t, hist)
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/", 200, time.Millisecond)

	m = NewHTTPMetrics(nil)
	m.Observe("GET", "/", 200, time.Millisecond)
}
