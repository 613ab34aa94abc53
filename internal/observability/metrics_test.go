package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsInitialization(t *testing.T) {
	assert.NotNil(t, APIRequestDuration)
	assert.NotNil(t, APIRequestsTotal)
	assert.NotNil(t, APITransportErrorsTotal)
	assert.NotNil(t, ServerRequestDuration)
	assert.NotNil(t, ServerRequestsTotal)
	assert.NotNil(t, RealtimeConnectionsActive)
}

func TestAPIRequestsTotal_CountsPerOperationAndStatus(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("metrics.test_op", "200")
	before := testutil.ToFloat64(counter)

	counter.Inc()
	counter.Inc()

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestAPITransportErrorsTotal_CountsPerOperation(t *testing.T) {
	counter := APITransportErrorsTotal.WithLabelValues("metrics.test_op")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRealtimeConnectionsActive_TracksSubscriptions(t *testing.T) {
	gauge := RealtimeConnectionsActive.WithLabelValues("metrics-test-room")

	gauge.Inc()
	gauge.Inc()
	gauge.Dec()

	assert.Equal(t, float64(1), testutil.ToFloat64(gauge))
}

func TestHistograms_AcceptObservations(t *testing.T) {
	assert.NotPanics(t, func() {
		APIRequestDuration.WithLabelValues("metrics.test_op", "200").Observe(0.05)
		ServerRequestDuration.WithLabelValues("GET", "/healthz", "200").Observe(0.001)
	})
}

func TestMetricTypes(t *testing.T) {
	var c prometheus.Collector

	c = APIRequestDuration
	assert.NotNil(t, c)
	c = APIRequestsTotal
	assert.NotNil(t, c)
	c = RealtimeConnectionsActive
	assert.NotNil(t, c)
}
