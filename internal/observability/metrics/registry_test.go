package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, c.Write(&pb))
	return pb.GetCounter().GetValue()
}

func TestRecordHTTPRequestCountsByLabels(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/articles/:id", "200")
	before := counterValue(t, counter)

	RecordHTTPRequest("GET", "/api/articles/:id", "200", 25*time.Millisecond, 128, 512)

	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestRecordHTTPRequestObservesSizes(t *testing.T) {
	// Size histograms get a sample only when the body is non-empty.
	before := testutil.CollectAndCount(HTTPRequestSize)

	RecordHTTPRequest("POST", "/api/articles/generate", "201", time.Millisecond, 0, 0)
	assert.Equal(t, before, testutil.CollectAndCount(HTTPRequestSize),
		"zero-length request must not create a size series")

	RecordHTTPRequest("POST", "/api/articles/generate", "201", time.Millisecond, 64, 256)
	assert.Greater(t, testutil.CollectAndCount(HTTPRequestSize), 0)
}

func TestActiveConnectionsGauge(t *testing.T) {
	base := testutil.ToFloat64(ActiveConnections)

	ActiveConnections.Inc()
	assert.Equal(t, base+1, testutil.ToFloat64(ActiveConnections))

	ActiveConnections.Dec()
	assert.Equal(t, base, testutil.ToFloat64(ActiveConnections))
}
