package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IsolatedRegistries(t *testing.T) {
	reg1 := prometheus.NewRegistry()
	reg2 := prometheus.NewRegistry()

	m1 := NewMetrics("flightintent", reg1)
	require.NotPanics(t, func() { NewMetrics("flightintent", reg2) })

	m1.FieldsMissing.WithLabelValues("origin").Inc()
	m1.FieldsMissing.WithLabelValues("origin").Inc()
	m1.RequestsRejected.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m1.FieldsMissing.WithLabelValues("origin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m1.RequestsRejected))
}
