package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncLogin("buyer", "success")
	m.IncLogin("buyer", "success")
	m.IncAccessDenied("role")
	m.IncOrdersCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("buyer", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccessDenied.WithLabelValues("role")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCreated))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncLogin("operator", "failure")
		m.IncCertification("success")
	})
}
