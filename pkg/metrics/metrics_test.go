package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "scheduling-test")

	m.ObserveReservation("MEASUREMENT", "created")
	m.ObserveReservation("MEASUREMENT", "conflict")
	m.ObserveReservation("MEASUREMENT", "conflict")
	m.ObserveQuery("insert_appointment", errors.New("boom"), 0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("MEASUREMENT", "created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("MEASUREMENT", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("insert_appointment", "error")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", "200", 0.1)
		m.ObserveReservation("CONSULTATION", "created")
		m.ObserveTransition("CONFIRMED", "success")
		m.SetPoolStats(1, 1, 0)
		m.ObserveNotification("appointment.scheduled", nil)
	})
}
