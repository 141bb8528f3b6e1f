// Package metrics exposes Prometheus counters for batch outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BatchMetrics holds the Prometheus metrics for normalization runs.
type BatchMetrics struct {
	RecordsTotal  *prometheus.CounterVec
	GeocodeCalls  prometheus.Counter
	GeocodeAbsent prometheus.Counter
}

// NewBatchMetrics initializes and registers the metrics against the
// given registerer; pass prometheus.DefaultRegisterer outside tests.
func NewBatchMetrics(reg prometheus.Registerer) *BatchMetrics {
	factory := promauto.With(reg)
	return &BatchMetrics{
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventscrape",
			Subsystem: "pipeline",
			Name:      "records_total",
			Help:      "Normalized records by outcome status.",
		}, []string{"status"}), // accepted, duplicate, invalid_coordinates, failed
		GeocodeCalls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "eventscrape",
			Subsystem: "geocode",
			Name:      "resolutions_total",
			Help:      "Total geocode resolutions attempted.",
		}),
		GeocodeAbsent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "eventscrape",
			Subsystem: "geocode",
			Name:      "absent_total",
			Help:      "Geocode resolutions that ended without coordinates.",
		}),
	}
}

// Record increments the outcome counter for one record.
func (m *BatchMetrics) Record(status string) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(status).Inc()
}

// RecordGeocode counts one resolution attempt and whether it ended
// without coordinates.
func (m *BatchMetrics) RecordGeocode(absent bool) {
	if m == nil {
		return
	}
	m.GeocodeCalls.Inc()
	if absent {
		m.GeocodeAbsent.Inc()
	}
}
