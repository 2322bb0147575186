package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics follows the same promauto-constructed-gauges-and-histogram
// pattern as gloudx-ues-lite/datastore/api/api.go, scoped to the block log
// domain instead of the datastore's view/key operations.
type metrics struct {
	entries    prometheus.Gauge
	length     prometheus.Gauge
	opDuration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	return &metrics{
		entries: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dlistd_entries_total",
			Help: "Number of blocks currently held in the block log.",
		}),
		length: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dlistd_total_length_bytes",
			Help: "Sum of all block lengths currently held in the block log.",
		}),
		opDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dlistd_op_duration_seconds",
			Help:    "Duration of block log operations by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

func (m *metrics) observe(op string, start time.Time) {
	m.opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metrics) refresh(size, length int) {
	m.entries.Set(float64(size))
	m.length.Set(float64(length))
}
