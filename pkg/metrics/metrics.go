// Package metrics holds the Prometheus collectors shared across packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// StorageQueryDuration observes document store query latency.
var StorageQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Namespace: "sentiment",
	Subsystem: "storage",
	Name:      "query_duration_seconds",
	Help:      "Latency of document store queries.",
	Buckets:   DefaultBuckets,
}, []string{"driver", "operation", "outcome"})
