// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_searches_total",
			Help: "Total number of searches served, by data provenance",
		},
		[]string{"provenance"},
	)

	SearchesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_searches_failed_total",
			Help: "Total number of searches rejected or aborted",
		},
		[]string{"error_code"},
	)

	FetchFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "property_fetch_fallbacks_total",
			Help: "Total number of live API fetches that fell back to mock data",
		},
	)

	RecordsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "property_records_skipped_total",
			Help: "Total number of records dropped by the sanitizer",
		},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "property_search_duration_seconds",
			Help: "Duration of end-to-end search processing in seconds",
		},
		[]string{"provenance"},
	)
)
