package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_requests_total",
			Help: "Requests sent to the ticketing backend",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_upstream_request_duration_seconds",
			Help:    "Latency of backend requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	browseRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_browse_requests_total",
			Help: "Catalog browse requests by outcome",
		},
		[]string{"outcome"},
	)

	priceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_price_cache_lookups_total",
			Help: "Event price cache lookups",
		},
		[]string{"result"},
	)
)

func ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func BrowseServed(outcome string) {
	browseRequests.WithLabelValues(outcome).Inc()
}

func PriceCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	priceCacheLookups.WithLabelValues(result).Inc()
}
