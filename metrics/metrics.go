package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "sure_provider_"

var (
	// ProviderRequestsTotal counts upstream API requests by provider and outcome.
	// Cardinality: providers × ~4 statuses (success, error, rate_limited, timeout)
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "requests_total",
			Help: "Total number of HTTP requests to external data providers",
		},
		[]string{"provider", "status"},
	)

	// ProviderRetriesTotal counts retry attempts per provider.
	ProviderRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "retry_attempts_total",
			Help: "Total number of retried HTTP requests per provider",
		},
		[]string{"provider"},
	)

	// ProviderRequestDuration tracks upstream request latency per provider.
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "request_duration_seconds",
			Help: "HTTP request latency per external data provider",
		},
		[]string{"provider"},
	)

	// ProviderCacheOpsTotal counts cache lookups by provider, entity and outcome.
	// Cardinality: providers × ~4 entities × 2 outcomes (hit, miss)
	ProviderCacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_operations_total",
			Help: "Cache lookups per provider and entity, labelled hit or miss",
		},
		[]string{"provider", "entity", "outcome"},
	)
)
