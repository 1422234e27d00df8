package metrics

import (
	"log"
	"time"
)

// Writer records metrics for a single external data provider.
// It implements the HTTP client's status handler interface.
type Writer struct {
	providerName string
}

// NewWriter creates a Writer bound to the given provider name.
func NewWriter(providerName string) *Writer {
	return &Writer{
		providerName: providerName,
	}
}

// ProviderName returns the provider this writer records for.
func (w *Writer) ProviderName() string {
	return w.providerName
}

// OnRequest records an upstream HTTP request with its status.
func (w *Writer) OnRequest(status string) {
	ProviderRequestsTotal.WithLabelValues(w.providerName, status).Inc()
}

// OnRetry records a retried upstream HTTP request.
func (w *Writer) OnRetry() {
	ProviderRetriesTotal.WithLabelValues(w.providerName).Inc()
}

// RecordRequestDuration records the latency of an upstream request.
func (w *Writer) RecordRequestDuration(duration time.Duration) {
	ProviderRequestDuration.WithLabelValues(w.providerName).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit for the given entity kind.
func (w *Writer) RecordCacheHit(entity string) {
	ProviderCacheOpsTotal.WithLabelValues(w.providerName, entity, "hit").Inc()
}

// RecordCacheMiss records a cache miss for the given entity kind.
func (w *Writer) RecordCacheMiss(entity string) {
	ProviderCacheOpsTotal.WithLabelValues(w.providerName, entity, "miss").Inc()
	log.Printf("Metrics: %s cache miss for %s", w.providerName, entity)
}
