package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wishlist",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	versionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wishlist",
			Name:      "snapshot_version_conflicts_total",
			Help:      "Snapshot writes rejected by the version check.",
		},
	)

	writeRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wishlist",
			Name:      "write_retries_total",
			Help:      "Conflict retries by service operation.",
		},
		[]string{"operation"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, versionConflicts, writeRetries)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncVersionConflict counts a rejected conditional write.
func IncVersionConflict() {
	versionConflicts.Inc()
}

// IncWriteRetry counts one retry of an operation's read-modify-write cycle.
func IncWriteRetry(operation string) {
	writeRetries.WithLabelValues(operation).Inc()
}
