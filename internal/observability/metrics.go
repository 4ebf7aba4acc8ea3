package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lema_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreated counts posts written through the API.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lema_posts_created_total",
		Help: "Total number of posts created",
	})

	// PostsDeleted counts delete requests by whether a row was removed.
	PostsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lema_posts_deleted_total",
		Help: "Total number of post delete requests by outcome",
	}, []string{"deleted"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
