// Package metrics holds the Prometheus collectors of the server.
// Collectors register with the default registry and are exposed by the operations HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CandidateCacheHits counts candidate queries answered from the result cache.
	CandidateCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sympathy_candidate_cache_hits_total",
		Help: "Candidate queries answered from the result cache.",
	})
	// CandidateCacheMisses counts candidate queries that reached the profile store.
	CandidateCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sympathy_candidate_cache_misses_total",
		Help: "Candidate queries that missed the result cache.",
	})

	// Likes counts like requests by result: recorded, mutual_match or the rejection kind.
	Likes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sympathy_likes_total",
			Help: "Like requests by result.",
		},
		[]string{"result"},
	)
	// NotificationFailures counts mutual matches whose notification failed.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sympathy_match_notification_failures_total",
		Help: "Mutual matches recorded with a failed notification.",
	})

	// GRPCRequests counts finished unary calls by method and status code.
	GRPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sympathy_grpc_requests_total",
			Help: "Finished gRPC calls by method and status code.",
		},
		[]string{"method", "code"},
	)
	// GRPCDuration observes unary call latency.
	GRPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sympathy_grpc_request_duration_seconds",
			Help:    "gRPC call duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
