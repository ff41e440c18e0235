// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweteroo_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tweteroo_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// MongoCommandDuration is fed by the driver command monitor.
	MongoCommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tweteroo_mongo_command_duration_seconds",
		Help:    "MongoDB command latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"command", "outcome"})

	// AvatarCacheLookups counts avatar cache results: hit, miss, error.
	AvatarCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweteroo_avatar_cache_lookups_total",
		Help: "Avatar cache lookups by result",
	}, []string{"result"})

	// DanglingTweets counts listed tweets whose username matched no user.
	DanglingTweets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tweteroo_dangling_tweets_total",
		Help: "Listed tweets whose author no longer resolves to a user",
	})
)

// ObserveMongoCommand records the latency of one driver command.
func ObserveMongoCommand(command, outcome string, d time.Duration) {
	MongoCommandDuration.WithLabelValues(command, outcome).Observe(d.Seconds())
}
