// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LinksCreated counts successfully created short links.
	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khmerlink_links_created_total",
		Help: "Total number of short links created.",
	})

	// Redirects counts served redirects by outcome.
	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khmerlink_redirects_total",
		Help: "Total number of redirect requests by outcome.",
	}, []string{"outcome"})

	// CacheHits counts resolves answered from the cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khmerlink_cache_hits_total",
		Help: "Total number of resolve cache hits.",
	})

	// CacheMisses counts resolves that fell through to the store.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khmerlink_cache_misses_total",
		Help: "Total number of resolve cache misses.",
	})

	// RequestDuration observes request latency per route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "khmerlink_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// RedirectOutcome labels for the Redirects counter.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)
