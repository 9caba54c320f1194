// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upstream NASA Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nasa_requests_total",
			Help: "Total number of upstream NASA API requests",
		},
		[]string{"endpoint", "status_code"}, // status_code "0" = transport failure
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nasa_request_duration_seconds",
			Help:    "Upstream NASA API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30},
		},
		[]string{"endpoint"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nasa_retries_total",
			Help: "Total number of upstream retries after HTTP 429",
		},
		[]string{"endpoint"},
	)

	UpstreamRateLimiterWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nasa_rate_limiter_wait_seconds",
			Help:    "Time spent waiting for the outbound request quota",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	// Aggregation Metrics
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of uncached aggregations in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	AggregationPagesFetched = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_pages_fetched",
			Help:    "Number of upstream pages fetched per aggregation",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50, 100},
		},
		[]string{"operation"},
	)

	AggregationItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_items_returned",
			Help:    "Number of items returned after filtering and truncation",
			Buckets: []float64{0, 10, 50, 100, 250, 500},
		},
		[]string{"operation"},
	)

	AggregationStops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_stops_total",
			Help: "Pagination stop conditions reached",
		},
		[]string{"reason"}, // "empty_page", "cap", "total_reached", "page_limit"
	)

	AggregationItemsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_items_dropped_total",
			Help: "Upstream items dropped during normalization",
		},
		[]string{"reason"},
	)

	AggregationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_errors_total",
			Help: "Total number of aborted aggregations",
		},
		[]string{"operation"},
	)

	AggregationShared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_shared_total",
			Help: "Callers served by another caller's in-flight aggregation",
		},
		[]string{"operation"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "search", "trending", "feed", "apod", ...
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Favorites Metrics
	FavoritesOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_operations_total",
			Help: "Total number of favorites store operations",
		},
		[]string{"operation", "result"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one NASA API round trip. statusCode is 0 when
// the request never produced a response.
func RecordUpstreamRequest(endpoint string, statusCode int, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordUpstreamRetry counts a retry after HTTP 429.
func RecordUpstreamRetry(endpoint string) {
	UpstreamRetries.WithLabelValues(endpoint).Inc()
}

// RecordAggregation records a completed or aborted cold aggregation.
func RecordAggregation(operation string, pages, items int, duration time.Duration, err error) {
	AggregationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	AggregationPagesFetched.WithLabelValues(operation).Observe(float64(pages))
	if err != nil {
		AggregationErrors.WithLabelValues(operation).Inc()
		return
	}
	AggregationItemsReturned.WithLabelValues(operation).Observe(float64(items))
}

// RecordAggregationStop counts the condition that ended a pagination loop.
func RecordAggregationStop(reason string) {
	AggregationStops.WithLabelValues(reason).Inc()
}

// RecordDroppedItems counts items removed during normalization.
func RecordDroppedItems(reason string, n int) {
	if n > 0 {
		AggregationItemsDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordCacheLookup records a hit or miss for the given cache namespace.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordFavoritesOperation records a favorites store call.
func RecordFavoritesOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	FavoritesOperations.WithLabelValues(operation, result).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
