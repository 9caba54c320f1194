// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
served at /metrics by promhttp:

	curl http://localhost:4000/metrics

# Available Metrics

API Metrics:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Upstream (NASA) Metrics:
  - nasa_requests_total{endpoint, status_code}
  - nasa_request_duration_seconds{endpoint}
  - nasa_retries_total{endpoint}: HTTP 429 retries
  - nasa_rate_limiter_wait_seconds: time spent waiting on the outbound quota

Aggregation Metrics:
  - aggregation_duration_seconds{operation}: cold aggregations only
  - aggregation_pages_fetched{operation}: pages per aggregation (histogram)
  - aggregation_items_returned{operation}: items after filter and truncate (histogram)
  - aggregation_stops_total{reason}: empty_page, cap, total_reached, page_limit
  - aggregation_items_dropped_total{reason}: missing_date, unparsable_date
  - aggregation_errors_total{operation}
  - aggregation_shared_total{operation}: callers served by an in-flight fetch

Cache Metrics:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}
  - cache_entries{cache_type}, cache_evictions_total{cache_type}

Circuit Breaker Metrics:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}: success, failure, rejected
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Favorites Metrics:
  - favorites_operations_total{operation, result}

# Usage

	start := time.Now()
	resp, err := client.Do(req)
	metrics.RecordUpstreamRequest("search", statusCode, time.Since(start))

# Testing

Use prometheus/testutil to read collector values:

	before := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("search"))
*/
package metrics
