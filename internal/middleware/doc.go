// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package middleware provides HTTP middleware components for the SpaceScope API.

Key Components:

  - RequestID: UUID-based request tracking, wired into logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - Compression: pooled gzip for JSON responses (aggregated search results
    can reach several hundred items)

All three take and return http.HandlerFunc. The chi router adapts them:

	r.Use(func(next http.Handler) http.Handler {
	    return middleware.PrometheusMetrics(next.ServeHTTP)
	})

Metrics are labeled by the chi route pattern (/api/v1/neo/lookup/{asteroidId})
rather than the raw path so that path parameters do not explode label
cardinality.
*/
package middleware
