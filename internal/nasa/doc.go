// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package nasa is the upstream relay: a stateless HTTP client for the NASA
public APIs that SpaceScope proxies.

Endpoints:
  - images-api.nasa.gov/search: Image and Video Library (keyless, paginated)
  - api.nasa.gov/planetary/apod: Astronomy Picture of the Day
  - api.nasa.gov/insight_weather/: Mars InSight lander weather
  - api.nasa.gov/neo/rest/v1/{feed,neo/browse,neo/{id}}: NeoWs

Client Features:
  - api_key injected on every api.nasa.gov request, redacted in logs
  - Outbound token bucket (golang.org/x/time/rate) sized to the hourly key quota
  - Automatic HTTP 429 handling with exponential backoff and Retry-After
  - Per-request timeout; a timeout is a fetch failure
  - JSON decoding with goccy/go-json into the loosely-typed models package

Every failure is returned as a *FetchError carrying the endpoint and, when
the server answered, the HTTP status. Callers use errors.As to inspect it.

CircuitBreakerClient wraps Client with sony/gobreaker so a failing upstream
is not hammered by repeated cache misses. Both Client and
CircuitBreakerClient implement FetchPage, the single-page contract the
aggregator paginates over.
*/
package nasa
