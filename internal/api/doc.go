// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package api provides the HTTP surface of SpaceScope: a chi router in front of
the aggregator, the favorites store and the cache admin endpoints.

Every JSON response uses the models.APIResponse envelope:

	{"status": "success", "data": ..., "metadata": {"timestamp": ..., "count": 42}}
	{"status": "error", "error": {"code": "VALIDATION_FAILED", ...}, "metadata": {...}}

Routes (all under /api/v1 unless noted):

	GET    /apod                                ?date=YYYY-MM-DD
	GET    /apod/range                          ?start_date&end_date
	GET    /weather
	GET    /neo/browse                          ?page&size
	GET    /neo/feed                            ?start_date&end_date
	GET    /neo/lookup/{asteroidId}
	GET    /search                              ?q&media_type&year_start&year_end&page
	GET    /users/{userID}/favorites            ?kind
	POST   /users/{userID}/favorites
	DELETE /users/{userID}/favorites/{favoriteID}
	GET    /cache/stats
	DELETE /cache                               ?namespace
	DELETE /cache/{key}
	GET    /health/live
	GET    /health/ready
	GET    /metrics                             (root, Prometheus exposition)

Error mapping:

	aggregator.ErrInvalidQuery, validation failure   400 VALIDATION_FAILED
	upstream 404                                     404 NOT_FOUND
	circuit breaker open                             503 SERVICE_UNAVAILABLE
	any other aggregation failure                    502 EXTERNAL_SERVICE_FAILED
*/
package api
