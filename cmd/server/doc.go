// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Command server runs the SpaceScope backend: a JSON API over NASA's open data
services that merges paginated results, caches them by volatility and keeps
per-user favorites.

# Process Layout

	RootSupervisor ("spacescope")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── cache-sweeper
	│   └── favorites-gc (if FAVORITES_ENABLED)
	└── APISupervisor ("api-layer")
	    └── http-server

Startup order:

 1. Configuration: koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. NASA client behind a gobreaker circuit breaker
 4. Result cache and aggregator
 5. Favorites store (BadgerDB) when enabled
 6. Chi router and HTTP server
 7. Supervisor tree

# Configuration

The most used variables:

	NASA_API_KEY            api.nasa.gov key (DEMO_KEY if unset)
	HTTP_PORT               listen port (default 4000)
	FAVORITES_PATH          Badger directory
	CACHE_VOLATILE_TTL      TTL for today's APOD and near-term feeds
	LOG_LEVEL               trace..error

A config file (CONFIG_PATH or ./config.yaml) is watched; logging changes apply
without a restart.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
SHUTDOWN_TIMEOUT, then the favorites store is closed.
*/
package main
