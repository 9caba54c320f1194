// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package config provides centralized configuration management for SpaceScope.

Configuration is layered with Koanf v2. Each layer overrides the previous one:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/spacescope/config.yaml)
 3. Mapped environment variables

# Sections

  - nasa: upstream credential, base URLs, request timeout, outbound quota, 429 retry policy
  - aggregator: result cap, upstream page size, NEO feed window length
  - cache: TTL per volatility class and the eager sweep interval
  - favorites: Badger-backed favorites store
  - server: HTTP listener and shutdown budget
  - security: CORS origins and inbound rate limiting
  - logging: level, format, caller

# Environment Variables

Only mapped variables are read; anything else in the environment is ignored.
See envTransformFunc for the full table. The most common ones:

  - NASA_API_KEY: api.nasa.gov key (default: DEMO_KEY)
  - HTTP_PORT: listen port (default: 4000)
  - CACHE_VOLATILE_TTL: TTL for queries touching the current year (default: 10m)
  - CACHE_HISTORICAL_TTL: TTL for past-only queries, 0 = never expire (default: 0)
  - FAVORITES_PATH: Badger directory (default: /data/favorites)
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	client := nasa.NewClient(cfg.NASA)

Config is immutable after Load and safe for concurrent reads.
*/
package config
