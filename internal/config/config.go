// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file, and environment variables.
type Config struct {
	NASA       NASAConfig       `koanf:"nasa"`
	Aggregator AggregatorConfig `koanf:"aggregator"`
	Cache      CacheConfig      `koanf:"cache"`
	Favorites  FavoritesConfig  `koanf:"favorites"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// NASAConfig holds upstream connection settings.
//
// api.nasa.gov endpoints (APOD, InSight, NeoWs) take the key as an api_key
// query parameter. The image library at images-api.nasa.gov is keyless.
//
// Environment Variables:
//   - NASA_API_KEY: API key from api.nasa.gov (default: DEMO_KEY)
//   - NASA_BASE_URL: default https://api.nasa.gov
//   - NASA_IMAGES_URL: default https://images-api.nasa.gov
//   - NASA_TIMEOUT: per-request timeout, a timeout counts as a fetch failure (default: 15s)
//   - NASA_REQUESTS_PER_HOUR: outbound quota (default: 1000, the registered-key limit)
//   - NASA_MAX_RETRIES: retries after HTTP 429 (default: 3)
//   - NASA_RETRY_BASE_DELAY: first 429 backoff delay, doubled per retry (default: 1s)
type NASAConfig struct {
	APIKey          string        `koanf:"api_key"`
	BaseURL         string        `koanf:"base_url"`
	ImagesURL       string        `koanf:"images_url"`
	Timeout         time.Duration `koanf:"timeout"`
	RequestsPerHour int           `koanf:"requests_per_hour"`
	MaxRetries      int           `koanf:"max_retries"`
	RetryBaseDelay  time.Duration `koanf:"retry_base_delay"`
}

// AggregatorConfig bounds multi-page aggregation.
type AggregatorConfig struct {
	// MaxItems is the hard cap on accumulated and returned items per query.
	MaxItems int `koanf:"max_items"`

	// PageSize is requested from the image library on every page.
	PageSize int `koanf:"page_size"`

	// FeedWindowDays is the longest range NeoWs accepts in one feed call.
	FeedWindowDays int `koanf:"feed_window_days"`
}

// CacheConfig holds TTLs per volatility class. A zero TTL never expires;
// VolatileTTL must be positive.
type CacheConfig struct {
	VolatileTTL   time.Duration `koanf:"volatile_ttl"`
	HistoricalTTL time.Duration `koanf:"historical_ttl"`
	BrowseTTL     time.Duration `koanf:"browse_ttl"`
	LookupTTL     time.Duration `koanf:"lookup_ttl"`
	WeatherTTL    time.Duration `koanf:"weather_ttl"`

	// SweepInterval controls the background eviction pass. 0 disables it and
	// leaves expiry purely lazy.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// FavoritesConfig holds the favorites store settings.
//
// Environment Variables:
//   - FAVORITES_ENABLED: serve the favorites endpoints (default: true)
//   - FAVORITES_PATH: Badger directory (default: /data/favorites)
//   - FAVORITES_IN_MEMORY: keep favorites in memory only, for tests and demos
//   - FAVORITES_GC_INTERVAL: Badger value log GC period, 0 disables (default: 10m)
type FavoritesConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and inbound rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all layers. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
