// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/spacescope/config.yaml",
	"/etc/spacescope/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DemoAPIKey is NASA's shared, heavily throttled key.
const DemoAPIKey = "DEMO_KEY"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		NASA: NASAConfig{
			APIKey:          DemoAPIKey,
			BaseURL:         "https://api.nasa.gov",
			ImagesURL:       "https://images-api.nasa.gov",
			Timeout:         15 * time.Second,
			RequestsPerHour: 1000,
			MaxRetries:      3,
			RetryBaseDelay:  1 * time.Second,
		},
		Aggregator: AggregatorConfig{
			MaxItems:       500,
			PageSize:       100,
			FeedWindowDays: 7, // NeoWs rejects longer feed ranges
		},
		Cache: CacheConfig{
			VolatileTTL:   10 * time.Minute,
			HistoricalTTL: 0, // past years and dates never change upstream
			BrowseTTL:     5 * time.Minute,
			LookupTTL:     10 * time.Minute,
			WeatherTTL:    1 * time.Hour,
			SweepInterval: 1 * time.Minute,
		},
		Favorites: FavoritesConfig{
			Enabled:    true,
			Path:       "/data/favorites",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
		},
		Server: ServerConfig{
			Port:            4000,
			Host:            "0.0.0.0",
			Timeout:         60 * time.Second, // a cold 500-item aggregation spans several upstream pages
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// NASA_API_KEY -> nasa.api_key, CACHE_VOLATILE_TTL -> cache.volatile_ttl
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ConfigFilePath returns the config file Load would read, or "" if none exists.
func ConfigFilePath() string {
	return findConfigFile()
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML already yields slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// NASA upstream
	"nasa_api_key":           "nasa.api_key",
	"nasa_base_url":          "nasa.base_url",
	"nasa_images_url":        "nasa.images_url",
	"nasa_timeout":           "nasa.timeout",
	"nasa_requests_per_hour": "nasa.requests_per_hour",
	"nasa_max_retries":       "nasa.max_retries",
	"nasa_retry_base_delay":  "nasa.retry_base_delay",

	// Aggregation
	"aggregator_max_items":        "aggregator.max_items",
	"aggregator_page_size":        "aggregator.page_size",
	"aggregator_feed_window_days": "aggregator.feed_window_days",

	// Cache
	"cache_volatile_ttl":   "cache.volatile_ttl",
	"cache_historical_ttl": "cache.historical_ttl",
	"cache_browse_ttl":     "cache.browse_ttl",
	"cache_lookup_ttl":     "cache.lookup_ttl",
	"cache_weather_ttl":    "cache.weather_ttl",
	"cache_sweep_interval": "cache.sweep_interval",

	// Favorites
	"favorites_enabled":     "favorites.enabled",
	"favorites_path":        "favorites.path",
	"favorites_in_memory":   "favorites.in_memory",
	"favorites_gc_interval": "favorites.gc_interval",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never pollute the config.
//
// Examples:
//   - NASA_API_KEY -> nasa.api_key
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile invokes callback whenever the file at path changes.
// Callers must synchronize access to any config they swap in from the callback.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
