// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hdm08/SpaceScope/internal/logging"
)

// maxAggregatedItems is the upper bound accepted for aggregator.max_items.
// The image library stops serving results past page 100 anyway.
const maxAggregatedItems = 10000

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateNASA,
		c.validateAggregator,
		c.validateCache,
		c.validateFavorites,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// UsingDemoKey reports whether the shared DEMO_KEY credential is in use.
func (c *Config) UsingDemoKey() bool {
	return c.NASA.APIKey == DemoAPIKey
}

func (c *Config) validateNASA() error {
	if strings.TrimSpace(c.NASA.APIKey) == "" {
		return fmt.Errorf("NASA_API_KEY must not be empty (use %s for anonymous access)", DemoAPIKey)
	}
	if err := checkBaseURL(c.NASA.BaseURL); err != nil {
		return fmt.Errorf("NASA_BASE_URL is invalid: %w", err)
	}
	if err := checkBaseURL(c.NASA.ImagesURL); err != nil {
		return fmt.Errorf("NASA_IMAGES_URL is invalid: %w", err)
	}
	if c.NASA.Timeout <= 0 {
		return fmt.Errorf("NASA_TIMEOUT must be positive, got %v", c.NASA.Timeout)
	}
	if c.NASA.RequestsPerHour < 1 {
		return fmt.Errorf("NASA_REQUESTS_PER_HOUR must be at least 1, got %d", c.NASA.RequestsPerHour)
	}
	if c.NASA.MaxRetries < 0 {
		return fmt.Errorf("NASA_MAX_RETRIES must not be negative, got %d", c.NASA.MaxRetries)
	}
	if c.NASA.MaxRetries > 0 && c.NASA.RetryBaseDelay <= 0 {
		return fmt.Errorf("NASA_RETRY_BASE_DELAY must be positive when retries are enabled")
	}
	return nil
}

func (c *Config) validateAggregator() error {
	a := c.Aggregator
	if a.MaxItems < 1 || a.MaxItems > maxAggregatedItems {
		return fmt.Errorf("AGGREGATOR_MAX_ITEMS must be between 1 and %d, got %d", maxAggregatedItems, a.MaxItems)
	}
	if a.PageSize < 1 || a.PageSize > a.MaxItems {
		return fmt.Errorf("AGGREGATOR_PAGE_SIZE must be between 1 and AGGREGATOR_MAX_ITEMS (%d), got %d", a.MaxItems, a.PageSize)
	}
	if a.FeedWindowDays < 1 || a.FeedWindowDays > 7 {
		return fmt.Errorf("AGGREGATOR_FEED_WINDOW_DAYS must be between 1 and 7, got %d", a.FeedWindowDays)
	}
	return nil
}

// validateCache rejects negative TTLs. Zero means no expiry, which is never
// right for results that can still change, so the volatile TTL must be set.
func (c *Config) validateCache() error {
	if c.Cache.VolatileTTL <= 0 {
		return fmt.Errorf("CACHE_VOLATILE_TTL must be positive, got %s", c.Cache.VolatileTTL)
	}
	ttls := map[string]int64{
		"CACHE_VOLATILE_TTL":   int64(c.Cache.VolatileTTL),
		"CACHE_HISTORICAL_TTL": int64(c.Cache.HistoricalTTL),
		"CACHE_BROWSE_TTL":     int64(c.Cache.BrowseTTL),
		"CACHE_LOOKUP_TTL":     int64(c.Cache.LookupTTL),
		"CACHE_WEATHER_TTL":    int64(c.Cache.WeatherTTL),
		"CACHE_SWEEP_INTERVAL": int64(c.Cache.SweepInterval),
	}
	for name, v := range ttls {
		if v < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

func (c *Config) validateFavorites() error {
	if c.Favorites.Enabled && !c.Favorites.InMemory && c.Favorites.Path == "" {
		return fmt.Errorf("FAVORITES_PATH is required when favorites are enabled on disk")
	}
	if c.Favorites.GCInterval < 0 {
		return fmt.Errorf("FAVORITES_GC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must contain at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// checkBaseURL accepts an absolute http(s) URL with no path beyond "/" and no
// query. Endpoint paths are appended by the client.
func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	case u.Host == "":
		return errors.New("host is required")
	case u.Path != "" && u.Path != "/":
		return fmt.Errorf("unexpected path %q", u.Path)
	case u.RawQuery != "":
		return errors.New("query parameters are not allowed")
	}
	return nil
}
