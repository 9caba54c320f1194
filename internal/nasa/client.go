// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package nasa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/metrics"
)

// maxErrorBodySize limits how much of an error body is read for diagnostics.
const maxErrorBodySize = 4 * 1024

// maxLimiterBurst caps the token bucket burst regardless of quota.
const maxLimiterBurst = 10

// Endpoint labels used in errors, logs and metrics.
const (
	EndpointSearch    = "search"
	EndpointAPOD      = "apod"
	EndpointWeather   = "insight_weather"
	EndpointNeoFeed   = "neo_feed"
	EndpointNeoBrowse = "neo_browse"
	EndpointNeoLookup = "neo_lookup"
)

// Client handles communication with the NASA HTTP APIs.
//
// Thread Safety: Safe for concurrent use. The limiter is shared, each call
// builds its own request.
type Client struct {
	baseURL        string
	imagesURL      string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	timeout        time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a NASA client from configuration.
func NewClient(cfg *config.NASAConfig) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		imagesURL:      strings.TrimRight(cfg.ImagesURL, "/"),
		apiKey:         cfg.APIKey,
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        newQuotaLimiter(cfg.RequestsPerHour),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// newQuotaLimiter spreads an hourly quota evenly with a small burst.
// A non-positive quota disables limiting.
func newQuotaLimiter(perHour int) *rate.Limiter {
	if perHour <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := perHour
	if burst > maxLimiterBurst {
		burst = maxLimiterBurst
	}
	return rate.NewLimiter(rate.Limit(float64(perHour)/3600), burst)
}

// doRequestWithRateLimit performs a GET with automatic HTTP 429 handling.
// Backoff doubles from retryBaseDelay; a Retry-After header in seconds wins.
// The context is used for cancellation during backoff waits.
func (c *Client) doRequestWithRateLimit(ctx context.Context, endpoint, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.RecordUpstreamRequest(endpoint, 0, time.Since(start))
			return nil, err
		}
		metrics.RecordUpstreamRequest(endpoint, resp.StatusCode, time.Since(start))

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, &FetchError{
				Endpoint:   endpoint,
				StatusCode: http.StatusTooManyRequests,
				Err:        fmt.Errorf("%w after %d retries", ErrRateLimited, c.maxRetries),
			}
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		metrics.RecordUpstreamRetry(endpoint)
		logging.Ctx(ctx).Warn().
			Str("endpoint", endpoint).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("NASA rate limited, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// getJSON fetches reqURL and decodes a 2xx body into out. keyed marks
// api.nasa.gov calls, which carry the api_key and draw from the quota.
func (c *Client) getJSON(ctx context.Context, endpoint, base, path string, params url.Values, keyed bool, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	if keyed {
		params.Set("api_key", c.apiKey)
	}
	reqURL := base + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if keyed {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("quota wait: %w", err)}
		}
		metrics.UpstreamRateLimiterWait.Observe(time.Since(waitStart).Seconds())
	}

	logging.Ctx(ctx).Debug().
		Str("endpoint", endpoint).
		Str("url", logging.RedactURL(reqURL)).
		Msg("NASA request")

	resp, err := c.doRequestWithRateLimit(ctx, endpoint, reqURL)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return fe
		}
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodyForError(resp.Body)
		return &FetchError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A deadline that fires mid-body surfaces as a read error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: ctxErr}
		}
		return &FetchError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %v", ErrMalformedBody, err),
		}
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return strings.TrimSpace(string(body))
}
