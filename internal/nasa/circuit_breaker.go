// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package nasa

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/metrics"
	"github.com/hdm08/SpaceScope/internal/models"
)

// BreakerName labels the NASA breaker in logs and metrics.
const BreakerName = "nasa-api"

// breakerOpenTimeout is how long the circuit stays open before probing.
const breakerOpenTimeout = time.Minute

// CircuitBreakerClient wraps Client with the circuit breaker pattern.
//
// After a failed aggregation nothing is cached, so every identical request
// would go straight back upstream. The open state is the backoff that stops
// a failing NASA endpoint from being hammered.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout. Tests drive execute directly rather than waiting on the clock.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a NASA client with circuit breaker.
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 1 minute open period before probing
//   - Opens after 60% failure rate with minimum 10 requests
//   - 4xx answers other than 429 and caller cancellations are not failures
func NewCircuitBreakerClient(cfg *config.NASAConfig) *CircuitBreakerClient {
	return newCircuitBreakerClient(NewClient(cfg), breakerOpenTimeout)
}

func newCircuitBreakerClient(client *Client, openTimeout time.Duration) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(BreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", BreakerName).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err) || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: BreakerName}
}

// execute runs fn under the breaker and records the outcome.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", cbc.name).Msg("Request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-asserts the breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// IsOpenState reports whether err is a breaker rejection.
func IsOpenState(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// State returns "closed", "half-open" or "open".
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// FetchPage fetches one image library page with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchPage(ctx context.Context, req PageRequest) (*RawPage, error) {
	return castResult[RawPage](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchPage(ctx, req)
	}))
}

// APOD fetches one picture of the day with circuit breaker protection.
func (cbc *CircuitBreakerClient) APOD(ctx context.Context, date string) (*models.APOD, error) {
	return castResult[models.APOD](cbc.execute(func() (interface{}, error) {
		return cbc.client.APOD(ctx, date)
	}))
}

// APODRange fetches a date range of APOD entries with circuit breaker protection.
func (cbc *CircuitBreakerClient) APODRange(ctx context.Context, startDate, endDate string) ([]models.APOD, error) {
	out, err := castResult[[]models.APOD](cbc.execute(func() (interface{}, error) {
		entries, err := cbc.client.APODRange(ctx, startDate, endDate)
		if err != nil {
			return nil, err
		}
		return &entries, nil
	}))
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// InsightWeather fetches InSight weather with circuit breaker protection.
func (cbc *CircuitBreakerClient) InsightWeather(ctx context.Context) (models.InsightWeather, error) {
	out, err := castResult[models.InsightWeather](cbc.execute(func() (interface{}, error) {
		w, err := cbc.client.InsightWeather(ctx)
		if err != nil {
			return nil, err
		}
		return &w, nil
	}))
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// NeoFeed fetches one feed window with circuit breaker protection.
func (cbc *CircuitBreakerClient) NeoFeed(ctx context.Context, startDate, endDate string) (*models.NeoFeedResponse, error) {
	return castResult[models.NeoFeedResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.NeoFeed(ctx, startDate, endDate)
	}))
}

// NeoBrowse fetches one catalog page with circuit breaker protection.
func (cbc *CircuitBreakerClient) NeoBrowse(ctx context.Context, page, size int) (*models.NeoBrowseResponse, error) {
	return castResult[models.NeoBrowseResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.NeoBrowse(ctx, page, size)
	}))
}

// NeoLookup fetches one asteroid with circuit breaker protection.
func (cbc *CircuitBreakerClient) NeoLookup(ctx context.Context, asteroidID string) (*models.NearEarthObject, error) {
	return castResult[models.NearEarthObject](cbc.execute(func() (interface{}, error) {
		return cbc.client.NeoLookup(ctx, asteroidID)
	}))
}
