// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/validation"
)

// Cached pass-through lookups for the rest of the relay surface.

type apodKey struct {
	Date string `json:"date"`
}

// APOD returns the picture of the day for date, or today's when date is "".
func (a *Aggregator) APOD(ctx context.Context, date string) (*models.APOD, error) {
	if date != "" {
		if _, err := time.Parse(validation.DateLayout, date); err != nil {
			return nil, &AggregationError{Op: NamespaceAPOD, Err: fmt.Errorf("%w: date %q", ErrInvalidQuery, date)}
		}
	}
	keyDate := date
	if keyDate == "" {
		keyDate = a.now().UTC().Format(validation.DateLayout)
	}
	key := cache.GenerateKey(NamespaceAPOD, apodKey{Date: keyDate})

	return cached(ctx, a, NamespaceAPOD, key,
		func(ctx context.Context) (*models.APOD, time.Duration, loadStats, error) {
			apod, err := a.upstream.APOD(ctx, date)
			if err != nil {
				return nil, 0, loadStats{calls: 1}, err
			}
			return apod, a.ttl.forAPOD(date, apod.Date, a.now()), loadStats{calls: 1, items: 1}, nil
		},
		func(v *models.APOD) *models.APOD { c := *v; return &c },
	)
}

// APODRange returns every entry between startDate and endDate inclusive.
func (a *Aggregator) APODRange(ctx context.Context, startDate, endDate string) ([]models.APOD, error) {
	start, err := time.Parse(validation.DateLayout, startDate)
	if err != nil {
		return nil, &AggregationError{Op: NamespaceAPODRange, Err: fmt.Errorf("%w: start date %q", ErrInvalidQuery, startDate)}
	}
	end, err := time.Parse(validation.DateLayout, endDate)
	if err != nil {
		return nil, &AggregationError{Op: NamespaceAPODRange, Err: fmt.Errorf("%w: end date %q", ErrInvalidQuery, endDate)}
	}
	if end.Before(start) {
		return nil, &AggregationError{Op: NamespaceAPODRange, Err: fmt.Errorf("%w: end date before start date", ErrInvalidQuery)}
	}
	key := cache.GenerateKey(NamespaceAPODRange, feedKey{StartDate: startDate, EndDate: endDate})

	return cached(ctx, a, NamespaceAPODRange, key,
		func(ctx context.Context) ([]models.APOD, time.Duration, loadStats, error) {
			list, err := a.upstream.APODRange(ctx, startDate, endDate)
			if err != nil {
				return nil, 0, loadStats{calls: 1}, err
			}
			return list, a.ttl.forDates(endDate, a.now()), loadStats{calls: 1, items: len(list)}, nil
		},
		func(v []models.APOD) []models.APOD { return append([]models.APOD(nil), v...) },
	)
}

// Weather returns the latest InSight sols with invalid temperature
// readings removed.
func (a *Aggregator) Weather(ctx context.Context) (models.InsightWeather, error) {
	key := NamespaceWeather + ":latest"

	return cached(ctx, a, NamespaceWeather, key,
		func(ctx context.Context) (models.InsightWeather, time.Duration, loadStats, error) {
			raw, err := a.upstream.InsightWeather(ctx)
			if err != nil {
				return nil, 0, loadStats{calls: 1}, err
			}
			valid, err := raw.ValidSols()
			if err != nil {
				return nil, 0, loadStats{calls: 1}, err
			}
			return valid, a.ttl.weather, loadStats{calls: 1, items: len(valid)}, nil
		},
		func(v models.InsightWeather) models.InsightWeather {
			out := make(models.InsightWeather, len(v))
			for k, raw := range v {
				out[k] = raw
			}
			return out
		},
	)
}

type browseKey struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// NeoBrowse returns one 0-based page of the asteroid catalog.
func (a *Aggregator) NeoBrowse(ctx context.Context, page, size int) (*models.NeoBrowseResponse, error) {
	if page < 0 || size < 1 {
		return nil, &AggregationError{Op: NamespaceNeoBrowse, Err: fmt.Errorf("%w: page %d size %d", ErrInvalidQuery, page, size)}
	}
	key := cache.GenerateKey(NamespaceNeoBrowse, browseKey{Page: page, Size: size})

	return cached(ctx, a, NamespaceNeoBrowse, key,
		func(ctx context.Context) (*models.NeoBrowseResponse, time.Duration, loadStats, error) {
			resp, err := a.upstream.NeoBrowse(ctx, page, size)
			if err != nil {
				return nil, 0, loadStats{calls: 1}, err
			}
			return resp, a.ttl.browse, loadStats{calls: 1, items: len(resp.NearEarthObjects)}, nil
		},
		func(v *models.NeoBrowseResponse) *models.NeoBrowseResponse {
			c := *v
			c.NearEarthObjects = append([]models.NearEarthObject(nil), v.NearEarthObjects...)
			return &c
		},
	)
}

// NeoLookup returns a single asteroid by id.
func (a *Aggregator) NeoLookup(ctx context.Context, asteroidID string) (*models.NearEarthObject, error) {
	if asteroidID == "" {
		return nil, &AggregationError{Op: NamespaceNeoLookup, Err: fmt.Errorf("%w: empty asteroid id", ErrInvalidQuery)}
	}
	key := NamespaceNeoLookup + ":" + asteroidID

	return cached(ctx, a, NamespaceNeoLookup, key,
		func(ctx context.Context) (*models.NearEarthObject, time.Duration, loadStats, error) {
			neo, err := a.upstream.NeoLookup(ctx, asteroidID)
			if err != nil {
				return nil, 0, loadStats{calls: 1}, err
			}
			return neo, a.ttl.lookup, loadStats{calls: 1, items: 1}, nil
		},
		func(v *models.NearEarthObject) *models.NearEarthObject {
			c := *v
			c.CloseApproachData = append([]models.CloseApproach(nil), v.CloseApproachData...)
			return &c
		},
	)
}
