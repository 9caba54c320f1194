// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hdm08/SpaceScope/internal/logging"
)

// Sweeper drops expired entries and reports how many went. *cache.Store
// satisfies it.
type Sweeper interface {
	Sweep() int
}

// GarbageCollector reclaims on-disk space. *favorites.Store satisfies it.
type GarbageCollector interface {
	RunGC() error
}

// TickerService calls a task every interval until its context is canceled.
// A task error is logged and the loop continues; the next tick retries.
type TickerService struct {
	name     string
	interval time.Duration
	task     func() error
	logger   zerolog.Logger
}

// NewCacheSweepService sweeps the response cache every interval.
func NewCacheSweepService(store Sweeper, interval time.Duration) *TickerService {
	logger := logging.WithComponent("cache-sweeper")
	return &TickerService{
		name:     "cache-sweeper",
		interval: interval,
		logger:   logger,
		task: func() error {
			if n := store.Sweep(); n > 0 {
				logger.Debug().Int("removed", n).Msg("Swept expired cache entries")
			}
			return nil
		},
	}
}

// NewFavoritesGCService runs value log GC on the favorites store every
// interval.
func NewFavoritesGCService(gc GarbageCollector, interval time.Duration) *TickerService {
	return &TickerService{
		name:     "favorites-gc",
		interval: interval,
		logger:   logging.WithComponent("favorites-gc"),
		task:     gc.RunGC,
	}
}

// Serve implements suture.Service. A non-positive interval disables the task;
// Serve then only waits for shutdown.
func (s *TickerService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.task(); err != nil {
				s.logger.Warn().Err(err).Msg("Maintenance task failed")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *TickerService) String() string {
	return s.name
}
