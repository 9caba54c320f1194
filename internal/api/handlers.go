// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"time"

	"github.com/hdm08/SpaceScope/internal/aggregator"
	"github.com/hdm08/SpaceScope/internal/favorites"
)

// BreakerState reports the upstream circuit breaker state for readiness.
// nasa.CircuitBreakerClient satisfies it.
type BreakerState interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: envelope, validation and parameter helpers
//   - handlers_nasa.go: APOD, weather, NEO and search endpoints
//   - handlers_favorites.go: per-user favorites
//   - handlers_cache.go: cache stats and invalidation
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	agg       *aggregator.Aggregator
	favorites *favorites.Store
	breaker   BreakerState
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a new API handler. favs may be nil when favorites are
// disabled; breaker may be nil when the upstream is not breaker-wrapped.
//
//	handler := api.NewHandler(agg, favs, breakerClient)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(agg *aggregator.Aggregator, favs *favorites.Store, breaker BreakerState) *Handler {
	return &Handler{
		agg:       agg,
		favorites: favs,
		breaker:   breaker,
		startTime: time.Now(),
		now:       time.Now,
	}
}

func (h *Handler) currentYear() int {
	return h.now().UTC().Year()
}
