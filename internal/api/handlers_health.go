// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"net/http"
	"time"

	"github.com/hdm08/SpaceScope/internal/models"
)

// breakerOpen is the BreakerState value that fails readiness.
const breakerOpen = "open"

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 while the NASA circuit breaker is open: every upstream call
// would be rejected, so traffic is better sent to another replica.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	breaker := "disabled"
	if h.breaker != nil {
		breaker = h.breaker.State()
	}

	statusCode := http.StatusOK
	status := "ready"
	if breaker == breakerOpen {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":            status,
			"circuit_breaker":   breaker,
			"cache_entries":     h.agg.Store().Len(),
			"favorites_enabled": h.favorites != nil,
			"uptime":            time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
