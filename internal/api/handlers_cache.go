// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/logging"
)

// cacheStatsResponse is the payload of GET /cache/stats.
type cacheStatsResponse struct {
	Stats   cache.Stats       `json:"stats"`
	HitRate float64           `json:"hit_rate"`
	Entries []cache.EntryInfo `json:"entries"`
}

// CacheStats handles GET /cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Cache-Control", "no-store")

	store := h.agg.Store()
	stats := store.GetStats()
	respondSuccess(w, cacheStatsResponse{
		Stats:   stats,
		HitRate: stats.HitRate(),
		Entries: store.Entries(),
	}, start, nil)
}

// InvalidateCache handles DELETE /cache. With ?namespace=search only that
// namespace is cleared.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Cache-Control", "no-store")

	var removed int
	ns := firstParam(r, "namespace")
	if ns != "" {
		removed = h.agg.Store().InvalidatePrefix(ns + ":")
	} else {
		removed = h.agg.Store().InvalidateAll()
	}

	logging.Ctx(r.Context()).Info().
		Str("namespace", sanitizeLogValue(ns)).
		Int("removed", removed).
		Msg("Cache invalidated")
	respondSuccess(w, map[string]int{"removed": removed}, start, nil)
}

// InvalidateCacheKey handles DELETE /cache/{key}.
func (h *Handler) InvalidateCacheKey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Cache-Control", "no-store")

	key := chi.URLParam(r, "key")
	if !h.agg.Store().Invalidate(key) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Cache key not found", nil)
		return
	}
	respondSuccess(w, map[string]int{"removed": 1}, start, nil)
}
