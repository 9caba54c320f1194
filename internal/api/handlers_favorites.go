// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/hdm08/SpaceScope/internal/favorites"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/models"
)

// maxFavoriteBodyBytes bounds POST bodies; payload snapshots are small.
const maxFavoriteBodyBytes = 64 << 10

// favoritesAvailable writes a 503 and returns false when the store is off.
func (h *Handler) favoritesAvailable(w http.ResponseWriter) bool {
	if h.favorites == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Favorites are disabled", ErrFavoritesDisabled)
		return false
	}
	return true
}

// ListFavorites handles GET /users/{userID}/favorites[?kind=].
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Cache-Control", "no-store")
	if !h.favoritesAvailable(w) {
		return
	}

	req := userPathRequest{
		UserID: chi.URLParam(r, "userID"),
		Kind:   firstParam(r, "kind"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	favs, err := h.favorites.List(r.Context(), req.UserID, models.FavoriteKind(req.Kind))
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to list favorites", err)
		return
	}
	respondSuccess(w, favs, start, intPtr(len(favs)))
}

// AddFavorite handles POST /users/{userID}/favorites. Saving the same item
// twice returns the existing favorite with 200 instead of 201.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Cache-Control", "no-store")
	if !h.favoritesAvailable(w) {
		return
	}

	path := userPathRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	var body createFavoriteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFavoriteBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	fav, created, err := h.favorites.Add(r.Context(), models.Favorite{
		UserID:       path.UserID,
		Kind:         models.FavoriteKind(body.Kind),
		ItemID:       body.ItemID,
		Title:        body.Title,
		URL:          body.URL,
		ThumbnailURL: body.ThumbnailURL,
		Payload:      body.Payload,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to save favorite", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		logging.Ctx(r.Context()).Info().
			Str("user_id", path.UserID).
			Str("kind", body.Kind).
			Str("favorite_id", fav.ID).
			Msg("Favorite added")
	}
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   fav,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// DeleteFavorite handles DELETE /users/{userID}/favorites/{favoriteID}.
func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	if !h.favoritesAvailable(w) {
		return
	}

	path := userPathRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&path); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	err := h.favorites.Delete(r.Context(), path.UserID, chi.URLParam(r, "favoriteID"))
	switch {
	case errors.Is(err, favorites.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Favorite not found", nil)
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, "Failed to delete favorite", err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
