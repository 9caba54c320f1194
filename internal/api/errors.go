// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"errors"
	"net/http"

	"github.com/hdm08/SpaceScope/internal/aggregator"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/nasa"
)

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
	ErrCodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
)

// ErrFavoritesDisabled is reported when the favorites store is not configured.
var ErrFavoritesDisabled = errors.New("favorites are disabled")

// respondAggregationError maps an aggregator error to a status code.
// A request whose own context is done gets no body; the client is gone.
func respondAggregationError(w http.ResponseWriter, r *http.Request, err error) {
	if ctxErr := r.Context().Err(); ctxErr != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Client went away before the result was ready")
		return
	}

	var fe *nasa.FetchError
	switch {
	case errors.Is(err, aggregator.ErrInvalidQuery):
		respondError(w, http.StatusBadRequest, ErrCodeValidationFailed, causeMessage(err), nil)
	case nasa.IsOpenState(err):
		w.Header().Set("Retry-After", "30")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "NASA API temporarily unavailable", err)
	case errors.As(err, &fe) && fe.NotFound():
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Not found upstream", nil)
	default:
		var ae *aggregator.AggregationError
		if errors.As(err, &ae) {
			respondError(w, http.StatusBadGateway, ErrCodeExternalServiceFail, "NASA API request failed", err)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", err)
	}
}

// causeMessage strips the AggregationError prefix for client-facing text.
func causeMessage(err error) string {
	var ae *aggregator.AggregationError
	if errors.As(err, &ae) && ae.Err != nil {
		return ae.Err.Error()
	}
	return err.Error()
}
