// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hdm08/SpaceScope/internal/aggregator"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/models"
)

// Earliest year the image library search defaults to.
const defaultSearchYearStart = 1960

// APOD handles GET /apod. Without a date it returns today's picture.
func (h *Handler) APOD(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := apodRequest{Date: firstParam(r, "date")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	apod, err := h.agg.APOD(r.Context(), req.Date)
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}
	respondSuccess(w, apod, start, nil)
}

// APODRange handles GET /apod/range. Both snake_case and the older
// camelCase parameter names are accepted.
func (h *Handler) APODRange(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := dateRangeRequest{
		StartDate: firstParam(r, "start_date", "startDate"),
		EndDate:   firstParam(r, "end_date", "endDate"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}

	list, err := h.agg.APODRange(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}
	respondSuccess(w, list, start, intPtr(len(list)))
}

// Weather handles GET /weather: the latest InSight sols with valid
// temperature readings.
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	weather, err := h.agg.Weather(r.Context())
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}
	respondSuccess(w, weather, start, nil)
}

// NeoBrowse handles GET /neo/browse.
func (h *Handler) NeoBrowse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	page, ok := getIntParam(r, "page", 0)
	if !ok {
		intParamError(w, "page")
		return
	}
	size, ok := getIntParam(r, "size", 20)
	if !ok {
		intParamError(w, "size")
		return
	}
	req := neoBrowseRequest{Page: page, Size: size}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	resp, err := h.agg.NeoBrowse(r.Context(), req.Page, req.Size)
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}
	respondSuccess(w, resp, start, intPtr(len(resp.NearEarthObjects)))
}

// NeoFeed handles GET /neo/feed. SD and ED are the relay's original
// parameter names.
func (h *Handler) NeoFeed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := dateRangeRequest{
		StartDate: firstParam(r, "start_date", "startDate", "SD"),
		EndDate:   firstParam(r, "end_date", "endDate", "ED"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	grouped, err := h.agg.Feed(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}
	respondSuccess(w, grouped, start, intPtr(grouped.ElementCount))
}

// NeoLookup handles GET /neo/lookup/{asteroidId}.
func (h *Handler) NeoLookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := neoLookupRequest{AsteroidID: chi.URLParam(r, "asteroidId")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	neo, err := h.agg.NeoLookup(r.Context(), req.AsteroidID)
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}
	respondSuccess(w, neo, start, nil)
}

// Search handles GET /search. A blank q returns the trending feed, which
// defaults to last year and this year; a search defaults to 1960 onward.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	term := aggregator.NormalizeTerm(r.URL.Query().Get("q"))
	thisYear := h.currentYear()
	defaultStart := defaultSearchYearStart
	if term == "" {
		defaultStart = thisYear - 1
	}

	yearStart, ok := getIntParam(r, "year_start", defaultStart)
	if !ok {
		intParamError(w, "year_start")
		return
	}
	yearEnd, ok := getIntParam(r, "year_end", thisYear)
	if !ok {
		intParamError(w, "year_end")
		return
	}
	page, ok := getIntParam(r, "page", 1)
	if !ok {
		intParamError(w, "page")
		return
	}

	req := searchRequest{
		Query:     term,
		MediaType: strings.ToLower(firstParam(r, "media_type", "mediaType")),
		YearStart: yearStart,
		YearEnd:   yearEnd,
		Page:      page,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}

	years := aggregator.YearRange{Start: req.YearStart, End: req.YearEnd}
	q := aggregator.Query{Term: req.Query, MediaType: req.MediaType, Years: years, Page: req.Page}
	wasCached := h.agg.Store().IsValid(aggregator.SearchKey(q))

	// A blank q with a media filter stays on Search, which applies the
	// filter inside the trending namespace.
	var items []models.ResultItem
	var err error
	if req.Query == "" && (req.MediaType == "" || req.MediaType == "all") {
		items, err = h.agg.Trending(r.Context(), years, req.Page)
	} else {
		items, err = h.agg.Search(r.Context(), req.Query, req.MediaType, years, req.Page)
	}
	if err != nil {
		respondAggregationError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("q", sanitizeLogValue(req.Query)).
		Int("items", len(items)).
		Bool("cached", wasCached).
		Msg("Search served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   items,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      wasCached,
			Count:       intPtr(len(items)),
		},
	})
}
