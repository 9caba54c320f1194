// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"github.com/goccy/go-json"
)

// Request structs validated with go-playground/validator. Field names in
// error messages come from the query or json tag.

// apodRequest is the query for GET /apod.
type apodRequest struct {
	Date string `query:"date" validate:"omitempty,nasadate"`
}

// dateRangeRequest is the query for GET /apod/range and GET /neo/feed.
// EndDate is optional for the feed, where it defaults to StartDate.
type dateRangeRequest struct {
	StartDate string `query:"start_date" validate:"required,nasadate"`
	EndDate   string `query:"end_date" validate:"omitempty,nasadate"`
}

// neoBrowseRequest is the query for GET /neo/browse. Page is 0-based as
// in NeoWs; Size is capped at 20 like the upstream's own browse page.
type neoBrowseRequest struct {
	Page int `query:"page" validate:"gte=0,lte=10000"`
	Size int `query:"size" validate:"gte=1,lte=20"`
}

// neoLookupRequest is the path for GET /neo/lookup/{asteroidId}.
type neoLookupRequest struct {
	AsteroidID string `query:"asteroidId" validate:"required,asteroidid"`
}

// searchRequest is the query for GET /search. An empty Query selects the
// trending variant.
type searchRequest struct {
	Query     string `query:"q" validate:"max=200"`
	MediaType string `query:"media_type" validate:"omitempty,oneof=all image video audio"`
	YearStart int    `query:"year_start" validate:"gte=1900,lte=2100"`
	YearEnd   int    `query:"year_end" validate:"gte=1900,lte=2100"`
	Page      int    `query:"page" validate:"gte=1,lte=100"`
}

// userPathRequest validates the {userID} path segment.
type userPathRequest struct {
	UserID string `query:"userID" validate:"required,userid"`
	Kind   string `query:"kind" validate:"omitempty,oneof=apod media asteroid"`
}

// createFavoriteRequest is the body for POST /users/{userID}/favorites.
type createFavoriteRequest struct {
	Kind         string          `json:"kind" validate:"required,oneof=apod media asteroid"`
	ItemID       string          `json:"item_id" validate:"required,max=256"`
	Title        string          `json:"title" validate:"max=512"`
	URL          string          `json:"url" validate:"omitempty,url,max=2048"`
	ThumbnailURL string          `json:"thumbnail_url" validate:"omitempty,url,max=2048"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}
