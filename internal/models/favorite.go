// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package models

import (
	"time"

	"github.com/goccy/go-json"
)

// FavoriteKind identifies what a favorite points at.
type FavoriteKind string

const (
	FavoriteAPOD     FavoriteKind = "apod"
	FavoriteMedia    FavoriteKind = "media"
	FavoriteAsteroid FavoriteKind = "asteroid"
)

// Valid reports whether k is a known kind.
func (k FavoriteKind) Valid() bool {
	switch k {
	case FavoriteAPOD, FavoriteMedia, FavoriteAsteroid:
		return true
	}
	return false
}

// Favorite is a user's saved APOD, library item or asteroid.
//
// ItemID is the natural key of the target: the APOD date, the library
// nasa_id or the NEO id. A user holds at most one favorite per (Kind, ItemID).
type Favorite struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Kind         FavoriteKind    `json:"kind"`
	ItemID       string          `json:"item_id"`
	Title        string          `json:"title,omitempty"`
	URL          string          `json:"url,omitempty"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
