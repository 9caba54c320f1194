// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"fmt"
	"strings"

	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/models"
)

// Key namespaces. The cache labels its metrics by namespace.
const (
	NamespaceSearch    = "search"
	NamespaceTrending  = "trending"
	NamespaceNeoFeed   = "neo_feed"
	NamespaceNeoBrowse = "neo_browse"
	NamespaceNeoLookup = "neo_lookup"
	NamespaceAPOD      = "apod"
	NamespaceAPODRange = "apod_range"
	NamespaceWeather   = "weather"
)

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	Start int
	End   int
}

// Contains reports whether year lies in the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Query describes one image library aggregation. An empty Term is the
// trending variant. MediaType "" means unrestricted. Page is the 1-based
// upstream cursor pagination starts from.
type Query struct {
	Term      string
	MediaType string
	Years     YearRange
	Page      int
}

// Trending reports whether q is the trending variant.
func (q Query) Trending() bool { return q.Term == "" }

// NormalizeTerm trims, case-folds and collapses inner whitespace.
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// ParseMediaType maps user input to a media filter. "" and "all" mean
// unrestricted.
func ParseMediaType(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "all":
		return "", nil
	case models.MediaTypeImage, models.MediaTypeVideo, models.MediaTypeAudio:
		return v, nil
	default:
		return "", fmt.Errorf("%w: unknown media type %q", ErrInvalidQuery, s)
	}
}

// normalize returns the canonical form of q, or ErrInvalidQuery.
func (q Query) normalize() (Query, error) {
	mt, err := ParseMediaType(q.MediaType)
	if err != nil {
		return Query{}, err
	}
	if q.Years.Start > q.Years.End {
		return Query{}, fmt.Errorf("%w: year range %d-%d is inverted", ErrInvalidQuery, q.Years.Start, q.Years.End)
	}
	out := Query{
		Term:      NormalizeTerm(q.Term),
		MediaType: mt,
		Years:     q.Years,
		Page:      q.Page,
	}
	if out.Page < 1 {
		out.Page = 1
	}
	return out, nil
}

type queryKey struct {
	Term      string `json:"term,omitempty"`
	MediaType string `json:"media_type"`
	YearStart int    `json:"year_start"`
	YearEnd   int    `json:"year_end"`
	Page      int    `json:"page"`
}

// key is a pure function of the normalized query. Trending queries live in
// their own namespace.
func (q Query) key() string {
	ns := NamespaceSearch
	if q.Trending() {
		ns = NamespaceTrending
	}
	return cache.GenerateKey(ns, queryKey{
		Term:      q.Term,
		MediaType: q.MediaType,
		YearStart: q.Years.Start,
		YearEnd:   q.Years.End,
		Page:      q.Page,
	})
}

// SearchKey returns the cache key Search would use, or "" for an invalid query.
func SearchKey(q Query) string {
	n, err := q.normalize()
	if err != nil {
		return ""
	}
	return n.key()
}
