// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package models defines the data structures shared across SpaceScope.

Model Categories:

1. API Envelope:
  - APIResponse, APIError, Metadata: standard wrapper for every endpoint

2. NASA Image and Video Library (images-api.nasa.gov):
  - ImageSearchResponse: one page of /search results
  - MediaItem: upstream record, kept in wire shape so clients see the familiar
    data[0] / links[] layout
  - ResultItem: MediaItem plus the creation time and media type derived during
    normalization

3. NeoWs (api.nasa.gov/neo/rest/v1):
  - NeoFeedResponse, NeoBrowseResponse, NearEarthObject, CloseApproach
  - GroupedItems: a merged multi-window feed keyed by the upstream date keys

4. APOD and InSight:
  - APOD: one Astronomy Picture of the Day
  - InsightWeather: per-sol records keyed by sol number

5. Favorites:
  - Favorite, FavoriteKind

Upstream models use explicit optional fields (pointers or empty values) and do
no validation of their own; the aggregator owns every sanity check.
*/
package models
