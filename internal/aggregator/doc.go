// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package aggregator is SpaceScope's result-aggregation-and-cache layer.

For an image library query it:
 1. derives a deterministic cache key from the normalized query
 2. returns the cached result when one is valid, with no upstream I/O
 3. otherwise walks upstream pages from the query's cursor until a page
    comes back empty, the item cap is reached, or the reported total is
    covered
 4. drops items without a usable creation date, applies the media type and
    year predicates, sorts newest first (stable) and truncates to the cap
 5. stores the result under the key with a TTL picked by volatility class

Any page failure aborts the whole fetch: nothing partial is returned or
cached, and other keys are untouched. Pages within one fetch are strictly
sequential. Concurrent callers for the same key share one pagination via
golang.org/x/sync/singleflight.

The other relay endpoints (APOD, InSight weather, NeoWs feed/browse/lookup)
go through the same cached-load path. Feed additionally splits ranges longer
than the NeoWs seven-day limit into consecutive windows and merges them into
GroupedItems keyed by the upstream date keys.

Cached values are never handed out directly: every read returns a copy.
*/
package aggregator
