// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

/*
Package cache provides the process-local result store that bounds upstream
NASA call volume.

# Overview

A Store maps an opaque key to an entry holding the payload, the time it was
stored and its TTL:

  - Get never fails; a miss (absent or expired) is control flow.
  - Put fully replaces any prior entry for the key. The entry expires exactly
    TTL after the Put. A TTL of zero never expires.
  - Invalidate removes one key, InvalidatePrefix a namespace, InvalidateAll everything.
  - IsValid agrees with Get at the same instant and does not touch statistics.

Expiry is lazy: Get removes an expired entry when it sees one. Sweep removes
every expired entry in one pass and is run periodically by the supervisor.
Nothing is persisted; a restart is a full invalidation.

# Keys

Keys are "<namespace>:<hash>" where the hash is a truncated SHA-256 of the
JSON-encoded parameters (GenerateKey). The namespace prefix labels the
cache_hits_total and cache_misses_total metrics:

	key := cache.GenerateKey("search", query)
	if v, ok := store.Get(key); ok {
	    return v.([]models.MediaItem), nil
	}

# Ownership

The Store hands back exactly the value that was Put. Callers that expose cached
slices or maps to code that may mutate them must copy on read; the aggregator
does this for every result it returns.

# Testing

WithClock injects a time source so TTL behavior is tested without sleeping:

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := cache.New(cache.WithClock(func() time.Time { return now }))
*/
package cache
