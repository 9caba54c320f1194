// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hdm08/SpaceScope/internal/metrics"
)

// NoExpiry is the TTL for entries that live until invalidated.
const NoExpiry time.Duration = 0

// Entry represents a cached payload and the moment it was stored.
type Entry struct {
	Data     interface{}
	StoredAt time.Time
	TTL      time.Duration

	gen uint64
}

// ExpiresAt returns the expiry instant, or the zero time for NoExpiry.
func (e Entry) ExpiresAt() time.Time {
	if e.TTL <= NoExpiry {
		return time.Time{}
	}
	return e.StoredAt.Add(e.TTL)
}

// validAt reports whether the entry is live at now. The entry is valid for
// the half-open interval [StoredAt, StoredAt+TTL).
func (e Entry) validAt(now time.Time) bool {
	if e.TTL <= NoExpiry {
		return true
	}
	return now.Before(e.StoredAt.Add(e.TTL))
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// EntryInfo describes one live entry for the admin API.
type EntryInfo struct {
	Key       string     `json:"key"`
	Namespace string     `json:"namespace"`
	StoredAt  time.Time  `json:"stored_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Store is a thread-safe in-memory key/value store with per-entry TTL.
// Reads and writes never block on I/O.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	gen     uint64
	name    string
	now     func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithName sets the cache_entries gauge label. Defaults to "results".
func WithName(name string) Option {
	return func(s *Store) {
		s.name = name
	}
}

// New creates an empty Store. No background goroutine is started; eager
// eviction is driven by calling Sweep.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]Entry),
		name:    "results",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stats.LastCleanup = s.now()
	return s
}

// Get retrieves a value by key with lazy expiration checking.
//
// An entry is valid while now < StoredAt+TTL, or forever when TTL is
// NoExpiry. An expired entry found here is removed on the spot.
//
// Parameters:
//   - key: Cache key string (use GenerateKey() for consistent key generation)
//
// Returns:
//   - interface{}: Cached payload if found and not expired
//   - bool: true if entry exists and is valid, false otherwise
//
// Statistics:
//   - Increments Hits on a valid entry, Misses otherwise
//   - Increments Evictions when removing an expired entry
//
// Thread Safety: Uses RLock for the lookup and takes Lock only to delete an
// expired entry. The delete is skipped if a concurrent Put replaced it.
//
// Example:
//
//	if v, ok := store.Get(key); ok {
//	    return v.([]models.ResultItem), nil
//	}
//	// Cache miss, aggregate upstream
func (s *Store) Get(key string) (interface{}, bool) {
	now := s.now()

	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		s.recordLookup(key, false)
		return nil, false
	}

	if !entry.validAt(now) {
		s.mu.Lock()
		// Another writer may have replaced the entry since the read lock was released.
		if current, ok := s.entries[key]; ok && current.gen == entry.gen {
			delete(s.entries, key)
			s.recordEvictions(namespaceOf(key), 1)
		}
		size := len(s.entries)
		s.mu.Unlock()

		s.updateSize(size)
		s.recordLookup(key, false)
		return nil, false
	}

	s.recordLookup(key, true)
	return entry.Data, true
}

// Put stores value under key with its own TTL.
//
// Parameters:
//   - key: Cache key string (use GenerateKey() for consistent keys)
//   - value: Payload to cache; callers must not mutate it afterwards
//   - ttl: Lifetime measured from this call; 0 or negative means NoExpiry
//
// Behavior:
//   - Overwrites any existing entry with the same key
//   - Records StoredAt from the store's clock
//   - Updates the size gauge
//
// Thread Safety: Uses write lock for safe concurrent access.
//
// Example:
//
//	store.Put(key, items, 10*time.Minute)
//	store.Put(pastKey, apod, cache.NoExpiry)
func (s *Store) Put(key string, value interface{}, ttl time.Duration) {
	if ttl < 0 {
		ttl = NoExpiry
	}
	entry := Entry{Data: value, StoredAt: s.now(), TTL: ttl}

	s.mu.Lock()
	s.gen++
	entry.gen = s.gen
	s.entries[key] = entry
	size := len(s.entries)
	s.mu.Unlock()

	s.updateSize(size)
}

// IsValid reports whether key is present and unexpired.
//
// Parameters:
//   - key: Cache key string
//
// Returns:
//   - bool: true exactly when Get at the same instant would return a value
//
// Behavior:
//   - Never removes entries, even expired ones
//   - Does not touch Hits, Misses or Evictions
//
// Thread Safety: Uses RLock only.
//
// Example:
//
//	wasCached := store.IsValid(aggregator.SearchKey(q))
func (s *Store) IsValid(key string) bool {
	now := s.now()

	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	return exists && entry.validAt(now)
}

// Invalidate removes key. It reports whether an entry was present.
func (s *Store) Invalidate(key string) bool {
	s.mu.Lock()
	_, exists := s.entries[key]
	delete(s.entries, key)
	size := len(s.entries)
	s.mu.Unlock()

	if exists {
		s.recordEvictions(namespaceOf(key), 1)
	}
	s.updateSize(size)
	return exists
}

// InvalidatePrefix removes every key that starts with prefix and returns the
// number removed.
func (s *Store) InvalidatePrefix(prefix string) int {
	removed := make(map[string]int64)

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed[namespaceOf(key)]++
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	total := 0
	for ns, n := range removed {
		s.recordEvictions(ns, n)
		total += int(n)
	}
	s.updateSize(size)
	return total
}

// InvalidateAll clears the store and returns the number of entries removed.
func (s *Store) InvalidateAll() int {
	return s.InvalidatePrefix("")
}

// Sweep eagerly removes every expired entry.
//
// Lazy expiry in Get already keeps reads correct; Sweep only bounds memory
// held by keys nobody asks for again. The maintenance supervisor calls it
// every cache.sweep_interval.
//
// Returns:
//   - int: Number of entries removed
//
// Statistics:
//   - Increments Evictions per namespace
//   - Sets LastCleanup to the sweep time
//
// Thread Safety: Holds the write lock for one pass over the map.
//
// Example:
//
//	if n := store.Sweep(); n > 0 {
//	    logging.Debug().Int("evicted", n).Msg("Cache sweep")
//	}
func (s *Store) Sweep() int {
	now := s.now()
	removed := make(map[string]int64)

	s.mu.Lock()
	for key, entry := range s.entries {
		if !entry.validAt(now) {
			delete(s.entries, key)
			removed[namespaceOf(key)]++
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	total := 0
	for ns, n := range removed {
		s.recordEvictions(ns, n)
		total += int(n)
	}

	s.statsMu.Lock()
	s.stats.LastCleanup = now
	s.statsMu.Unlock()

	s.updateSize(size)
	return total
}

// Len returns the number of stored entries, including expired entries not yet
// swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries lists live entries sorted by key.
func (s *Store) Entries() []EntryInfo {
	now := s.now()

	s.mu.RLock()
	infos := make([]EntryInfo, 0, len(s.entries))
	for key, entry := range s.entries {
		if !entry.validAt(now) {
			continue
		}
		info := EntryInfo{Key: key, Namespace: namespaceOf(key), StoredAt: entry.StoredAt}
		if exp := entry.ExpiresAt(); !exp.IsZero() {
			info.ExpiresAt = &exp
		}
		infos = append(infos, info)
	}
	s.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

// GetStats returns a snapshot of the counters.
func (s *Store) GetStats() Stats {
	size := s.Len()

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	snapshot := s.stats
	snapshot.TotalKeys = int64(size)
	return snapshot
}

// HitRate returns the cache hit rate as a percentage
func (s *Store) HitRate() float64 {
	return s.GetStats().HitRate()
}

func (s *Store) recordLookup(key string, hit bool) {
	s.statsMu.Lock()
	if hit {
		s.stats.Hits++
	} else {
		s.stats.Misses++
	}
	s.statsMu.Unlock()

	metrics.RecordCacheLookup(namespaceOf(key), hit)
}

func (s *Store) recordEvictions(namespace string, n int64) {
	s.statsMu.Lock()
	s.stats.Evictions += n
	s.statsMu.Unlock()

	metrics.CacheEvictions.WithLabelValues(namespace).Add(float64(n))
}

func (s *Store) updateSize(size int) {
	metrics.CacheSize.WithLabelValues(s.name).Set(float64(size))
}

// namespaceOf returns the part of key before the first ':'.
func namespaceOf(key string) string {
	if ns, _, found := strings.Cut(key, ":"); found && ns != "" {
		return ns
	}
	return "default"
}
