// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

// Package favorites persists users' saved APODs, library items and
// asteroids in BadgerDB.
//
// Key layout:
//
//	fav:<userID>:<favoriteID>           -> JSON models.Favorite
//	idx:<userID>:<kind>:<itemID>        -> favoriteID
//
// The index key makes Add idempotent per (user, kind, item).
package favorites

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/metrics"
	"github.com/hdm08/SpaceScope/internal/models"
)

var (
	// ErrNotFound is returned when a favorite does not exist for the user.
	ErrNotFound = errors.New("favorite not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("favorites store closed")
)

const (
	prefixFavorite = "fav:"
	prefixIndex    = "idx:"

	maxConflictRetries = 5
)

// Store is a Badger-backed favorites store. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	now    func() time.Time
	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg *config.FavoritesConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Favorites store opened")
	return &Store{db: db, now: time.Now}, nil
}

func favoriteKey(userID, id string) []byte {
	return []byte(prefixFavorite + userID + ":" + id)
}

func indexKey(userID string, kind models.FavoriteKind, itemID string) []byte {
	return []byte(prefixIndex + userID + ":" + string(kind) + ":" + itemID)
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Add saves fav for fav.UserID. ID and CreatedAt are assigned here. If the
// user already saved the same (Kind, ItemID), the existing favorite is
// returned with created=false.
func (s *Store) Add(ctx context.Context, fav models.Favorite) (out models.Favorite, created bool, err error) {
	defer func() { metrics.RecordFavoritesOperation("add", err) }()

	if err := s.checkOpen(); err != nil {
		return models.Favorite{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return models.Favorite{}, false, err
	}

	add := func(txn *badger.Txn) error {
		idx := indexKey(fav.UserID, fav.Kind, fav.ItemID)
		item, err := txn.Get(idx)
		switch {
		case err == nil:
			var existingID string
			if err := item.Value(func(v []byte) error { existingID = string(v); return nil }); err != nil {
				return err
			}
			existing, err := readFavorite(txn, favoriteKey(fav.UserID, existingID))
			if err != nil {
				return err
			}
			out = *existing
			return nil
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		fav.ID = uuid.New().String()
		fav.CreatedAt = s.now().UTC()
		data, err := json.Marshal(fav)
		if err != nil {
			return fmt.Errorf("encode favorite: %w", err)
		}
		if err := txn.Set(favoriteKey(fav.UserID, fav.ID), data); err != nil {
			return err
		}
		if err := txn.Set(idx, []byte(fav.ID)); err != nil {
			return err
		}
		out, created = fav, true
		return nil
	}

	// Two concurrent adds of the same item conflict on the index key.
	// The loser retries and then finds the winner's entry.
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.db.Update(add)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return models.Favorite{}, false, fmt.Errorf("add favorite: %w", err)
	}
	return out, created, nil
}

// Get returns one favorite.
func (s *Store) Get(ctx context.Context, userID, id string) (fav models.Favorite, err error) {
	defer func() { metrics.RecordFavoritesOperation("get", err) }()

	if err := s.checkOpen(); err != nil {
		return models.Favorite{}, err
	}
	err = s.db.View(func(txn *badger.Txn) error {
		f, err := readFavorite(txn, favoriteKey(userID, id))
		if err != nil {
			return err
		}
		fav = *f
		return nil
	})
	if err != nil {
		return models.Favorite{}, err
	}
	return fav, nil
}

// List returns the user's favorites, newest first. An empty kind lists all.
func (s *Store) List(ctx context.Context, userID string, kind models.FavoriteKind) (favs []models.Favorite, err error) {
	defer func() { metrics.RecordFavoritesOperation("list", err) }()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	favs = []models.Favorite{}
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixFavorite + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var f models.Favorite
			if err := it.Item().Value(func(v []byte) error { return json.Unmarshal(v, &f) }); err != nil {
				logging.Warn().Err(err).Str("key", string(it.Item().Key())).Msg("Skipping undecodable favorite")
				continue
			}
			if kind != "" && f.Kind != kind {
				continue
			}
			favs = append(favs, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	sort.SliceStable(favs, func(i, j int) bool { return favs[i].CreatedAt.After(favs[j].CreatedAt) })
	return favs, nil
}

// Delete removes one favorite and its index entry.
func (s *Store) Delete(ctx context.Context, userID, id string) (err error) {
	defer func() { metrics.RecordFavoritesOperation("delete", err) }()

	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := favoriteKey(userID, id)
		f, err := readFavorite(txn, key)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Delete(indexKey(userID, f.Kind, f.ItemID))
	})
}

// RunGC reclaims value log space. Safe to call periodically.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	logging.Info().Msg("Favorites store closed")
	return nil
}

func readFavorite(txn *badger.Txn, key []byte) (*models.Favorite, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var f models.Favorite
	if err := item.Value(func(v []byte) error { return json.Unmarshal(v, &f) }); err != nil {
		return nil, fmt.Errorf("decode favorite: %w", err)
	}
	return &f, nil
}
