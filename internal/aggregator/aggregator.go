// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/metrics"
	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/nasa"
)

// Stop reasons for pagination.
const (
	stopEmptyPage = "empty_page"
	stopCap       = "cap"
	stopTotal     = "total_reached"
	stopPageLimit = "page_limit"
)

// Upstream is the set of non-paginated NASA calls the aggregator caches.
// nasa.Client and nasa.CircuitBreakerClient both satisfy it.
type Upstream interface {
	APOD(ctx context.Context, date string) (*models.APOD, error)
	APODRange(ctx context.Context, startDate, endDate string) ([]models.APOD, error)
	InsightWeather(ctx context.Context) (models.InsightWeather, error)
	NeoFeed(ctx context.Context, startDate, endDate string) (*models.NeoFeedResponse, error)
	NeoBrowse(ctx context.Context, page, size int) (*models.NeoBrowseResponse, error)
	NeoLookup(ctx context.Context, asteroidID string) (*models.NearEarthObject, error)
}

// Aggregator fetches, shapes and memoizes NASA results.
//
// Thread Safety: Safe for concurrent use. The cache store is the only
// shared mutable state.
type Aggregator struct {
	pages    nasa.PageFetcher
	upstream Upstream
	store    *cache.Store
	flights  singleflight.Group
	ttl      ttlPolicy

	maxItems   int
	pageSize   int
	windowDays int

	now func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides time.Now for TTL classification and feed windows.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an Aggregator. upstream may be nil when only Search and
// Trending are used.
func New(pages nasa.PageFetcher, upstream Upstream, store *cache.Store, aggCfg *config.AggregatorConfig, cacheCfg *config.CacheConfig, opts ...Option) *Aggregator {
	a := &Aggregator{
		pages:      pages,
		upstream:   upstream,
		store:      store,
		ttl:        newTTLPolicy(cacheCfg),
		maxItems:   aggCfg.MaxItems,
		pageSize:   aggCfg.PageSize,
		windowDays: aggCfg.FeedWindowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store returns the underlying cache for admin endpoints.
func (a *Aggregator) Store() *cache.Store { return a.store }

// Search aggregates image library results for term.
func (a *Aggregator) Search(ctx context.Context, term, mediaType string, years YearRange, page int) ([]models.ResultItem, error) {
	return a.fetch(ctx, Query{Term: term, MediaType: mediaType, Years: years, Page: page})
}

// Trending aggregates the term-less, unfiltered variant over years from
// page onward. GET /search routes a blank q without a media filter here.
func (a *Aggregator) Trending(ctx context.Context, years YearRange, page int) ([]models.ResultItem, error) {
	return a.fetch(ctx, Query{Years: years, Page: page})
}

func (a *Aggregator) fetch(ctx context.Context, q Query) ([]models.ResultItem, error) {
	op := NamespaceSearch
	if NormalizeTerm(q.Term) == "" {
		op = NamespaceTrending
	}

	nq, err := q.normalize()
	if err != nil {
		return nil, &AggregationError{Op: op, Err: err}
	}
	key := nq.key()

	return cached(ctx, a, op, key,
		func(ctx context.Context) ([]models.ResultItem, time.Duration, loadStats, error) {
			return a.aggregate(ctx, nq, key)
		},
		cloneItems,
	)
}

// aggregate paginates, shapes and returns the result with its TTL.
func (a *Aggregator) aggregate(ctx context.Context, q Query, key string) ([]models.ResultItem, time.Duration, loadStats, error) {
	raw, pages, err := a.paginate(ctx, q, key)
	if err != nil {
		return nil, 0, loadStats{calls: pages}, err
	}

	items, dropped := process(raw, q, a.maxItems)
	for reason, n := range dropped {
		metrics.RecordDroppedItems(reason, n)
	}

	logging.Ctx(ctx).Debug().
		Str("key", key).
		Int("raw", len(raw)).
		Int("kept", len(items)).
		Interface("dropped", dropped).
		Msg("Aggregation shaped")

	return items, a.ttl.forYears(q.Years, a.now()), loadStats{calls: pages, items: len(items)}, nil
}

// paginate walks pages sequentially from q.Page until a stop condition.
// Running past nasa.MaxPage ends the walk like an empty page. Any page
// failure aborts with no partial result.
func (a *Aggregator) paginate(ctx context.Context, q Query, key string) ([]models.MediaItem, int, error) {
	req := nasa.PageRequest{Page: q.Page, PageSize: a.pageSize}
	if q.Trending() {
		// The image library needs at least one search parameter.
		req.YearStart, req.YearEnd = q.Years.Start, q.Years.End
	} else {
		req.Query = q.Term
	}

	// Items before the cursor count toward the reported total.
	offset := (q.Page - 1) * a.pageSize

	var acc []models.MediaItem
	pages := 0
	for {
		if req.Page > nasa.MaxPage {
			a.stopPagination(ctx, key, stopPageLimit, pages, len(acc))
			return acc, pages, nil
		}

		page, err := a.pages.FetchPage(ctx, req)
		pages++
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Int("page", req.Page).Msg("Upstream page failed, aborting aggregation")
			return nil, pages, err
		}

		logging.Ctx(ctx).Debug().
			Str("key", key).
			Int("page", req.Page).
			Int("items", len(page.Items)).
			Int("total", page.TotalCount).
			Bool("total_known", page.TotalKnown).
			Msg("Fetched page")

		reason := ""
		switch {
		case len(page.Items) == 0:
			reason = stopEmptyPage
		default:
			acc = append(acc, page.Items...)
			if len(acc) >= a.maxItems {
				reason = stopCap
			} else if page.TotalKnown && offset+len(acc) >= page.TotalCount {
				reason = stopTotal
			}
		}

		if reason != "" {
			a.stopPagination(ctx, key, reason, pages, len(acc))
			return acc, pages, nil
		}
		req.Page++
	}
}

func (a *Aggregator) stopPagination(ctx context.Context, key, reason string, pages, accumulated int) {
	metrics.RecordAggregationStop(reason)
	logging.Ctx(ctx).Debug().Str("key", key).Str("reason", reason).Int("pages", pages).Int("accumulated", accumulated).Msg("Pagination stopped")
}
