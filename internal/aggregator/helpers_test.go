// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/nasa"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeFetcher serves a fixed item list in pages and counts calls.
type fakeFetcher struct {
	mu       sync.Mutex
	items    []models.MediaItem
	total    int
	noTotal  bool
	calls    int
	requests []nasa.PageRequest
	failPage int
	failErr  error

	// entered is signalled on the first call; release blocks every call
	// until closed.
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newFakeFetcher(items []models.MediaItem) *fakeFetcher {
	return &fakeFetcher{items: items, total: len(items)}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, req nasa.PageRequest) (*nasa.RawPage, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	failPage, failErr := f.failPage, f.failErr
	f.mu.Unlock()

	if f.entered != nil {
		f.once.Do(func() { close(f.entered) })
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failPage != 0 && req.Page == failPage {
		return nil, failErr
	}

	size := req.PageSize
	start := (req.Page - 1) * size
	if start > len(f.items) {
		start = len(f.items)
	}
	end := start + size
	if end > len(f.items) {
		end = len(f.items)
	}
	page := &nasa.RawPage{Items: append([]models.MediaItem(nil), f.items[start:end]...)}
	if !f.noTotal {
		page.TotalCount = f.total
		page.TotalKnown = true
	}
	return page, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func mediaItem(id, created, mediaType string) models.MediaItem {
	return models.MediaItem{
		Href:  "https://images-assets.nasa.gov/" + id + "/collection.json",
		Data:  []models.MediaItemData{{NasaID: id, Title: id, DateCreated: created, MediaType: mediaType}},
		Links: []models.MediaLink{{Href: "https://images-assets.nasa.gov/" + id + "/thumb.jpg", Rel: "preview"}},
	}
}

// genItems returns n valid images dated one day apart going back from 2024-01-01.
func genItems(n int) []models.MediaItem {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.MediaItem, n)
	for i := range out {
		out[i] = mediaItem(fmt.Sprintf("ID%04d", i), base.AddDate(0, 0, -i).Format(time.RFC3339), "image")
	}
	return out
}

func testAggConfig(pageSize int) *config.AggregatorConfig {
	return &config.AggregatorConfig{MaxItems: 500, PageSize: pageSize, FeedWindowDays: 7}
}

func testCacheConfig() *config.CacheConfig {
	return &config.CacheConfig{
		VolatileTTL:   10 * time.Minute,
		HistoricalTTL: cache.NoExpiry,
		BrowseTTL:     5 * time.Minute,
		LookupTTL:     10 * time.Minute,
		WeatherTTL:    time.Hour,
	}
}

// newTestAggregator wires a fetcher, optional upstream and a clocked store.
func newTestAggregator(pages nasa.PageFetcher, upstream Upstream, pageSize int) (*Aggregator, *cache.Store, *testClock) {
	clock := &testClock{now: testNow}
	store := cache.New(cache.WithClock(clock.Now), cache.WithName("test"))
	agg := New(pages, upstream, store, testAggConfig(pageSize), testCacheConfig(), WithClock(clock.Now))
	return agg, store, clock
}

// fakeUpstream implements Upstream with canned responses.
type fakeUpstream struct {
	mu         sync.Mutex
	calls      map[string]int
	feedCalls  [][2]string
	feedFailAt int
	feed       func(start, end string) *models.NeoFeedResponse
	apod       *models.APOD
	weather    models.InsightWeather
	browse     *models.NeoBrowseResponse
	neo        *models.NearEarthObject
	err        error
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{calls: map[string]int{}}
}

func (u *fakeUpstream) count(name string) {
	u.mu.Lock()
	u.calls[name]++
	u.mu.Unlock()
}

func (u *fakeUpstream) Calls(name string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[name]
}

func (u *fakeUpstream) APOD(_ context.Context, date string) (*models.APOD, error) {
	u.count("apod")
	if u.err != nil {
		return nil, u.err
	}
	a := *u.apod
	if date != "" {
		a.Date = date
	}
	return &a, nil
}

func (u *fakeUpstream) APODRange(_ context.Context, startDate, endDate string) ([]models.APOD, error) {
	u.count("apod_range")
	if u.err != nil {
		return nil, u.err
	}
	return []models.APOD{{Date: startDate}, {Date: endDate}}, nil
}

func (u *fakeUpstream) InsightWeather(context.Context) (models.InsightWeather, error) {
	u.count("weather")
	if u.err != nil {
		return nil, u.err
	}
	return u.weather, nil
}

func (u *fakeUpstream) NeoFeed(_ context.Context, startDate, endDate string) (*models.NeoFeedResponse, error) {
	u.count("feed")
	u.mu.Lock()
	u.feedCalls = append(u.feedCalls, [2]string{startDate, endDate})
	n := len(u.feedCalls)
	u.mu.Unlock()
	if u.feedFailAt != 0 && n == u.feedFailAt {
		return nil, u.err
	}
	return u.feed(startDate, endDate), nil
}

func (u *fakeUpstream) NeoBrowse(_ context.Context, page, size int) (*models.NeoBrowseResponse, error) {
	u.count("browse")
	if u.err != nil {
		return nil, u.err
	}
	return u.browse, nil
}

func (u *fakeUpstream) NeoLookup(_ context.Context, id string) (*models.NearEarthObject, error) {
	u.count("lookup")
	if u.err != nil {
		return nil, u.err
	}
	n := *u.neo
	n.ID = id
	return &n, nil
}
