// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/hdm08/SpaceScope/internal/aggregator"
	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/favorites"
	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/nasa"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// stubPages serves items as pages and records every request.
type stubPages struct {
	mu       sync.Mutex
	items    []models.MediaItem
	err      error
	requests []nasa.PageRequest
}

func (s *stubPages) FetchPage(_ context.Context, req nasa.PageRequest) (*nasa.RawPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}

	start := (req.Page - 1) * req.PageSize
	if start > len(s.items) {
		start = len(s.items)
	}
	end := start + req.PageSize
	if end > len(s.items) {
		end = len(s.items)
	}
	return &nasa.RawPage{
		Items:      append([]models.MediaItem(nil), s.items[start:end]...),
		TotalCount: len(s.items),
		TotalKnown: true,
	}, nil
}

func (s *stubPages) Requests() []nasa.PageRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]nasa.PageRequest(nil), s.requests...)
}

// stubUpstream answers the non-paginated NASA calls with canned data.
type stubUpstream struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (s *stubUpstream) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.err
}

func (s *stubUpstream) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubUpstream) APOD(_ context.Context, date string) (*models.APOD, error) {
	if err := s.record("apod " + date); err != nil {
		return nil, err
	}
	if date == "" {
		date = testNow.Format("2006-01-02")
	}
	return &models.APOD{Date: date, Title: "Picture for " + date, MediaType: "image"}, nil
}

func (s *stubUpstream) APODRange(_ context.Context, startDate, endDate string) ([]models.APOD, error) {
	if err := s.record("apod_range " + startDate + " " + endDate); err != nil {
		return nil, err
	}
	return []models.APOD{{Date: startDate}, {Date: endDate}}, nil
}

func (s *stubUpstream) InsightWeather(context.Context) (models.InsightWeather, error) {
	if err := s.record("weather"); err != nil {
		return nil, err
	}
	var w models.InsightWeather
	raw := `{
		"sol_keys": ["675", "676"],
		"675": {"AT": {"av": -62.3}},
		"676": {"AT": {"av": -63.1}},
		"validity_checks": {"675": {"AT": {"valid": true}}, "676": {"AT": {"valid": false}}, "sol_hours_required": 18}
	}`
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *stubUpstream) NeoFeed(_ context.Context, startDate, endDate string) (*models.NeoFeedResponse, error) {
	if err := s.record("neo_feed " + startDate + " " + endDate); err != nil {
		return nil, err
	}
	return &models.NeoFeedResponse{
		ElementCount: 1,
		NearEarthObjects: map[string][]models.NearEarthObject{
			startDate: {{ID: "3542519", Name: "(2010 PK9)"}},
		},
	}, nil
}

func (s *stubUpstream) NeoBrowse(_ context.Context, page, size int) (*models.NeoBrowseResponse, error) {
	if err := s.record("neo_browse"); err != nil {
		return nil, err
	}
	return &models.NeoBrowseResponse{
		Page:             models.NeoPage{Size: size, Number: page, TotalPages: 10},
		NearEarthObjects: []models.NearEarthObject{{ID: "2000433", Name: "433 Eros (A898 PA)"}},
	}, nil
}

func (s *stubUpstream) NeoLookup(_ context.Context, asteroidID string) (*models.NearEarthObject, error) {
	if err := s.record("neo_lookup " + asteroidID); err != nil {
		return nil, err
	}
	return &models.NearEarthObject{ID: asteroidID, Name: "433 Eros (A898 PA)"}, nil
}

type stubBreaker string

func (b stubBreaker) State() string { return string(b) }

type testServer struct {
	handler  *Handler
	router   http.Handler
	pages    *stubPages
	upstream *stubUpstream
	store    *cache.Store
}

type serverOption func(*testServerConfig)

type testServerConfig struct {
	favorites bool
	breaker   BreakerState
}

func withoutFavorites() serverOption {
	return func(c *testServerConfig) { c.favorites = false }
}

func withBreaker(b BreakerState) serverOption {
	return func(c *testServerConfig) { c.breaker = b }
}

func newTestServer(t *testing.T, items []models.MediaItem, opts ...serverOption) *testServer {
	t.Helper()

	cfg := testServerConfig{favorites: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	clock := func() time.Time { return testNow }
	pages := &stubPages{items: items}
	up := &stubUpstream{}
	store := cache.New(cache.WithClock(clock))
	agg := aggregator.New(pages, up, store,
		&config.AggregatorConfig{MaxItems: 500, PageSize: 100, FeedWindowDays: 7},
		&config.CacheConfig{
			VolatileTTL: 10 * time.Minute,
			BrowseTTL:   5 * time.Minute,
			LookupTTL:   10 * time.Minute,
			WeatherTTL:  time.Hour,
		},
		aggregator.WithClock(clock),
	)

	var favs *favorites.Store
	if cfg.favorites {
		var err error
		favs, err = favorites.Open(&config.FavoritesConfig{Enabled: true, InMemory: true})
		if err != nil {
			t.Fatalf("favorites.Open() error = %v", err)
		}
		t.Cleanup(func() { _ = favs.Close() })
	}

	h := NewHandler(agg, favs, cfg.breaker)
	h.now = clock

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	router := NewRouter(h, NewChiMiddleware(mw)).SetupChi()

	return &testServer{handler: h, router: router, pages: pages, upstream: up, store: store}
}

// testEnvelope decodes models.APIResponse with Data left raw.
type testEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, target string, body io.Reader) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var env testEnvelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v (body %q)", method, target, err, w.Body.String())
		}
	}
	return w, env
}

func mediaItem(id, created, mediaType string) models.MediaItem {
	return models.MediaItem{
		Href: "https://images-assets.nasa.gov/" + id + "/collection.json",
		Data: []models.MediaItemData{{NasaID: id, Title: id, DateCreated: created, MediaType: mediaType}},
	}
}
