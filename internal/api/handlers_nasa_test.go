// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/nasa"
)

func marsItems() []models.MediaItem {
	return []models.MediaItem{
		mediaItem("PIA24420", "2021-03-04T00:00:00Z", "image"),
		mediaItem("PIA22000", "2019-01-01T00:00:00Z", "image"),
		mediaItem("JPL-20220301", "2022-03-01T00:00:00Z", "video"),
		mediaItem("PIA23962", "2020-07-04T00:00:00Z", "image"),
		mediaItem("undated", "", "image"),
	}
}

func TestSearch_FiltersSortsAndCaches(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, marsItems())

	target := "/api/v1/search?q=%20Mars%20&media_type=image&year_start=2020&year_end=2022"
	w, env := ts.do(t, http.MethodGet, target, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var items []models.ResultItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	want := []string{"PIA24420", "PIA23962"}
	if len(items) != len(want) {
		t.Fatalf("items = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if got := items[i].Primary().NasaID; got != id {
			t.Errorf("items[%d] = %s, want %s", i, got, id)
		}
	}
	if env.Metadata.Count == nil || *env.Metadata.Count != 2 {
		t.Errorf("metadata.count = %v, want 2", env.Metadata.Count)
	}
	if env.Metadata.Cached {
		t.Error("first call reported cached")
	}

	// Same query with different spelling of the term hits the cache.
	w, env = ts.do(t, http.MethodGet, "/api/v1/search?q=mars&media_type=IMAGE&year_start=2020&year_end=2022", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second status = %d", w.Code)
	}
	if !env.Metadata.Cached {
		t.Error("second call not reported cached")
	}
	if got := len(ts.pages.Requests()); got != 1 {
		t.Errorf("upstream page calls = %d, want 1", got)
	}
	if req := ts.pages.Requests()[0]; req.Query != "mars" {
		t.Errorf("upstream query = %q, want %q", req.Query, "mars")
	}
}

func TestSearch_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		target    string
		wantQuery string
		wantStart int
		wantEnd   int
	}{
		{"trending covers last and this year", "/api/v1/search", "", 2023, 2024},
		{"blank q is trending", "/api/v1/search?q=%20%20", "", 2023, 2024},
		{"search starts at 1960", "/api/v1/search?q=apollo", "apollo", 1960, 2024},
		{"explicit years win", "/api/v1/search?year_start=2010&year_end=2012", "", 2010, 2012},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, marsItems())

			w, _ := ts.do(t, http.MethodGet, tt.target, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			reqs := ts.pages.Requests()
			if len(reqs) == 0 {
				t.Fatal("no upstream request")
			}
			got := reqs[0]
			if got.Query != tt.wantQuery {
				t.Errorf("query = %q, want %q", got.Query, tt.wantQuery)
			}
			// Search narrows years locally; trending passes them upstream.
			if tt.wantQuery == "" && (got.YearStart != tt.wantStart || got.YearEnd != tt.wantEnd) {
				t.Errorf("years = %d-%d, want %d-%d", got.YearStart, got.YearEnd, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSearch_BlankQueryTrendingPages(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"/api/v1/search?page=3", "/api/v1/search?page=3&media_type=all", "/api/v1/search?page=3&media_type=image"} {
		ts := newTestServer(t, marsItems())

		w, _ := ts.do(t, http.MethodGet, target, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body %s", target, w.Code, w.Body.String())
		}
		reqs := ts.pages.Requests()
		if len(reqs) == 0 {
			t.Fatalf("%s: no upstream request", target)
		}
		if reqs[0].Query != "" || reqs[0].Page != 3 {
			t.Errorf("%s: first upstream request = %+v, want trending from page 3", target, reqs[0])
		}
	}
}

func TestSearch_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
	}{
		{"unknown media type", "/api/v1/search?q=mars&media_type=gif"},
		{"non-numeric year", "/api/v1/search?q=mars&year_start=abc"},
		{"page zero", "/api/v1/search?q=mars&page=0"},
		{"year before 1900", "/api/v1/search?q=mars&year_start=1492"},
		{"inverted range", "/api/v1/search?q=mars&year_start=2023&year_end=2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, marsItems())

			w, env := ts.do(t, http.MethodGet, tt.target, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
			}
			if env.Error == nil || env.Error.Code != ErrCodeValidationFailed {
				t.Errorf("error = %+v, want %s", env.Error, ErrCodeValidationFailed)
			}
			if got := len(ts.pages.Requests()); got != 0 {
				t.Errorf("upstream calls = %d, want 0", got)
			}
		})
	}
}

func TestSearch_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "server error",
			err:      &nasa.FetchError{Endpoint: nasa.EndpointSearch, StatusCode: 500, Err: nasa.ErrUnexpectedStatus},
			wantCode: http.StatusBadGateway,
			wantErr:  ErrCodeExternalServiceFail,
		},
		{
			name:     "rate limited",
			err:      &nasa.FetchError{Endpoint: nasa.EndpointSearch, StatusCode: 429, Err: nasa.ErrRateLimited},
			wantCode: http.StatusBadGateway,
			wantErr:  ErrCodeExternalServiceFail,
		},
		{
			name:     "breaker open",
			err:      gobreaker.ErrOpenState,
			wantCode: http.StatusServiceUnavailable,
			wantErr:  ErrCodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, marsItems())
			ts.pages.err = tt.err

			w, env := ts.do(t, http.MethodGet, "/api/v1/search?q=mars", nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if env.Error == nil || env.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantErr)
			}
			if ts.store.Len() != 0 {
				t.Errorf("cache holds %d entries after a failure", ts.store.Len())
			}
		})
	}
}

func TestAPOD(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	w, env := ts.do(t, http.MethodGet, "/api/v1/apod?date=2024-06-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var apod models.APOD
	if err := json.Unmarshal(env.Data, &apod); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if apod.Date != "2024-06-01" {
		t.Errorf("date = %q", apod.Date)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/apod", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("today status = %d", w.Code)
	}

	w, env = ts.do(t, http.MethodGet, "/api/v1/apod?date=June%201", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", w.Code)
	}
	if env.Error == nil || env.Error.Details["field"] != "date" {
		t.Errorf("error = %+v, want field date", env.Error)
	}

	if calls := ts.upstream.Calls(); len(calls) != 2 {
		t.Errorf("upstream calls = %v, want 2", calls)
	}
}

func TestAPODRange_ParameterSpellings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantCall string
	}{
		{"snake case", "/api/v1/apod/range?start_date=2024-06-01&end_date=2024-06-03", http.StatusOK, "apod_range 2024-06-01 2024-06-03"},
		{"camel case", "/api/v1/apod/range?startDate=2024-06-01&endDate=2024-06-02", http.StatusOK, "apod_range 2024-06-01 2024-06-02"},
		{"end defaults to start", "/api/v1/apod/range?start_date=2024-06-01", http.StatusOK, "apod_range 2024-06-01 2024-06-01"},
		{"missing start", "/api/v1/apod/range?end_date=2024-06-01", http.StatusBadRequest, ""},
		{"inverted", "/api/v1/apod/range?start_date=2024-06-05&end_date=2024-06-01", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)

			w, _ := ts.do(t, http.MethodGet, tt.target, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			calls := ts.upstream.Calls()
			if tt.wantCall == "" {
				if len(calls) != 0 {
					t.Errorf("upstream calls = %v, want none", calls)
				}
				return
			}
			if len(calls) != 1 || calls[0] != tt.wantCall {
				t.Errorf("upstream calls = %v, want [%s]", calls, tt.wantCall)
			}
		})
	}
}

func TestWeather(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	w, env := ts.do(t, http.MethodGet, "/api/v1/weather", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var weather map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &weather); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := weather["675"]; !ok {
		t.Error("valid sol 675 missing")
	}
	if _, ok := weather["676"]; ok {
		t.Error("invalid sol 676 present")
	}
	if _, ok := weather[models.InsightSolKeys]; !ok {
		t.Error("sol_keys missing")
	}
}

func TestNeoFeed_Aliases(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, nil)

	w, env := ts.do(t, http.MethodGet, "/api/v1/neo/feed?SD=2024-06-01&ED=2024-06-10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	want := []string{"neo_feed 2024-06-01 2024-06-07", "neo_feed 2024-06-08 2024-06-10"}
	calls := ts.upstream.Calls()
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, calls[i], want[i])
		}
	}

	var grouped models.GroupedItems
	if err := json.Unmarshal(env.Data, &grouped); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if grouped.ElementCount != 2 {
		t.Errorf("element_count = %d, want 2", grouped.ElementCount)
	}

	w, _ = ts.do(t, http.MethodGet, "/api/v1/neo/feed", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing start status = %d, want 400", w.Code)
	}
}

func TestNeoBrowse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantCode int
	}{
		{"defaults", "/api/v1/neo/browse", http.StatusOK},
		{"explicit", "/api/v1/neo/browse?page=3&size=5", http.StatusOK},
		{"size too large", "/api/v1/neo/browse?size=21", http.StatusBadRequest},
		{"size zero", "/api/v1/neo/browse?size=0", http.StatusBadRequest},
		{"negative page", "/api/v1/neo/browse?page=-1", http.StatusBadRequest},
		{"non-numeric size", "/api/v1/neo/browse?size=ten", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, nil)
			w, _ := ts.do(t, http.MethodGet, tt.target, nil)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestNeoLookup(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, nil)
		w, env := ts.do(t, http.MethodGet, "/api/v1/neo/lookup/2000433", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var neo models.NearEarthObject
		if err := json.Unmarshal(env.Data, &neo); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if neo.ID != "2000433" {
			t.Errorf("id = %q", neo.ID)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, nil)
		w, _ := ts.do(t, http.MethodGet, "/api/v1/neo/lookup/eros", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("upstream 404", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, nil)
		ts.upstream.err = &nasa.FetchError{Endpoint: nasa.EndpointNeoLookup, StatusCode: 404, Err: nasa.ErrUnexpectedStatus}
		w, env := ts.do(t, http.MethodGet, "/api/v1/neo/lookup/99999999", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if env.Error == nil || env.Error.Code != ErrCodeNotFound {
			t.Errorf("error = %+v", env.Error)
		}
	})
}
