// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestMediaItemPrimaryAndPreview(t *testing.T) {
	t.Parallel()

	var empty MediaItem
	if empty.Primary() != nil {
		t.Error("Primary() on item without data should be nil")
	}
	if empty.PreviewURL() != "" {
		t.Error("PreviewURL() on item without links should be empty")
	}

	item := MediaItem{
		Data: []MediaItemData{{NasaID: "PIA00001"}, {NasaID: "ignored"}},
		Links: []MediaLink{
			{Href: "https://example/captions.srt", Rel: "captions"},
			{Href: "https://example/thumb.jpg", Rel: "preview", Render: "image"},
		},
	}
	if got := item.Primary().NasaID; got != "PIA00001" {
		t.Errorf("Primary().NasaID = %q, want PIA00001", got)
	}
	if got := item.PreviewURL(); got != "https://example/thumb.jpg" {
		t.Errorf("PreviewURL() = %q", got)
	}
}

func TestResultItemCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := ResultItem{
		MediaItem: MediaItem{
			Data:  []MediaItemData{{Title: "a", Keywords: []string{"mars"}}},
			Links: []MediaLink{{Href: "x"}},
		},
		MediaType: MediaTypeImage,
	}
	c := orig.Clone()
	c.Data[0].Title = "b"
	c.Data[0].Keywords[0] = "moon"
	c.Links[0].Href = "y"

	if orig.Data[0].Title != "a" || orig.Data[0].Keywords[0] != "mars" || orig.Links[0].Href != "x" {
		t.Errorf("mutating clone changed original: %+v", orig)
	}
}

func TestResultItemJSONKeepsUpstreamShape(t *testing.T) {
	t.Parallel()

	item := ResultItem{
		MediaItem: MediaItem{Href: "h", Data: []MediaItemData{{NasaID: "n"}}},
		MediaType: MediaTypeVideo,
	}
	b, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, k := range []string{"href", "data", "created_at", "media_type"} {
		if _, ok := m[k]; !ok {
			t.Errorf("encoded item missing %q: %s", k, b)
		}
	}
}

func TestGroupedItemsMerge(t *testing.T) {
	t.Parallel()

	g := NewGroupedItems("2024-01-01", "2024-01-09")
	g.Merge(&NeoFeedResponse{NearEarthObjects: map[string][]NearEarthObject{
		"2024-01-02": {{ID: "2"}},
		"2024-01-01": {{ID: "1a"}, {ID: "1b"}},
	}})
	g.Merge(&NeoFeedResponse{NearEarthObjects: map[string][]NearEarthObject{
		"2024-01-08": {{ID: "8"}},
		"2024-01-02": {{ID: "2b"}},
	}})

	if g.ElementCount != 5 {
		t.Errorf("ElementCount = %d, want 5", g.ElementCount)
	}
	wantDates := []string{"2024-01-01", "2024-01-02", "2024-01-08"}
	if len(g.Dates) != len(wantDates) {
		t.Fatalf("Dates = %v, want %v", g.Dates, wantDates)
	}
	for i := range wantDates {
		if g.Dates[i] != wantDates[i] {
			t.Errorf("Dates[%d] = %q, want %q", i, g.Dates[i], wantDates[i])
		}
	}
	if objs := g.NearEarthObjects["2024-01-02"]; len(objs) != 2 || objs[0].ID != "2" || objs[1].ID != "2b" {
		t.Errorf("2024-01-02 group = %+v", objs)
	}

	c := g.Clone()
	c.NearEarthObjects["2024-01-01"][0].ID = "changed"
	c.Dates[0] = "changed"
	if g.NearEarthObjects["2024-01-01"][0].ID != "1a" || g.Dates[0] != "2024-01-01" {
		t.Error("mutating clone changed original")
	}
}

func TestInsightWeatherValidSols(t *testing.T) {
	t.Parallel()

	body := `{
		"sol_keys": ["675", "676", "677"],
		"675": {"AT": {"av": -62.3}},
		"676": {"AT": {"av": -60.1}},
		"677": {"PRE": {"av": 750}},
		"validity_checks": {
			"675": {"AT": {"sol_hours_with_data": [1, 2], "valid": true}},
			"676": {"AT": {"valid": false}},
			"677": {"PRE": {"valid": true}},
			"sol_hours_required": 18,
			"sols_checked": ["675", "676", "677"]
		}
	}`
	var w InsightWeather
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	got, err := w.ValidSols()
	if err != nil {
		t.Fatalf("ValidSols: %v", err)
	}

	tests := []struct {
		key  string
		want bool
	}{
		{"675", true},
		{"676", false},
		{"677", false},
		{InsightSolKeys, true},
		{InsightValidityChecks, true},
	}
	for _, tt := range tests {
		if _, ok := got[tt.key]; ok != tt.want {
			t.Errorf("key %q present = %v, want %v", tt.key, ok, tt.want)
		}
	}
}

func TestInsightWeatherValidSolsRejectsBadChecks(t *testing.T) {
	t.Parallel()

	w := InsightWeather{InsightValidityChecks: json.RawMessage(`[1,2]`)}
	if _, err := w.ValidSols(); err == nil {
		t.Error("expected error for non-object validity_checks")
	}
}

func TestFavoriteKindValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind FavoriteKind
		want bool
	}{
		{FavoriteAPOD, true},
		{FavoriteMedia, true},
		{FavoriteAsteroid, true},
		{"", false},
		{"APOD", false},
		{"comet", false},
	}
	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.want {
			t.Errorf("FavoriteKind(%q).Valid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
