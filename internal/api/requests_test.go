// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package api

import (
	"testing"

	"github.com/hdm08/SpaceScope/internal/validation"
)

func TestRequestStructValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       interface{}
		wantField string
	}{
		{"apod empty date", &apodRequest{}, ""},
		{"apod bad date", &apodRequest{Date: "2024-02-30"}, "date"},
		{"range missing start", &dateRangeRequest{EndDate: "2024-01-01"}, "start_date"},
		{"range ok", &dateRangeRequest{StartDate: "2024-01-01"}, ""},
		{"browse size too big", &neoBrowseRequest{Page: 0, Size: 21}, "size"},
		{"browse negative page", &neoBrowseRequest{Page: -1, Size: 20}, "page"},
		{"lookup non numeric", &neoLookupRequest{AsteroidID: "abc"}, "asteroidId"},
		{"lookup ok", &neoLookupRequest{AsteroidID: "3542519"}, ""},
		{"search bad media", &searchRequest{MediaType: "gif", YearStart: 2000, YearEnd: 2001, Page: 1}, "media_type"},
		{"search early year", &searchRequest{YearStart: 1800, YearEnd: 2001, Page: 1}, "year_start"},
		{"search ok", &searchRequest{Query: "mars", MediaType: "image", YearStart: 2000, YearEnd: 2001, Page: 1}, ""},
		{"user bad id", &userPathRequest{UserID: "a b"}, "userID"},
		{"user bad kind", &userPathRequest{UserID: "alice", Kind: "planet"}, "kind"},
		{"favorite missing item", &createFavoriteRequest{Kind: "apod"}, "item_id"},
		{"favorite bad url", &createFavoriteRequest{Kind: "media", ItemID: "PIA1", URL: "not a url"}, "url"},
		{"favorite ok", &createFavoriteRequest{Kind: "asteroid", ItemID: "3542519"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validation.ValidateStruct(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected validation error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}
