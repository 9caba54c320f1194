// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package nasa

import (
	"context"

	"github.com/hdm08/SpaceScope/internal/models"
)

// MaxPage is the last image library page; later pages return HTTP 400.
const MaxPage = 100

// PageRequest asks for one page of image library results. Page is 1-based.
// An empty Query with a year range is the trending variant.
type PageRequest struct {
	Query     string
	YearStart int
	YearEnd   int
	Page      int
	PageSize  int
}

// RawPage is one upstream page before any normalization.
//
// TotalKnown is false when the page did not report total_hits, in which
// case TotalCount is zero and must not be used as a stop condition.
type RawPage struct {
	Items      []models.MediaItem
	TotalCount int
	TotalKnown bool
}

// PageFetcher fetches a single page. Implementations do not paginate.
type PageFetcher interface {
	FetchPage(ctx context.Context, req PageRequest) (*RawPage, error)
}

// FetchPage fetches one image library page.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (*RawPage, error) {
	resp, err := c.SearchImages(ctx, SearchParams{
		Query:     req.Query,
		YearStart: req.YearStart,
		YearEnd:   req.YearEnd,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return toRawPage(resp), nil
}

func toRawPage(resp *models.ImageSearchResponse) *RawPage {
	page := &RawPage{Items: resp.Collection.Items}
	if th := resp.Collection.Metadata.TotalHits; th != nil {
		page.TotalCount = *th
		page.TotalKnown = true
	}
	return page
}
