// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package nasa

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hdm08/SpaceScope/internal/models"
)

// SearchParams are the image library query parameters SpaceScope sends.
// Zero values are omitted from the request.
type SearchParams struct {
	Query     string
	MediaType string
	YearStart int
	YearEnd   int
	Page      int
	PageSize  int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.MediaType != "" {
		v.Set("media_type", p.MediaType)
	}
	if p.YearStart > 0 {
		v.Set("year_start", strconv.Itoa(p.YearStart))
	}
	if p.YearEnd > 0 {
		v.Set("year_end", strconv.Itoa(p.YearEnd))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return v
}

// SearchImages fetches one page of images-api.nasa.gov/search.
func (c *Client) SearchImages(ctx context.Context, p SearchParams) (*models.ImageSearchResponse, error) {
	var out models.ImageSearchResponse
	if err := c.getJSON(ctx, EndpointSearch, c.imagesURL, "/search", p.values(), false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// APOD fetches the picture of the day for date (YYYY-MM-DD), or today when
// date is empty. Video entries include a thumbnail.
func (c *Client) APOD(ctx context.Context, date string) (*models.APOD, error) {
	params := url.Values{"thumbs": {"true"}}
	if date != "" {
		params.Set("date", date)
	}
	var out models.APOD
	if err := c.getJSON(ctx, EndpointAPOD, c.baseURL, "/planetary/apod", params, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// APODRange fetches every entry between startDate and endDate inclusive.
func (c *Client) APODRange(ctx context.Context, startDate, endDate string) ([]models.APOD, error) {
	params := url.Values{
		"start_date": {startDate},
		"end_date":   {endDate},
		"thumbs":     {"true"},
	}
	var out []models.APOD
	if err := c.getJSON(ctx, EndpointAPOD, c.baseURL, "/planetary/apod", params, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InsightWeather fetches the latest InSight sols as raw JSON.
func (c *Client) InsightWeather(ctx context.Context) (models.InsightWeather, error) {
	params := url.Values{"feedtype": {"json"}, "ver": {"1.0"}}
	var out models.InsightWeather
	if err := c.getJSON(ctx, EndpointWeather, c.baseURL, "/insight_weather/", params, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NeoFeed fetches one feed window. NeoWs rejects windows over seven days;
// splitting longer ranges is the caller's job.
func (c *Client) NeoFeed(ctx context.Context, startDate, endDate string) (*models.NeoFeedResponse, error) {
	params := url.Values{"start_date": {startDate}, "end_date": {endDate}}
	var out models.NeoFeedResponse
	if err := c.getJSON(ctx, EndpointNeoFeed, c.baseURL, "/neo/rest/v1/feed", params, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NeoBrowse fetches one page of the asteroid catalog. page is 0-based.
func (c *Client) NeoBrowse(ctx context.Context, page, size int) (*models.NeoBrowseResponse, error) {
	params := url.Values{"page": {strconv.Itoa(page)}, "size": {strconv.Itoa(size)}}
	var out models.NeoBrowseResponse
	if err := c.getJSON(ctx, EndpointNeoBrowse, c.baseURL, "/neo/rest/v1/neo/browse", params, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NeoLookup fetches a single asteroid by its SPK-ID.
func (c *Client) NeoLookup(ctx context.Context, asteroidID string) (*models.NearEarthObject, error) {
	var out models.NearEarthObject
	path := "/neo/rest/v1/neo/" + url.PathEscape(asteroidID)
	if err := c.getJSON(ctx, EndpointNeoLookup, c.baseURL, path, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
