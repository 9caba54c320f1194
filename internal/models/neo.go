// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package models

import (
	"sort"

	"github.com/goccy/go-json"
)

// NeoFeedResponse is the body of /neo/rest/v1/feed for a single window of at
// most seven days. NearEarthObjects is keyed by "YYYY-MM-DD".
type NeoFeedResponse struct {
	Links            map[string]string            `json:"links,omitempty"`
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]NearEarthObject `json:"near_earth_objects"`
}

// NeoBrowseResponse is one page of /neo/rest/v1/neo/browse.
type NeoBrowseResponse struct {
	Links            map[string]string `json:"links,omitempty"`
	Page             NeoPage           `json:"page"`
	NearEarthObjects []NearEarthObject `json:"near_earth_objects"`
}

// NeoPage is the browse pagination block. Number is 0-based upstream.
type NeoPage struct {
	Size          int `json:"size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
	Number        int `json:"number"`
}

// NearEarthObject is one asteroid as returned by feed, browse and lookup.
// OrbitalData is only present on browse and lookup and is passed through.
type NearEarthObject struct {
	Links                          map[string]string        `json:"links,omitempty"`
	ID                             string                   `json:"id"`
	NeoReferenceID                 string                   `json:"neo_reference_id,omitempty"`
	Name                           string                   `json:"name"`
	Designation                    string                   `json:"designation,omitempty"`
	NasaJplURL                     string                   `json:"nasa_jpl_url,omitempty"`
	AbsoluteMagnitudeH             *float64                 `json:"absolute_magnitude_h,omitempty"`
	EstimatedDiameter              map[string]DiameterRange `json:"estimated_diameter,omitempty"`
	IsPotentiallyHazardousAsteroid bool                     `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData              []CloseApproach          `json:"close_approach_data,omitempty"`
	IsSentryObject                 bool                     `json:"is_sentry_object"`
	OrbitalData                    json.RawMessage          `json:"orbital_data,omitempty"`
}

// DiameterRange is an estimated size bracket in one unit.
type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// CloseApproach describes a single pass. Velocities and distances are
// strings upstream and stay that way.
type CloseApproach struct {
	CloseApproachDate      string            `json:"close_approach_date"`
	CloseApproachDateFull  string            `json:"close_approach_date_full,omitempty"`
	EpochDateCloseApproach int64             `json:"epoch_date_close_approach,omitempty"`
	RelativeVelocity       map[string]string `json:"relative_velocity,omitempty"`
	MissDistance           map[string]string `json:"miss_distance,omitempty"`
	OrbitingBody           string            `json:"orbiting_body,omitempty"`
}

// GroupedItems is a feed merged across one or more upstream windows. Groups
// keep the upstream date keys; Dates lists them in ascending order.
type GroupedItems struct {
	StartDate        string                       `json:"start_date"`
	EndDate          string                       `json:"end_date"`
	ElementCount     int                          `json:"element_count"`
	Dates            []string                     `json:"dates"`
	NearEarthObjects map[string][]NearEarthObject `json:"near_earth_objects"`
}

// NewGroupedItems returns an empty feed for the given range.
func NewGroupedItems(startDate, endDate string) *GroupedItems {
	return &GroupedItems{
		StartDate:        startDate,
		EndDate:          endDate,
		Dates:            []string{},
		NearEarthObjects: make(map[string][]NearEarthObject),
	}
}

// Merge folds one upstream window into g. A date key seen twice has its
// objects appended in arrival order.
func (g *GroupedItems) Merge(resp *NeoFeedResponse) {
	for date, objs := range resp.NearEarthObjects {
		if _, seen := g.NearEarthObjects[date]; !seen {
			g.Dates = append(g.Dates, date)
		}
		g.NearEarthObjects[date] = append(g.NearEarthObjects[date], objs...)
		g.ElementCount += len(objs)
	}
	sort.Strings(g.Dates)
}

// Clone returns a deep-enough copy for handing to callers: group slices and
// the map are fresh, objects are copied by value.
func (g *GroupedItems) Clone() *GroupedItems {
	out := &GroupedItems{
		StartDate:        g.StartDate,
		EndDate:          g.EndDate,
		ElementCount:     g.ElementCount,
		Dates:            append([]string(nil), g.Dates...),
		NearEarthObjects: make(map[string][]NearEarthObject, len(g.NearEarthObjects)),
	}
	for k, v := range g.NearEarthObjects {
		out.NearEarthObjects[k] = append([]NearEarthObject(nil), v...)
	}
	return out
}
