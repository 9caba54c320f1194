// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package models

import "time"

// Media types served by the image library.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeAudio = "audio"
)

// ImageSearchResponse is one page of images-api.nasa.gov/search.
type ImageSearchResponse struct {
	Collection ImageCollection `json:"collection"`
}

// ImageCollection is the Collection+JSON body of a search page.
type ImageCollection struct {
	Version  string             `json:"version,omitempty"`
	Href     string             `json:"href,omitempty"`
	Items    []MediaItem        `json:"items"`
	Metadata CollectionMetadata `json:"metadata"`
	Links    []CollectionLink   `json:"links,omitempty"`
}

// CollectionMetadata carries the total hit count. The field is absent on
// some error-shaped pages, hence the pointer.
type CollectionMetadata struct {
	TotalHits *int `json:"total_hits,omitempty"`
}

// CollectionLink is a pagination link ("next", "prev").
type CollectionLink struct {
	Rel    string `json:"rel"`
	Prompt string `json:"prompt,omitempty"`
	Href   string `json:"href"`
}

// MediaItem is one upstream search record.
type MediaItem struct {
	Href  string          `json:"href,omitempty"`
	Data  []MediaItemData `json:"data"`
	Links []MediaLink     `json:"links,omitempty"`
}

// MediaItemData holds the descriptive fields of a record. Only the first
// element of MediaItem.Data is meaningful.
type MediaItemData struct {
	NasaID           string   `json:"nasa_id,omitempty"`
	Title            string   `json:"title,omitempty"`
	DateCreated      string   `json:"date_created,omitempty"`
	MediaType        string   `json:"media_type,omitempty"`
	Description      string   `json:"description,omitempty"`
	Description508   string   `json:"description_508,omitempty"`
	Center           string   `json:"center,omitempty"`
	Photographer     string   `json:"photographer,omitempty"`
	SecondaryCreator string   `json:"secondary_creator,omitempty"`
	Location         string   `json:"location,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Album            []string `json:"album,omitempty"`
}

// MediaLink is a rendition of the asset (preview thumbnail, captions, ...).
type MediaLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel,omitempty"`
	Render string `json:"render,omitempty"`
}

// Primary returns the first data block, or nil if the record has none.
func (m *MediaItem) Primary() *MediaItemData {
	if len(m.Data) == 0 {
		return nil
	}
	return &m.Data[0]
}

// PreviewURL returns the href of the "preview" link, or "".
func (m *MediaItem) PreviewURL() string {
	for _, l := range m.Links {
		if l.Rel == "preview" {
			return l.Href
		}
	}
	return ""
}

// ResultItem is a normalized search result: the upstream record plus the
// fields derived from it for filtering and ordering.
type ResultItem struct {
	MediaItem

	// CreatedAt is the parsed date_created and the sort key.
	CreatedAt time.Time `json:"created_at"`
	// MediaType is the lower-cased data[0].media_type.
	MediaType string `json:"media_type"`
}

// Clone returns a copy that shares no slices with r.
func (r ResultItem) Clone() ResultItem {
	out := r
	if r.Data != nil {
		out.Data = make([]MediaItemData, len(r.Data))
		for i, d := range r.Data {
			d.Keywords = append([]string(nil), d.Keywords...)
			d.Album = append([]string(nil), d.Album...)
			out.Data[i] = d
		}
	}
	if r.Links != nil {
		out.Links = append([]MediaLink(nil), r.Links...)
	}
	return out
}
