// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"sort"
	"strings"
	"time"

	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/validation"
)

// Reasons an item is dropped during normalization.
const (
	dropNoData  = "no_data"
	dropNoDate  = "no_date"
	dropBadDate = "bad_date"
)

// Layouts seen in date_created.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	validation.DateLayout,
}

func parseCreated(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// normalize converts raw records to ResultItems, dropping any record that
// lacks the fields needed to filter and sort. Arrival order is preserved.
func normalize(raw []models.MediaItem) ([]models.ResultItem, map[string]int) {
	out := make([]models.ResultItem, 0, len(raw))
	dropped := map[string]int{}

	for _, item := range raw {
		data := item.Primary()
		if data == nil {
			dropped[dropNoData]++
			continue
		}
		if strings.TrimSpace(data.DateCreated) == "" {
			dropped[dropNoDate]++
			continue
		}
		created, ok := parseCreated(data.DateCreated)
		if !ok {
			dropped[dropBadDate]++
			continue
		}
		out = append(out, models.ResultItem{
			MediaItem: item,
			CreatedAt: created,
			MediaType: strings.ToLower(strings.TrimSpace(data.MediaType)),
		})
	}
	return out, dropped
}

// predicate is one independent filter. Filters are ANDed, so their order
// does not matter.
type predicate func(models.ResultItem) bool

func mediaTypeIs(mt string) predicate {
	return func(it models.ResultItem) bool { return mt == "" || it.MediaType == mt }
}

func createdWithin(r YearRange) predicate {
	return func(it models.ResultItem) bool { return r.Contains(it.CreatedAt.Year()) }
}

func filterItems(items []models.ResultItem, preds ...predicate) []models.ResultItem {
	out := make([]models.ResultItem, 0, len(items))
	for _, it := range items {
		keep := true
		for _, p := range preds {
			if !p(it) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, it)
		}
	}
	return out
}

// sortNewestFirst orders by creation time descending; ties keep arrival order.
func sortNewestFirst(items []models.ResultItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// process runs normalize, filter, sort and truncate over accumulated pages.
func process(raw []models.MediaItem, q Query, maxItems int) ([]models.ResultItem, map[string]int) {
	items, dropped := normalize(raw)
	items = filterItems(items, mediaTypeIs(q.MediaType), createdWithin(q.Years))
	sortNewestFirst(items)
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items, dropped
}

func cloneItems(items []models.ResultItem) []models.ResultItem {
	out := make([]models.ResultItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
