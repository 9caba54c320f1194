// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/hdm08/SpaceScope/internal/cache"
	"github.com/hdm08/SpaceScope/internal/logging"
	"github.com/hdm08/SpaceScope/internal/models"
	"github.com/hdm08/SpaceScope/internal/validation"
)

// MaxFeedDays bounds one Feed request so a single call cannot fan out into
// an unbounded number of upstream windows.
const MaxFeedDays = 92

// feedWindow is one inclusive upstream date range.
type feedWindow struct {
	start string
	end   string
}

// splitWindows cuts [start, end] into consecutive windows of at most days
// days, in increasing order.
func splitWindows(start, end time.Time, days int) []feedWindow {
	if days < 1 {
		days = 1
	}
	var out []feedWindow
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, days) {
		wEnd := cur.AddDate(0, 0, days-1)
		if wEnd.After(end) {
			wEnd = end
		}
		out = append(out, feedWindow{
			start: cur.Format(validation.DateLayout),
			end:   wEnd.Format(validation.DateLayout),
		})
	}
	return out
}

// parseFeedRange validates and parses a YYYY-MM-DD range. An empty end
// date means the same day as start.
func parseFeedRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(validation.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start date %q", ErrInvalidQuery, startDate)
	}
	if endDate == "" {
		return start, start, nil
	}
	end, err := time.Parse(validation.DateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %q", ErrInvalidQuery, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date before start date", ErrInvalidQuery)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxFeedDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidQuery, days, MaxFeedDays)
	}
	return start, end, nil
}

type feedKey struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Feed returns near-earth objects grouped by close-approach date for the
// inclusive range. Ranges longer than the upstream window are fetched as
// consecutive windows in increasing order; any window failure aborts the
// whole feed and nothing is cached.
func (a *Aggregator) Feed(ctx context.Context, startDate, endDate string) (*models.GroupedItems, error) {
	start, end, err := parseFeedRange(startDate, endDate)
	if err != nil {
		return nil, &AggregationError{Op: NamespaceNeoFeed, Err: err}
	}
	s := start.Format(validation.DateLayout)
	e := end.Format(validation.DateLayout)
	key := cache.GenerateKey(NamespaceNeoFeed, feedKey{StartDate: s, EndDate: e})

	return cached(ctx, a, NamespaceNeoFeed, key,
		func(ctx context.Context) (*models.GroupedItems, time.Duration, loadStats, error) {
			windows := splitWindows(start, end, a.windowDays)
			grouped := models.NewGroupedItems(s, e)
			for i, w := range windows {
				resp, err := a.upstream.NeoFeed(ctx, w.start, w.end)
				if err != nil {
					logging.Ctx(ctx).Warn().Err(err).Str("key", key).Str("window_start", w.start).Msg("Feed window failed, aborting feed")
					return nil, 0, loadStats{calls: i + 1}, err
				}
				grouped.Merge(resp)
				logging.Ctx(ctx).Debug().Str("key", key).Str("window_start", w.start).Str("window_end", w.end).Int("objects", resp.ElementCount).Msg("Fetched feed window")
			}
			return grouped, a.ttl.forDates(e, a.now()), loadStats{calls: len(windows), items: grouped.ElementCount}, nil
		},
		(*models.GroupedItems).Clone,
	)
}
