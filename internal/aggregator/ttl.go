// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"time"

	"github.com/hdm08/SpaceScope/internal/config"
	"github.com/hdm08/SpaceScope/internal/validation"
)

// ttlPolicy maps each query class to its cache lifetime.
type ttlPolicy struct {
	volatile   time.Duration
	historical time.Duration
	browse     time.Duration
	lookup     time.Duration
	weather    time.Duration
}

func newTTLPolicy(cfg *config.CacheConfig) ttlPolicy {
	return ttlPolicy{
		volatile:   cfg.VolatileTTL,
		historical: cfg.HistoricalTTL,
		browse:     cfg.BrowseTTL,
		lookup:     cfg.LookupTTL,
		weather:    cfg.WeatherTTL,
	}
}

// forYears: ranges that reach the current year can still gain items.
func (p ttlPolicy) forYears(r YearRange, now time.Time) time.Duration {
	if r.End >= now.UTC().Year() {
		return p.volatile
	}
	return p.historical
}

// forDates: a range ending today or later is volatile. Unparsable dates are
// treated as volatile.
func (p ttlPolicy) forDates(endDate string, now time.Time) time.Duration {
	end, err := time.Parse(validation.DateLayout, endDate)
	if err != nil || !end.Before(startOfDay(now)) {
		return p.volatile
	}
	return p.historical
}

// forAPOD: today's picture lives until the next UTC midnight, past
// pictures never change. served is the date the upstream returned. NASA
// rolls over at midnight US Eastern, so for a few hours after UTC midnight
// a request for today still gets yesterday's picture; that answer is only
// kept for the volatile TTL.
func (p ttlPolicy) forAPOD(date, served string, now time.Time) time.Duration {
	today := now.UTC().Format(validation.DateLayout)
	if date == "" || date == today {
		if served != today {
			return p.volatile
		}
		return untilMidnight(now)
	}
	return p.forDates(date, now)
}

func startOfDay(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func untilMidnight(now time.Time) time.Duration {
	return startOfDay(now).AddDate(0, 0, 1).Sub(now.UTC())
}
