// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Reserved top-level keys of the InSight payload. Every other key is a sol.
const (
	InsightSolKeys        = "sol_keys"
	InsightValidityChecks = "validity_checks"
)

// InsightWeather is the raw /insight_weather payload. Sol records are keyed
// by sol number, so the body is kept as a map of raw values.
type InsightWeather map[string]json.RawMessage

// InsightValidity is one sol's entry under validity_checks. Only the
// atmospheric temperature flag is consulted.
type InsightValidity struct {
	AT *SensorValidity `json:"AT,omitempty"`
}

// SensorValidity reports whether a sensor's readings passed NASA's checks.
type SensorValidity struct {
	Valid bool `json:"valid"`
}

// ValidSols returns a copy of w without the sols whose AT reading is not
// flagged valid. sol_keys and validity_checks are carried over unchanged.
// A payload with no validity_checks block keeps no sols.
func (w InsightWeather) ValidSols() (InsightWeather, error) {
	checks := map[string]json.RawMessage{}
	if raw, ok := w[InsightValidityChecks]; ok && len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &checks); err != nil {
			return nil, fmt.Errorf("decode validity_checks: %w", err)
		}
	}

	out := make(InsightWeather, len(w))
	for key, raw := range w {
		if key == InsightSolKeys || key == InsightValidityChecks {
			out[key] = raw
			continue
		}
		check, ok := checks[key]
		if !ok {
			continue
		}
		// validity_checks also holds scalar bookkeeping keys; those never
		// decode into an object and are never sols.
		var v InsightValidity
		if err := json.Unmarshal(check, &v); err != nil {
			continue
		}
		if v.AT != nil && v.AT.Valid {
			out[key] = raw
		}
	}
	return out, nil
}
