// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is returned before any I/O for a query that can never
// match, such as an inverted year or date range.
var ErrInvalidQuery = errors.New("invalid query")

// AggregationError reports a failed aggregation. Err is usually a
// *nasa.FetchError or a breaker rejection.
type AggregationError struct {
	Op  string
	Key string
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate %s (%s): %v", e.Op, e.Key, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }
