// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/hdm08/SpaceScope/internal/metrics"
)

// loadStats feeds the aggregation metrics for one cold load.
type loadStats struct {
	calls int
	items int
}

// cached is the read-through path every operation shares. load performs
// the upstream work for a miss and picks the TTL.
//
// A valid entry is returned as a copy with no I/O. On a miss, callers for
// the same key join one singleflight load. The load runs detached from the
// leader's cancellation so one departing caller cannot fail the others;
// upstream calls keep their own per-request timeouts. Each caller still
// stops waiting when its own context ends. Only successful loads are stored.
func cached[T any](ctx context.Context, a *Aggregator, op, key string, load func(context.Context) (T, time.Duration, loadStats, error), clone func(T) T) (T, error) {
	var zero T

	if v, ok := a.store.Get(key); ok {
		if typed, ok := v.(T); ok {
			return clone(typed), nil
		}
	}

	ch := a.flights.DoChan(key, func() (interface{}, error) {
		// An earlier flight may have stored the key after our lookup.
		if a.store.IsValid(key) {
			if v, ok := a.store.Get(key); ok {
				return v, nil
			}
		}

		start := time.Now()
		v, ttl, st, err := load(context.WithoutCancel(ctx))
		metrics.RecordAggregation(op, st.calls, st.items, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		a.store.Put(key, v, ttl)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.AggregationShared.WithLabelValues(op).Inc()
		}
		if res.Err != nil {
			return zero, &AggregationError{Op: op, Key: key, Err: res.Err}
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, &AggregationError{Op: op, Key: key, Err: fmt.Errorf("unexpected value type %T", res.Val)}
		}
		return clone(typed), nil
	case <-ctx.Done():
		return zero, &AggregationError{Op: op, Key: key, Err: ctx.Err()}
	}
}
