// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package nasa

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRateLimited is returned when HTTP 429 persists past MaxRetries.
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrUnexpectedStatus wraps any other non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected upstream status")

	// ErrMalformedBody is returned when a 2xx body does not decode.
	ErrMalformedBody = errors.New("malformed upstream body")
)

// FetchError describes a failed upstream call. StatusCode is 0 when no
// response was received (network failure, timeout, cancellation).
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("nasa %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("nasa %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *FetchError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// NotFound reports whether the upstream answered 404.
func (e *FetchError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsClientError reports whether err is a FetchError for a 4xx other than 429.
// Such responses mean the request was wrong, not that NASA is unhealthy.
func IsClientError(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.StatusCode >= 400 && fe.StatusCode < 500 && fe.StatusCode != http.StatusTooManyRequests
}
