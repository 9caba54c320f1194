// SpaceScope - NASA Open Data Explorer
// Copyright 2026 SpaceScope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hdm08/SpaceScope

package nasa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/hdm08/SpaceScope/internal/config"
)

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cbc := NewCircuitBreakerClient(&config.NASAConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	if cbc.State() != "closed" {
		t.Fatalf("initial state = %s, want closed", cbc.State())
	}

	// 7 failures then 3 successes: under ReadyToTrip's 10-request minimum
	// until the next failure.
	for i := 0; i < 10; i++ {
		_, _ = cbc.execute(func() (interface{}, error) {
			if i < 7 {
				return nil, errors.New("simulated upstream failure")
			}
			return "ok", nil
		})
	}
	_, _ = cbc.execute(func() (interface{}, error) {
		return nil, errors.New("final failure")
	})

	if cbc.State() != "open" {
		t.Fatalf("state = %s, want open", cbc.State())
	}

	_, err := cbc.execute(func() (interface{}, error) { return "never", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if !IsOpenState(err) {
		t.Error("IsOpenState should report breaker rejection")
	}
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	cbc := NewCircuitBreakerClient(&config.NASAConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	for i := 0; i < 20; i++ {
		_, _ = cbc.execute(func() (interface{}, error) {
			return nil, &FetchError{Endpoint: EndpointNeoLookup, StatusCode: http.StatusNotFound, Err: ErrUnexpectedStatus}
		})
	}
	if cbc.State() != "closed" {
		t.Errorf("state = %s after 404s, want closed", cbc.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cbc := newCircuitBreakerClient(NewClient(&config.NASAConfig{Timeout: time.Second}), 20*time.Millisecond)

	for i := 0; i < 11; i++ {
		_, _ = cbc.execute(func() (interface{}, error) { return nil, errors.New("down") })
	}
	if cbc.State() != "open" {
		t.Fatalf("state = %s, want open", cbc.State())
	}

	time.Sleep(40 * time.Millisecond)
	if cbc.State() != "half-open" {
		t.Fatalf("state = %s, want half-open after timeout", cbc.State())
	}

	for i := 0; i < 3; i++ {
		if _, err := cbc.execute(func() (interface{}, error) { return "ok", nil }); err != nil {
			t.Fatalf("probe %d: %v", i, err)
		}
	}
	if cbc.State() != "closed" {
		t.Errorf("state = %s after successful probes, want closed", cbc.State())
	}
}

func TestCircuitBreaker_FetchPagePassThrough(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"collection":{"items":[{"data":[{"nasa_id":"A"}]}],"metadata":{"total_hits":1}}}`))
	}))
	defer srv.Close()

	cbc := newCircuitBreakerClient(newTestClient(srv), time.Minute)
	page, err := cbc.FetchPage(context.Background(), PageRequest{Query: "moon", Page: 1})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(page.Items) != 1 || page.TotalCount != 1 {
		t.Errorf("unexpected page %+v", page)
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}
}

func TestCircuitBreaker_WrapsSliceAndMapResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/planetary/apod":
			_, _ = w.Write([]byte(`[{"date":"2024-01-01"}]`))
		default:
			_, _ = w.Write([]byte(`{"sol_keys":["1"]}`))
		}
	}))
	defer srv.Close()

	cbc := newCircuitBreakerClient(newTestClient(srv), time.Minute)

	list, err := cbc.APODRange(context.Background(), "2024-01-01", "2024-01-01")
	if err != nil || len(list) != 1 {
		t.Errorf("APODRange = %v, %v", list, err)
	}
	w, err := cbc.InsightWeather(context.Background())
	if err != nil {
		t.Fatalf("InsightWeather: %v", err)
	}
	if _, ok := w["sol_keys"]; !ok {
		t.Errorf("weather missing sol_keys: %v", w)
	}
}
