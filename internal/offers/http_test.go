// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package offers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/recommend"
)

func TestStaticSource(t *testing.T) {
	src := NewStaticSource([]recommend.Offer{{ID: "p1"}, {ID: "p2"}})

	got, err := src.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d offers, want 2", len(got))
	}

	// Mutating the returned slice must not leak into the source.
	got[0].ID = "mutated"
	again, err := src.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if again[0].ID != "p1" {
		t.Error("caller mutation leaked into the snapshot")
	}

	src.Replace([]recommend.Offer{{ID: "p3"}})
	replaced, err := src.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(replaced) != 1 || replaced[0].ID != "p3" {
		t.Errorf("after Replace got %+v, want [p3]", replaced)
	}
}

func TestHTTPSource_FetchesAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1","establishment_id":"e1","latitude":40.4,"longitude":-3.7,"original_price":10,"discounted_price":4,"quantity":2}]`))
	}))
	defer server.Close()

	cfg := DefaultHTTPConfig()
	cfg.URL = server.URL
	src, err := NewHTTPSource(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTPSource() error = %v", err)
	}

	got, err := src.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" || got[0].DiscountedPrice != 4 {
		t.Errorf("Candidates() = %+v, want decoded p1", got)
	}
}

func TestHTTPSource_ServesLastSnapshotOnFailure(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"p1"}]`))
	}))
	defer server.Close()

	cfg := DefaultHTTPConfig()
	cfg.URL = server.URL
	src, err := NewHTTPSource(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTPSource() error = %v", err)
	}

	if _, err := src.Candidates(context.Background()); err != nil {
		t.Fatalf("warm-up Candidates() error = %v", err)
	}

	fail.Store(true)
	got, err := src.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates() during outage error = %v, want degraded snapshot", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("degraded Candidates() = %+v, want last snapshot", got)
	}
}

func TestHTTPSource_ErrorWithoutSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := DefaultHTTPConfig()
	cfg.URL = server.URL
	src, err := NewHTTPSource(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHTTPSource() error = %v", err)
	}

	if _, err := src.Candidates(context.Background()); err == nil {
		t.Error("Candidates() error = nil, want error with no snapshot to fall back on")
	}
}

func TestNewHTTPSource_RequiresURL(t *testing.T) {
	if _, err := NewHTTPSource(HTTPConfig{}, zerolog.Nop()); err == nil {
		t.Error("NewHTTPSource() without URL: error = nil, want error")
	}
}
