// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/behavior"
)

// staticSource serves a fixed offer snapshot.
type staticSource struct {
	offers []Offer
	err    error
}

func (s *staticSource) Candidates(context.Context) ([]Offer, error) {
	return s.offers, s.err
}

// stubSignal returns canned recommendations under a given name.
type stubSignal struct {
	name string
	recs []Recommendation
	err  error
}

func (s *stubSignal) Name() string { return s.name }

func (s *stubSignal) Score(context.Context, Input) ([]Recommendation, error) {
	return s.recs, s.err
}

func newTestEngine(t *testing.T, cfg *Config, source OfferSource, store behavior.Store) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, source, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func testOffers(n int) []Offer {
	offers := make([]Offer, n)
	for i := range offers {
		offers[i] = Offer{ID: string(rune('a' + i)), Quantity: 1, OriginalPrice: 10, DiscountedPrice: 5}
	}
	return offers
}

func TestEngine_LimitOrderingUniqueness(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, &staticSource{offers: testOffers(6)}, behavior.NewMemoryStore())

	// Two signals with overlapping packs so merging matters.
	e.RegisterSignal(&stubSignal{name: SignalLocation, recs: []Recommendation{
		{PackID: "a", Score: 0.9, Signal: SignalLocation, Confidence: 0.9},
		{PackID: "b", Score: 0.5, Signal: SignalLocation, Confidence: 0.9},
		{PackID: "c", Score: 0.1, Signal: SignalLocation, Confidence: 0.9},
	}})
	e.RegisterSignal(&stubSignal{name: SignalTrending, recs: []Recommendation{
		{PackID: "b", Score: 0.6, Signal: SignalTrending, Confidence: 0.6},
		{PackID: "d", Score: 0.6, Signal: SignalTrending, Confidence: 0.6},
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(resp.Recommendations) > 3 {
		t.Errorf("returned %d recommendations, want <= limit 3", len(resp.Recommendations))
	}
	seen := make(map[string]bool)
	for i, rec := range resp.Recommendations {
		if seen[rec.PackID] {
			t.Errorf("duplicate pack id %q in output", rec.PackID)
		}
		seen[rec.PackID] = true
		if i > 0 && resp.Recommendations[i-1].Score < rec.Score {
			t.Errorf("output not sorted descending at index %d", i)
		}
	}
}

func TestEngine_MergesAcrossSignals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, &staticSource{offers: testOffers(2)}, behavior.NewMemoryStore())

	e.RegisterSignal(&stubSignal{name: SignalLocation, recs: []Recommendation{
		{PackID: "a", Score: 1, Reasons: []string{"cerca"}, Signal: SignalLocation, Confidence: 0.9},
	}})
	e.RegisterSignal(&stubSignal{name: SignalHistory, recs: []Recommendation{
		{PackID: "a", Score: 1, Reasons: []string{"habitual"}, Signal: SignalHistory, Confidence: 0.8},
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 merged", len(resp.Recommendations))
	}

	rec := resp.Recommendations[0]
	// 1×0.40 + 1×0.35 with default weights.
	if rec.Score < 0.74 || rec.Score > 0.76 {
		t.Errorf("merged score = %f, want 0.75", rec.Score)
	}
	if len(rec.Reasons) != 2 {
		t.Errorf("merged reasons = %v, want both kept", rec.Reasons)
	}
	if rec.Signal != SignalCombined {
		t.Errorf("merged signal = %q, want %q", rec.Signal, SignalCombined)
	}
	if rec.Confidence != 0.9 {
		t.Errorf("merged confidence = %f, want max 0.9", rec.Confidence)
	}
}

func TestEngine_AnonymousUserFallsBackToTrending(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, &staticSource{offers: testOffers(3)}, behavior.NewMemoryStore())

	// Location and history produce nothing without location/behavior,
	// mirroring the real signals' degraded output.
	e.RegisterSignal(&stubSignal{name: SignalLocation})
	e.RegisterSignal(&stubSignal{name: SignalHistory})
	e.RegisterSignal(&stubSignal{name: SignalSimilarUsers})
	e.RegisterSignal(&stubSignal{name: SignalTrending, recs: []Recommendation{
		{PackID: "a", Score: 0.6, Signal: SignalTrending, Confidence: 0.6},
		{PackID: "b", Score: 0.6, Signal: SignalTrending, Confidence: 0.6},
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "nobody"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2 from trending alone", len(resp.Recommendations))
	}
	for _, rec := range resp.Recommendations {
		if rec.Signal != SignalTrending {
			t.Errorf("pack %s signal = %q, want %q", rec.PackID, rec.Signal, SignalTrending)
		}
	}
	if got := resp.Metadata.SignalsUsed; len(got) != 1 || got[0] != SignalTrending {
		t.Errorf("SignalsUsed = %v, want [trending]", got)
	}
}

func TestEngine_FailedSignalDegrades(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, &staticSource{offers: testOffers(2)}, behavior.NewMemoryStore())

	e.RegisterSignal(&stubSignal{name: SignalSimilarUsers, err: errors.New("store down")})
	e.RegisterSignal(&stubSignal{name: SignalTrending, recs: []Recommendation{
		{PackID: "a", Score: 0.6, Signal: SignalTrending, Confidence: 0.6},
	}})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v, want degraded success", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Errorf("got %d recommendations, want 1 from the healthy signal", len(resp.Recommendations))
	}
}

func TestEngine_EmptyCandidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, &staticSource{}, behavior.NewMemoryStore())
	e.RegisterSignal(&stubSignal{name: SignalTrending})

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v, want empty success", err)
	}
	if len(resp.Recommendations) != 0 {
		t.Errorf("got %d recommendations, want 0", len(resp.Recommendations))
	}
	if resp.Recommendations == nil {
		t.Error("Recommendations is nil, want empty slice for JSON encoding")
	}
}

func TestEngine_LimitDefaultsAndCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, &staticSource{offers: testOffers(1)}, behavior.NewMemoryStore())

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero applies default", 0, cfg.Limits.DefaultLimit},
		{"negative applies default", -3, cfg.Limits.DefaultLimit},
		{"above max is capped", 999, cfg.Limits.MaxLimit},
		{"in range kept", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := e.prepareRequest(Request{UserID: "u1", Limit: tt.limit})
			if req.Limit != tt.want {
				t.Errorf("prepared limit = %d, want %d", req.Limit, tt.want)
			}
			if req.RequestID == "" {
				t.Error("prepared request has empty request id")
			}
		})
	}
}

func TestEngine_CacheHitAndInvalidation(t *testing.T) {
	cfg := DefaultConfig()
	e := newTestEngine(t, cfg, &staticSource{offers: testOffers(2)}, behavior.NewMemoryStore())
	e.RegisterSignal(&stubSignal{name: SignalTrending, recs: []Recommendation{
		{PackID: "a", Score: 0.6, Signal: SignalTrending, Confidence: 0.6},
	}})

	req := Request{UserID: "u1", Limit: 5}
	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first call reported a cache hit")
	}

	second, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second call missed the cache")
	}

	e.InvalidateUser("u1")
	third, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if third.Metadata.CacheHit {
		t.Error("call after InvalidateUser still hit the cache")
	}
}

func TestEngine_SourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("upstream down")
	e := newTestEngine(t, DefaultConfig(), &staticSource{err: wantErr}, behavior.NewMemoryStore())

	if _, err := e.Recommend(context.Background(), Request{UserID: "u1"}); !errors.Is(err, wantErr) {
		t.Errorf("Recommend() error = %v, want wrapped %v", err, wantErr)
	}
}
