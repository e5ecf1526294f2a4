// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package signals

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/recommend"
)

func similarityTestConfig() recommend.SimilarityConfig {
	return recommend.SimilarityConfig{
		Threshold:          0.3,
		CategoryWeight:     0.5,
		FavoriteWeight:     0.3,
		PriceOverlapWeight: 0.2,
		MaxUsers:           200,
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"half overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"one empty", []string{"a"}, nil, 0},
		{"both empty", nil, nil, 0},
		{"duplicates collapse", []string{"a", "a", "b"}, []string{"a", "b"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPriceOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		aMin, aMax, bMin, bMax float64
		want                   float64
	}{
		{"identical ranges", 2, 6, 2, 6, 1},
		{"disjoint ranges", 2, 4, 6, 8, 0},
		{"half overlap", 0.01, 4, 2, 6, 2.0 / 5.99},
		{"unset range", 0, 0, 2, 6, 0},
		{"same single price", 5, 5, 5, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priceOverlap(tt.aMin, tt.aMax, tt.bMin, tt.bMax)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("priceOverlap() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	cfg := similarityTestConfig()

	a := behavior.Preferences{
		Categories:             []string{"panaderia", "sushi"},
		FavoriteEstablishments: []string{"est-1"},
		PriceMin:               3, PriceMax: 6,
	}

	t.Run("identical profiles score 1", func(t *testing.T) {
		if got := Similarity(cfg, a, a); math.Abs(got-1) > 1e-9 {
			t.Errorf("Similarity(a, a) = %f, want 1", got)
		}
	})

	t.Run("empty profile scores 0", func(t *testing.T) {
		if got := Similarity(cfg, a, behavior.Preferences{}); got != 0 {
			t.Errorf("Similarity(a, empty) = %f, want 0", got)
		}
	})

	t.Run("partial overlap is between", func(t *testing.T) {
		b := behavior.Preferences{
			Categories:             []string{"sushi", "tacos"},
			FavoriteEstablishments: []string{"est-2"},
			PriceMin:               3, PriceMax: 6,
		}
		got := Similarity(cfg, a, b)
		if got <= 0 || got >= 1 {
			t.Errorf("Similarity(a, b) = %f, want in (0, 1)", got)
		}
	})
}

func TestSimilarUsers_Score(t *testing.T) {
	store := behavior.NewMemoryStore()
	ctx := context.Background()

	me := &behavior.UserBehavior{
		UserID: "me",
		Preferences: behavior.Preferences{
			Categories:             []string{"panaderia", "sushi"},
			FavoriteEstablishments: []string{"est-1"},
			PriceMin:               3, PriceMax: 6,
		},
	}
	twin := &behavior.UserBehavior{
		UserID: "twin",
		Preferences: behavior.Preferences{
			Categories:             []string{"panaderia", "sushi"},
			FavoriteEstablishments: []string{"est-1"},
			PriceMin:               3, PriceMax: 6,
		},
		History: behavior.History{
			Purchases: []behavior.Purchase{
				{PackID: "p1", EstablishmentID: "est-1", Price: 4, Timestamp: time.Now()},
				{PackID: "not-a-candidate", EstablishmentID: "est-2", Price: 4, Timestamp: time.Now()},
			},
		},
	}
	stranger := &behavior.UserBehavior{
		UserID: "stranger",
		Preferences: behavior.Preferences{
			Categories:             []string{"parrilla"},
			FavoriteEstablishments: []string{"est-9"},
			PriceMin:               20, PriceMax: 40,
		},
		History: behavior.History{
			Purchases: []behavior.Purchase{
				{PackID: "p2", EstablishmentID: "est-9", Price: 30, Timestamp: time.Now()},
			},
		},
	}
	for _, ub := range []*behavior.UserBehavior{me, twin, stranger} {
		if err := store.Put(ctx, ub); err != nil {
			t.Fatalf("Put(%s) error = %v", ub.UserID, err)
		}
	}

	sig := NewSimilarUsers(similarityTestConfig(), store)
	recs, err := sig.Score(ctx, recommend.Input{
		UserID:   "me",
		Behavior: me,
		Offers: []recommend.Offer{
			{ID: "p1", EstablishmentID: "est-1"},
			{ID: "p2", EstablishmentID: "est-9"},
		},
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if len(recs) != 1 {
		t.Fatalf("Score() returned %d recommendations, want 1 (twin's candidate purchase only)", len(recs))
	}
	if recs[0].PackID != "p1" {
		t.Errorf("PackID = %q, want %q", recs[0].PackID, "p1")
	}
	if math.Abs(recs[0].Score-1) > 1e-9 {
		t.Errorf("score = %f, want similarity 1 for identical profiles", recs[0].Score)
	}
}

func TestSimilarUsers_NoBehaviorSkipsSignal(t *testing.T) {
	sig := NewSimilarUsers(similarityTestConfig(), behavior.NewMemoryStore())

	recs, err := sig.Score(context.Background(), recommend.Input{
		UserID: "anon",
		Offers: []recommend.Offer{{ID: "p1"}},
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Score() without behavior returned %d recommendations, want 0", len(recs))
	}
}
