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

func historyTestBehavior() *behavior.UserBehavior {
	return &behavior.UserBehavior{
		UserID: "u1",
		Preferences: behavior.Preferences{
			FavoriteEstablishments: []string{"est-1"},
			PriceMin:               3,
			PriceMax:               6,
			PreferredHours:         []int{13},
		},
		History: behavior.History{
			Purchases: []behavior.Purchase{
				{PackID: "old", EstablishmentID: "est-1", Price: 4, Timestamp: time.Now()},
			},
		},
	}
}

func TestHistory_Score(t *testing.T) {
	cfg := recommend.HistoryConfig{EstablishmentBonus: 0.3, PriceBandBonus: 0.2, HourBonus: 0.1}
	sig := NewHistory(cfg)
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		offer     recommend.Offer
		wantScore float64
	}{
		{
			name:      "all three rules",
			offer:     recommend.Offer{ID: "p1", EstablishmentID: "est-1", DiscountedPrice: 4.5},
			wantScore: 0.6,
		},
		{
			name:      "establishment only",
			offer:     recommend.Offer{ID: "p2", EstablishmentID: "est-1", DiscountedPrice: 20},
			wantScore: 0.3 + 0.1,
		},
		{
			name:      "price band and hour without establishment",
			offer:     recommend.Offer{ID: "p3", EstablishmentID: "est-9", DiscountedPrice: 5},
			wantScore: 0.2 + 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := sig.Score(context.Background(), recommend.Input{
				Behavior: historyTestBehavior(),
				Offers:   []recommend.Offer{tt.offer},
				Now:      now,
			})
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if len(recs) != 1 {
				t.Fatalf("Score() returned %d recommendations, want 1", len(recs))
			}
			if math.Abs(recs[0].Score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %f, want %f", recs[0].Score, tt.wantScore)
			}
		})
	}
}

func TestHistory_DropsZeroScoreCandidates(t *testing.T) {
	sig := NewHistory(recommend.HistoryConfig{EstablishmentBonus: 0.3, PriceBandBonus: 0.2, HourBonus: 0.1})
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) // not a preferred hour

	recs, err := sig.Score(context.Background(), recommend.Input{
		Behavior: historyTestBehavior(),
		Offers: []recommend.Offer{
			{ID: "no-match", EstablishmentID: "est-9", DiscountedPrice: 50},
		},
		Now: now,
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Score() returned %d recommendations, want zero-score candidates dropped", len(recs))
	}
}

func TestHistory_NoBehaviorSkipsSignal(t *testing.T) {
	sig := NewHistory(recommend.HistoryConfig{EstablishmentBonus: 0.3})

	recs, err := sig.Score(context.Background(), recommend.Input{
		Offers: []recommend.Offer{{ID: "p1", EstablishmentID: "est-1"}},
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Score() without behavior returned %d recommendations, want 0", len(recs))
	}
}
