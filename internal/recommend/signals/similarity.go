// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package signals

import (
	"context"
	"fmt"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/recommend"
)

// SimilarUsers is the collaborative signal: it finds other users whose
// behavior profile resembles the requesting user's, then boosts candidate
// packs those users have actually purchased. The raw score of a match is
// the similarity value itself, so closer taste twins weigh more.
type SimilarUsers struct {
	cfg   recommend.SimilarityConfig
	store behavior.Store
}

var _ recommend.Signal = (*SimilarUsers)(nil)

// NewSimilarUsers creates the collaborative signal.
func NewSimilarUsers(cfg recommend.SimilarityConfig, store behavior.Store) *SimilarUsers {
	return &SimilarUsers{cfg: cfg, store: store}
}

// Name implements recommend.Signal.
func (s *SimilarUsers) Name() string { return recommend.SignalSimilarUsers }

// Score implements recommend.Signal. Zero similar users yields an empty
// contribution, which is a normal condition.
func (s *SimilarUsers) Score(ctx context.Context, in recommend.Input) ([]recommend.Recommendation, error) {
	if in.Behavior == nil || s.store == nil {
		return nil, nil
	}

	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users for similarity scan: %w", err)
	}
	if len(userIDs) > s.cfg.MaxUsers {
		userIDs = userIDs[:s.cfg.MaxUsers]
	}

	candidates := make(map[string]struct{}, len(in.Offers))
	for _, offer := range in.Offers {
		candidates[offer.ID] = struct{}{}
	}

	recs := make([]recommend.Recommendation, 0, 8)
	for _, otherID := range userIDs {
		if otherID == in.UserID {
			continue
		}
		other, err := s.store.Get(ctx, otherID)
		if err != nil {
			// A record listed but unreadable is skipped, not fatal.
			continue
		}

		sim := Similarity(s.cfg, in.Behavior.Preferences, other.Preferences)
		if sim <= s.cfg.Threshold {
			continue
		}

		for _, purchase := range other.History.Purchases {
			if _, ok := candidates[purchase.PackID]; !ok {
				continue
			}
			recs = append(recs, recommend.Recommendation{
				PackID:     purchase.PackID,
				Score:      sim,
				Reasons:    []string{"A usuarios con gustos parecidos también les gustó"},
				Signal:     recommend.SignalSimilarUsers,
				Confidence: sim,
			})
		}
	}
	return recs, nil
}

// Similarity computes the behavior similarity of two preference profiles:
// a weighted blend of category-set Jaccard, favorite-establishment-set
// Jaccard and price-range overlap ratio. Result is in [0, 1].
func Similarity(cfg recommend.SimilarityConfig, a, b behavior.Preferences) float64 {
	return cfg.CategoryWeight*jaccard(a.Categories, b.Categories) +
		cfg.FavoriteWeight*jaccard(a.FavoriteEstablishments, b.FavoriteEstablishments) +
		cfg.PriceOverlapWeight*priceOverlap(a.PriceMin, a.PriceMax, b.PriceMin, b.PriceMax)
}

// jaccard computes |A∩B| / |A∪B| over string sets. Two empty sets have
// zero similarity, not full.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// priceOverlap is the ratio of the overlapping span of two price ranges
// to their combined span, in [0, 1]. Unset ranges (both bounds zero)
// contribute nothing.
func priceOverlap(aMin, aMax, bMin, bMax float64) float64 {
	if (aMin == 0 && aMax == 0) || (bMin == 0 && bMax == 0) {
		return 0
	}

	low := aMin
	if bMin > low {
		low = bMin
	}
	high := aMax
	if bMax < high {
		high = bMax
	}
	if high < low {
		return 0
	}

	unionLow := aMin
	if bMin < unionLow {
		unionLow = bMin
	}
	unionHigh := aMax
	if bMax > unionHigh {
		unionHigh = bMax
	}
	if unionHigh == unionLow {
		// Both ranges collapse to the same single price.
		return 1
	}
	return (high - low) / (unionHigh - unionLow)
}
