// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package signals

import (
	"context"
	"sort"
	"sync"

	"github.com/tugotugo/insight/internal/recommend"
)

// Trending flags the offers with the deepest absolute discount among
// those still in stock. It needs no user data at all, so it is the signal
// of last resort for anonymous users.
//
// A supervised refresher may prime the trending set periodically via
// Refresh; without a primed snapshot the signal computes the set from the
// request's own candidates on the fly.
type Trending struct {
	cfg recommend.TrendingConfig

	mu       sync.RWMutex
	snapshot map[string]struct{}
}

var _ recommend.Signal = (*Trending)(nil)

// NewTrending creates the trending signal.
func NewTrending(cfg recommend.TrendingConfig) *Trending {
	return &Trending{cfg: cfg}
}

// Name implements recommend.Signal.
func (s *Trending) Name() string { return recommend.SignalTrending }

// Refresh recomputes the trending set from a full offer snapshot.
func (s *Trending) Refresh(offers []recommend.Offer) {
	top := topByDiscount(offers, s.cfg.TopN)

	s.mu.Lock()
	s.snapshot = top
	s.mu.Unlock()
}

// Score implements recommend.Signal.
func (s *Trending) Score(_ context.Context, in recommend.Input) ([]recommend.Recommendation, error) {
	s.mu.RLock()
	trending := s.snapshot
	s.mu.RUnlock()

	if trending == nil {
		trending = topByDiscount(in.Offers, s.cfg.TopN)
	}

	recs := make([]recommend.Recommendation, 0, len(trending))
	for _, offer := range in.Offers {
		if _, ok := trending[offer.ID]; !ok {
			continue
		}
		recs = append(recs, recommend.Recommendation{
			PackID:     offer.ID,
			Score:      s.cfg.Score,
			Reasons:    []string{"Entre los packs con mayor descuento ahora mismo"},
			Signal:     recommend.SignalTrending,
			Confidence: s.cfg.Score,
		})
	}
	return recs, nil
}

// topByDiscount returns the IDs of the n in-stock offers with the largest
// originalPrice − discountedPrice gap.
func topByDiscount(offers []recommend.Offer, n int) map[string]struct{} {
	inStock := make([]recommend.Offer, 0, len(offers))
	for _, offer := range offers {
		if offer.Quantity > 0 {
			inStock = append(inStock, offer)
		}
	}

	sort.Slice(inStock, func(i, j int) bool {
		di := inStock[i].OriginalPrice - inStock[i].DiscountedPrice
		dj := inStock[j].OriginalPrice - inStock[j].DiscountedPrice
		if di != dj {
			return di > dj
		}
		return inStock[i].ID < inStock[j].ID
	})
	if len(inStock) > n {
		inStock = inStock[:n]
	}

	top := make(map[string]struct{}, len(inStock))
	for _, offer := range inStock {
		top[offer.ID] = struct{}{}
	}
	return top
}
