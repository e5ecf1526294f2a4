// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package signals

import (
	"context"

	"github.com/tugotugo/insight/internal/recommend"
)

const historyConfidence = 0.8

// History scores offers against the user's own purchase record: favorite
// establishments, historical price band and habitual purchase hours.
// Candidates matching none of the three rules are dropped from the
// signal. Users without a behavior record skip the signal entirely.
type History struct {
	cfg recommend.HistoryConfig
}

var _ recommend.Signal = (*History)(nil)

// NewHistory creates the purchase-history signal.
func NewHistory(cfg recommend.HistoryConfig) *History {
	return &History{cfg: cfg}
}

// Name implements recommend.Signal.
func (s *History) Name() string { return recommend.SignalHistory }

// Score implements recommend.Signal.
func (s *History) Score(_ context.Context, in recommend.Input) ([]recommend.Recommendation, error) {
	if in.Behavior == nil || len(in.Behavior.History.Purchases) == 0 {
		return nil, nil
	}

	prefs := in.Behavior.Preferences
	favorites := make(map[string]struct{}, len(prefs.FavoriteEstablishments))
	for _, id := range prefs.FavoriteEstablishments {
		favorites[id] = struct{}{}
	}
	hours := make(map[int]struct{}, len(prefs.PreferredHours))
	for _, h := range prefs.PreferredHours {
		hours[h] = struct{}{}
	}

	recs := make([]recommend.Recommendation, 0, len(in.Offers))
	for _, offer := range in.Offers {
		rec := recommend.Recommendation{
			PackID:     offer.ID,
			Signal:     recommend.SignalHistory,
			Confidence: historyConfidence,
		}

		if _, ok := favorites[offer.EstablishmentID]; ok {
			rec.Score += s.cfg.EstablishmentBonus
			rec.Reasons = append(rec.Reasons, "Ya has comprado en este establecimiento")
		}
		if priceInRange(offer.DiscountedPrice, prefs.PriceMin, prefs.PriceMax) {
			rec.Score += s.cfg.PriceBandBonus
			rec.Reasons = append(rec.Reasons, "Precio similar a tus compras anteriores")
		}
		if _, ok := hours[in.Now.Hour()]; ok {
			rec.Score += s.cfg.HourBonus
			rec.Reasons = append(rec.Reasons, "Disponible a tu hora habitual de compra")
		}

		if rec.Score > 0 {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}
