// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package signals

import (
	"context"
	"fmt"

	"github.com/tugotugo/insight/internal/recommend"
)

const locationConfidence = 0.9

// Location scores offers by geographic proximity. Offers beyond the
// user's search radius are excluded from the signal entirely, not scored
// zero, so distant packs can still surface through other signals.
type Location struct {
	cfg recommend.LocationConfig
}

var _ recommend.Signal = (*Location)(nil)

// NewLocation creates the proximity signal.
func NewLocation(cfg recommend.LocationConfig) *Location {
	return &Location{cfg: cfg}
}

// Name implements recommend.Signal.
func (s *Location) Name() string { return recommend.SignalLocation }

// Score implements recommend.Signal. A request without a location skips
// the signal entirely.
func (s *Location) Score(_ context.Context, in recommend.Input) ([]recommend.Recommendation, error) {
	if in.Location == nil {
		return nil, nil
	}

	radius := s.cfg.DefaultRadiusMeters
	if in.Behavior != nil && in.Behavior.Preferences.SearchRadiusMeters > 0 {
		radius = in.Behavior.Preferences.SearchRadiusMeters
	}

	recs := make([]recommend.Recommendation, 0, len(in.Offers))
	for _, offer := range in.Offers {
		dist := HaversineMeters(in.Location.Latitude, in.Location.Longitude, offer.Latitude, offer.Longitude)
		if dist > radius {
			continue
		}

		rec := recommend.Recommendation{
			PackID:     offer.ID,
			Score:      1 - dist/radius,
			Reasons:    []string{fmt.Sprintf("A %.0f m de tu ubicación", dist)},
			Signal:     recommend.SignalLocation,
			Confidence: locationConfidence,
		}

		if in.Behavior != nil && priceInRange(offer.DiscountedPrice, in.Behavior.Preferences.PriceMin, in.Behavior.Preferences.PriceMax) {
			rec.Score += s.cfg.PriceMatchBonus
			rec.Reasons = append(rec.Reasons, "Precio dentro de tu rango habitual")
		}

		recs = append(recs, rec)
	}
	return recs, nil
}

// priceInRange reports whether price falls inside a non-empty [min, max].
func priceInRange(price, min, max float64) bool {
	if min == 0 && max == 0 {
		return false
	}
	return price >= min && price <= max
}
