// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package offers supplies candidate offer snapshots to the
// recommendation engine, either from a fixed in-memory set or from an
// upstream marketplace API behind a rate limiter and circuit breaker.
package offers

import (
	"context"
	"sync"

	"github.com/tugotugo/insight/internal/recommend"
)

// StaticSource serves a snapshot held in memory. It backs tests,
// single-process embedding and the demo configuration.
type StaticSource struct {
	mu     sync.RWMutex
	offers []recommend.Offer
}

var _ recommend.OfferSource = (*StaticSource)(nil)

// NewStaticSource creates a source over a fixed snapshot.
func NewStaticSource(offers []recommend.Offer) *StaticSource {
	s := &StaticSource{}
	s.Replace(offers)
	return s
}

// Candidates implements recommend.OfferSource.
func (s *StaticSource) Candidates(context.Context) ([]recommend.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recommend.Offer, len(s.offers))
	copy(out, s.offers)
	return out, nil
}

// Replace swaps the snapshot.
func (s *StaticSource) Replace(offers []recommend.Offer) {
	cp := make([]recommend.Offer, len(offers))
	copy(cp, offers)

	s.mu.Lock()
	s.offers = cp
	s.mu.Unlock()
}
