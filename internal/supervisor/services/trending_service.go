// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/metrics"
	"github.com/tugotugo/insight/internal/recommend"
)

// TrendingRefresher receives a fresh offer snapshot to rank.
type TrendingRefresher interface {
	Refresh(offers []recommend.Offer)
}

// TrendingService periodically re-primes the trending signal with the
// current offer snapshot, so per-request scoring never has to rank the
// full candidate set itself.
type TrendingService struct {
	source    recommend.OfferSource
	refresher TrendingRefresher
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewTrendingService creates a new trending refresher service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTrendingService(source recommend.OfferSource, refresher TrendingRefresher, interval time.Duration, logger zerolog.Logger) *TrendingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &TrendingService{
		source:    source,
		refresher: refresher,
		interval:  interval,
		logger:    logger.With().Str("service", "trending-refresh").Logger(),
		name:      "trending-refresh",
	}
}

// Serve implements suture.Service. It refreshes once on startup and
// then on every tick; a failed fetch keeps the previous snapshot.
func (s *TrendingService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("trending refresher starting")

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trending refresher shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *TrendingService) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	offers, err := s.source.Candidates(fetchCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("offer refresh failed, keeping previous snapshot")
		return
	}

	s.refresher.Refresh(offers)
	metrics.OffersAvailable.Set(float64(len(offers)))
	s.logger.Debug().Int("offers", len(offers)).Msg("trending snapshot refreshed")
}

// String returns the service name for logging.
func (s *TrendingService) String() string {
	return s.name
}
