// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package services

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const gcDiscardRatio = 0.5

// ValueLogGC runs one round of value-log garbage collection.
type ValueLogGC interface {
	RunGC(discardRatio float64) error
}

// GCService periodically garbage-collects the Badger value log. Badger
// never reclaims value-log space on its own; without this loop the
// store grows without bound.
type GCService struct {
	store    ValueLogGC
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewGCService creates a new value-log GC service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGCService(store ValueLogGC, interval time.Duration, logger zerolog.Logger) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "badger-gc").Logger(),
		name:     "badger-gc",
	}
}

// Serve implements suture.Service. Each tick runs GC rounds until
// badger reports nothing left to rewrite.
func (s *GCService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("value-log gc starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("value-log gc shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *GCService) collect() {
	rounds := 0
	for {
		err := s.store.RunGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("value-log gc round failed")
			return
		}
		rounds++
	}
	if rounds > 0 {
		s.logger.Debug().Int("rounds", rounds).Msg("value-log gc complete")
	}
}

// String returns the service name for logging.
func (s *GCService) String() string {
	return s.name
}
