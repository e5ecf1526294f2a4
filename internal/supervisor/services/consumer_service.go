// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// EventConsumer is the blocking run loop of the behavior event consumer.
type EventConsumer interface {
	Run(ctx context.Context) error
}

// ConsumerService supervises the behavior event consumer. A crash in
// the consumer is restarted by suture without touching the bus or the
// store.
type ConsumerService struct {
	consumer EventConsumer
	logger   zerolog.Logger
	name     string
}

// NewConsumerService creates a new consumer service wrapper.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumerService(consumer EventConsumer, logger zerolog.Logger) *ConsumerService {
	return &ConsumerService{
		consumer: consumer,
		logger:   logger.With().Str("service", "event-consumer").Logger(),
		name:     "event-consumer",
	}
}

// Serve implements suture.Service.
func (s *ConsumerService) Serve(ctx context.Context) error {
	s.logger.Info().Msg("event consumer starting")

	err := s.consumer.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error().Err(err).Msg("event consumer stopped")
		return err
	}

	s.logger.Info().Msg("event consumer shutting down")
	return ctx.Err()
}

// String returns the service name for logging.
func (s *ConsumerService) String() string {
	return s.name
}
