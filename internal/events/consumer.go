// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/metrics"
)

// CacheInvalidator drops cached recommendations for a user after their
// behavior changes. Implemented by the recommendation engine.
type CacheInvalidator interface {
	InvalidateUser(userID string)
}

// Consumer applies behavior events to the tracker. A single consumer per
// topic keeps same-user events in arrival order on top of the tracker's
// own per-user locking.
type Consumer struct {
	sub         message.Subscriber
	tracker     *behavior.Tracker
	invalidator CacheInvalidator
	logger      zerolog.Logger
}

// NewConsumer creates the behavior-event consumer. invalidator may be
// nil when no cache needs flushing.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConsumer(sub message.Subscriber, tracker *behavior.Tracker, invalidator CacheInvalidator, logger zerolog.Logger) *Consumer {
	return &Consumer{
		sub:         sub,
		tracker:     tracker,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "events").Logger(),
	}
}

// Run consumes behavior events until the context is canceled. Malformed
// or rejected events are acked and counted, not retried: replaying them
// would fail identically.
func (c *Consumer) Run(ctx context.Context) error {
	messages, err := c.sub.Subscribe(ctx, TopicBehavior)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicBehavior, err)
	}

	c.logger.Info().Str("topic", TopicBehavior).Msg("behavior consumer started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var event BehaviorEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("malformed behavior event")
		metrics.BehaviorEvents.WithLabelValues("invalid", "error").Inc()
		return
	}

	if event.Data.Timestamp.IsZero() {
		event.Data.Timestamp = event.Timestamp
	}

	if err := c.tracker.Track(ctx, event.UserID, event.Action, event.Data); err != nil {
		c.logger.Error().Err(err).
			Str("user_id", event.UserID).
			Str("action", string(event.Action)).
			Msg("track behavior event")
		metrics.BehaviorEvents.WithLabelValues(string(event.Action), "error").Inc()
		return
	}

	metrics.BehaviorEvents.WithLabelValues(string(event.Action), "ok").Inc()
	if c.invalidator != nil {
		c.invalidator.InvalidateUser(event.UserID)
	}
}
