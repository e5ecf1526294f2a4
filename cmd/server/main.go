// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package main is the entry point for the Insight server.
//
// Insight is the intelligence layer of the TugoTugo surplus-food
// marketplace: multi-signal pack recommendations, behavior tracking,
// Spanish-language review sentiment analysis, a conversational
// assistant and demand/price/churn forecasting.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, INSIGHT_ environment
//     variables (Koanf v2)
//  2. Storage: BadgerDB behavior store (or in-memory for development)
//  3. Offer source: upstream marketplace API behind a circuit breaker,
//     or the bundled demo snapshot
//  4. Recommendation engine with its four scoring signals
//  5. Event bus: Watermill in-process pub/sub feeding the behavior
//     tracker
//  6. Chat orchestrator, sentiment analyzer and forecast simulator
//  7. Supervisor tree: HTTP server, event consumer, trending refresher
//     and storage GC under Suture supervision
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (INSIGHT_SERVER__PORT=8080)
//   - Config file (config.yaml, or the path in INSIGHT_CONFIG)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: the
// supervisor tree stops accepting connections, waits for in-flight
// requests up to server.shutdown_timeout, then closes the bus and the
// store.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tugotugo/insight/internal/api"
	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/chat"
	"github.com/tugotugo/insight/internal/config"
	"github.com/tugotugo/insight/internal/events"
	"github.com/tugotugo/insight/internal/forecast"
	"github.com/tugotugo/insight/internal/intent"
	"github.com/tugotugo/insight/internal/logging"
	"github.com/tugotugo/insight/internal/offers"
	"github.com/tugotugo/insight/internal/recommend"
	"github.com/tugotugo/insight/internal/recommend/signals"
	"github.com/tugotugo/insight/internal/sentiment"
	"github.com/tugotugo/insight/internal/supervisor"
	"github.com/tugotugo/insight/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The configured logger is not available yet.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}); err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize logging")
	}
	logger := logging.Logger()

	logger.Info().
		Str("addr", cfg.ListenAddr()).
		Str("storage", cfg.Storage.Backend).
		Str("offers", cfg.Offers.Backend).
		Msg("starting insight")

	// Behavior store.
	var store behavior.Store
	var badgerStore *behavior.BadgerStore
	switch cfg.Storage.Backend {
	case "badger":
		badgerStore, err = behavior.OpenBadgerStore(cfg.Storage.Path, logger)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("failed to open behavior store")
		}
		defer func() {
			if err := badgerStore.Close(); err != nil {
				logging.Error().Err(err).Msg("failed to close behavior store")
			}
		}()
		store = badgerStore
	default:
		store = behavior.NewMemoryStore()
	}

	// Candidate offer source.
	var source recommend.OfferSource
	switch cfg.Offers.Backend {
	case "http":
		source, err = offers.NewHTTPSource(cfg.Offers.HTTP, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to create offer source")
		}
	default:
		source = offers.NewStaticSource(offers.DemoOffers())
	}

	// Recommendation engine and its signals.
	engine, err := recommend.NewEngine(&cfg.Recommend, source, store, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create recommendation engine")
	}
	trending := signals.NewTrending(cfg.Recommend.Trending)
	engine.RegisterSignal(signals.NewLocation(cfg.Recommend.Location))
	engine.RegisterSignal(signals.NewHistory(cfg.Recommend.History))
	engine.RegisterSignal(signals.NewSimilarUsers(cfg.Recommend.Similarity, store))
	engine.RegisterSignal(trending)

	// Behavior event pipeline.
	bus := events.NewGoChannel(logger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close event bus")
		}
	}()
	tracker := behavior.NewTracker(store, behavior.Retention{MaxEvents: cfg.Behavior.RetentionMaxEvents}, logger)
	consumer := events.NewConsumer(bus, tracker, engine, logger)
	publisher := events.NewPublisher(bus)

	// Conversation and analysis components.
	detector, err := intent.NewDefault()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build intent detector")
	}
	analyzer := sentiment.New(sentiment.DefaultConfig())
	orchestrator := chat.NewOrchestrator(detector, analyzer, engine, cfg.Chat.Seed, logger)
	simulator := forecast.NewSimulator(cfg.Forecast.Seed, cfg.Forecast.EmbeddingDim)

	handler := api.NewHandler(engine, source, store, publisher, orchestrator, analyzer, simulator, logger)
	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler.Routes(cfg.Server),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Supervisor tree.
	tree := supervisor.NewTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddPipelineService(services.NewConsumerService(consumer, logger))
	tree.AddPipelineService(services.NewTrendingService(source, trending, cfg.Recommend.Trending.RefreshInterval, logger))
	if badgerStore != nil {
		tree.AddDataService(services.NewGCService(badgerStore, cfg.Storage.GCInterval, logger))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Fatal().Err(err).Msg("supervisor tree failed")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop in time")
		}
	}

	logger.Info().Msg("insight stopped")
}
