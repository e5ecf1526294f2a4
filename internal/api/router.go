// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package api exposes the intelligence services over HTTP: recommendations,
// behavior tracking, review analytics, the chat assistant (REST and
// WebSocket) and the forecast simulator.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/chat"
	"github.com/tugotugo/insight/internal/config"
	"github.com/tugotugo/insight/internal/events"
	"github.com/tugotugo/insight/internal/forecast"
	"github.com/tugotugo/insight/internal/metrics"
	"github.com/tugotugo/insight/internal/recommend"
	"github.com/tugotugo/insight/internal/sentiment"
)

// Handler bundles the services the HTTP layer fronts.
type Handler struct {
	engine    *recommend.Engine
	source    recommend.OfferSource
	store     behavior.Store
	publisher *events.Publisher
	chat      *chat.Orchestrator
	analyzer  *sentiment.Analyzer
	simulator *forecast.Simulator
	sessions  *sessionStore
	logger    zerolog.Logger
}

// NewHandler wires the services into an HTTP handler set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(
	engine *recommend.Engine,
	source recommend.OfferSource,
	store behavior.Store,
	publisher *events.Publisher,
	orchestrator *chat.Orchestrator,
	analyzer *sentiment.Analyzer,
	simulator *forecast.Simulator,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		engine:    engine,
		source:    source,
		store:     store,
		publisher: publisher,
		chat:      orchestrator,
		analyzer:  analyzer,
		simulator: simulator,
		sessions:  newSessionStore(30 * time.Minute),
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// Routes builds the full router with the global middleware stack.
func (h *Handler) Routes(cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/v1/health", h.Health)
	r.Get("/api/v1/health/live", h.Health)
	r.Get("/api/v1/health/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RequestsPerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RequestsPerMinute, time.Minute))
		}
		r.Use(prometheusMiddleware)

		r.Get("/recommendations/user/{userID}", h.Recommendations)
		r.Get("/recommendations/similar/{offerID}", h.SimilarOffers)

		r.Post("/behavior/track", h.TrackBehavior)
		r.Get("/behavior/user/{userID}", h.BehaviorProfile)

		r.Post("/chat/message", h.ChatMessage)
		r.Get("/chat/ws", h.ChatWebSocket)
		r.Get("/chat/session/{sessionID}/satisfaction", h.ChatSatisfaction)

		r.Post("/reviews/analyze", h.AnalyzeReview)
		r.Post("/reviews/pack/{packID}", h.AnalyzePackReviews)

		r.Get("/forecast/demand/{offerID}", h.DemandForecast)
		r.Get("/forecast/pricing/{offerID}", h.PackPricing)
		r.Post("/forecast/price", h.SuggestPrice)
		r.Get("/forecast/churn/{userID}", h.ChurnRisk)
	})

	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness: the offer source must be answering.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.source.Candidates(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, "not_ready", "offer source is unavailable", err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

// prometheusMiddleware records request counts and latency per route.
func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
