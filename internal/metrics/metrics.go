// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package metrics defines the Prometheus instruments exported at
// /metrics. All instruments are registered on the default registry at
// init via promauto; packages just import and use them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP server instruments.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "insight_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// Recommendation engine instruments.
var (
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_recommendation_requests_total",
		Help: "Recommendation requests by cache outcome (hit|miss).",
	}, []string{"cache"})

	RecommendationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_recommendation_latency_seconds",
		Help:    "End-to-end recommendation latency.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	SignalContributions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_recommendation_signal_contributions_total",
		Help: "Times each signal contributed to a response.",
	}, []string{"signal"})
)

// Chat instruments.
var (
	ChatTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_chat_turns_total",
		Help: "Processed chat turns by detected intent.",
	}, []string{"intent"})
)

// Sentiment instruments.
var (
	SentimentAnalyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_sentiment_analyses_total",
		Help: "Sentiment analyses by resulting label.",
	}, []string{"label"})
)

// Behavior tracking instruments.
var (
	BehaviorEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_behavior_events_total",
		Help: "Tracked behavior events by action and outcome (ok|error).",
	}, []string{"action", "outcome"})
)

// Offer source instruments.
var (
	OfferFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_offer_fetches_total",
		Help: "Upstream offer fetches by outcome (ok|error|rejected).",
	}, []string{"outcome"})

	OffersAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "insight_offers_available",
		Help: "Candidate offers in the latest upstream snapshot.",
	})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "insight_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	}, []string{"name"})
)
