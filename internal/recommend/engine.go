// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package recommend blends four independent scoring signals (location
// proximity, purchase history, similar users, trending offers) into a
// ranked recommendation list for a user.
//
// The package has no dependencies on transport or storage beyond the
// OfferSource and behavior.Store interfaces, so it can be embedded in any
// caller that supplies in-memory snapshots.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/behavior"
)

// OfferSource supplies the candidate offers for a request. Implemented by
// the offers package; injected so tests can use static snapshots.
type OfferSource interface {
	// Candidates returns the currently available offers.
	Candidates(ctx context.Context) ([]Offer, error)
}

// Engine coordinates the signals and produces final recommendations.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	signals []Signal
	sigMu   sync.RWMutex

	source OfferSource
	store  behavior.Store

	cache   map[string]cacheEntry
	cacheMu sync.RWMutex

	rng   *rand.Rand
	rngMu sync.Mutex
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, source OfferSource, store behavior.Store, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		signals: make([]Signal, 0, 4),
		source:  source,
		store:   store,
		cache:   make(map[string]cacheEntry),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // request IDs only
	}, nil
}

// RegisterSignal adds a signal to the blend.
func (e *Engine) RegisterSignal(sig Signal) {
	e.sigMu.Lock()
	defer e.sigMu.Unlock()

	e.signals = append(e.signals, sig)
	e.logger.Info().Str("signal", sig.Name()).Msg("registered signal")
}

// Recommend generates recommendations for a user. Missing optional inputs
// (no location, no history, no similar users) degrade to fewer signals;
// an empty candidate list yields an empty response. Neither is an error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	req = e.prepareRequest(req)

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()

	if resp := e.checkCache(cacheKey(req)); resp != nil {
		resp.Metadata.CacheHit = true
		resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	offers, err := e.source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("get candidate offers: %w", err)
	}
	if len(offers) > e.config.Limits.MaxCandidates {
		offers = offers[:e.config.Limits.MaxCandidates]
	}
	if len(offers) == 0 {
		logger.Debug().Msg("no candidate offers")
		return e.buildResponse(req, nil, []string{}, 0, start), nil
	}

	in := Input{
		UserID:   req.UserID,
		Location: req.Location,
		Behavior: e.loadBehavior(ctx, req.UserID, logger),
		Offers:   offers,
		Now:      time.Now(),
	}

	merged, signalsUsed := e.runSignals(ctx, in)

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		return merged[i].PackID < merged[j].PackID
	})
	if len(merged) > req.Limit {
		merged = merged[:req.Limit]
	}

	resp := e.buildResponse(req, merged, signalsUsed, len(offers), start)
	e.storeCache(cacheKey(req), resp)

	logger.Debug().
		Int("candidates", len(offers)).
		Int("returned", len(merged)).
		Strs("signals", signalsUsed).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = e.generateRequestID()
	}
	if req.Limit <= 0 {
		req.Limit = e.config.Limits.DefaultLimit
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}
	return req
}

// loadBehavior resolves the user's behavior record. An untracked user is
// a normal condition and resolves to nil.
func (e *Engine) loadBehavior(ctx context.Context, userID string, logger zerolog.Logger) *behavior.UserBehavior {
	if e.store == nil || userID == "" {
		return nil
	}
	ub, err := e.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, behavior.ErrNotFound) {
			logger.Warn().Err(err).Msg("behavior lookup failed, degrading to anonymous signals")
		}
		return nil
	}
	return ub
}

// signalResult holds one signal's raw output.
type signalResult struct {
	name string
	recs []Recommendation
	err  error
}

// runSignals executes all registered signals in parallel, applies the
// configured weights and merges partial recommendations by pack ID.
func (e *Engine) runSignals(ctx context.Context, in Input) ([]Recommendation, []string) {
	e.sigMu.RLock()
	signals := e.signals
	e.sigMu.RUnlock()

	results := make([]signalResult, len(signals))
	var wg sync.WaitGroup
	for i, sig := range signals {
		wg.Add(1)
		go func(idx int, s Signal) {
			defer wg.Done()
			sigCtx, cancel := context.WithTimeout(ctx, e.config.Limits.SignalTimeout)
			defer cancel()

			recs, err := s.Score(sigCtx, in)
			results[idx] = signalResult{name: s.Name(), recs: recs, err: err}
		}(i, sig)
	}
	wg.Wait()

	weights := e.config.Weights.Normalize().ToMap()
	byPack := make(map[string]Recommendation)
	signalsUsed := make([]string, 0, len(results))

	for _, result := range results {
		if result.err != nil {
			e.logger.Warn().Str("signal", result.name).Err(result.err).Msg("signal failed")
			continue
		}
		if len(result.recs) == 0 {
			continue
		}
		weight := weights[result.name]
		if weight <= 0 {
			continue
		}
		signalsUsed = append(signalsUsed, result.name)

		for _, rec := range result.recs {
			rec.Score *= weight
			if existing, ok := byPack[rec.PackID]; ok {
				byPack[rec.PackID] = existing.Merge(rec)
			} else {
				byPack[rec.PackID] = rec
			}
		}
	}

	merged := make([]Recommendation, 0, len(byPack))
	for _, rec := range byPack {
		merged = append(merged, rec)
	}
	return merged, signalsUsed
}

// buildResponse constructs the final response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, recs []Recommendation, signalsUsed []string, candidates int, start time.Time) *Response {
	if recs == nil {
		recs = []Recommendation{}
	}
	return &Response{
		Recommendations: recs,
		TotalCandidates: candidates,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			UserID:      req.UserID,
			SignalsUsed: signalsUsed,
			LatencyMS:   time.Since(start).Milliseconds(),
			Timestamp:   time.Now(),
		},
	}
}

// InvalidateUser drops cached responses for a user. Called after behavior
// writes so fresh activity is reflected promptly.
func (e *Engine) InvalidateUser(userID string) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	prefix := "rec:" + userID + ":"
	for key := range e.cache {
		if strings.HasPrefix(key, prefix) {
			delete(e.cache, key)
		}
	}
}

//nolint:gocritic // hugeParam: req passed by value for simplicity
func cacheKey(req Request) string {
	if req.Location == nil {
		return fmt.Sprintf("rec:%s:%d:-", req.UserID, req.Limit)
	}
	// Round coordinates so nearby requests share an entry (~100m grid).
	return fmt.Sprintf("rec:%s:%d:%.3f,%.3f", req.UserID, req.Limit, req.Location.Latitude, req.Location.Longitude)
}

// checkCache returns a copy of a live cached response, or nil.
func (e *Engine) checkCache(key string) *Response {
	if !e.config.Cache.Enabled {
		return nil
	}

	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()

	entry, ok := e.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}

	recs := make([]Recommendation, len(entry.response.Recommendations))
	copy(recs, entry.response.Recommendations)
	return &Response{
		Recommendations: recs,
		TotalCandidates: entry.response.TotalCandidates,
		Metadata:        entry.response.Metadata,
	}
}

func (e *Engine) storeCache(key string, resp *Response) {
	if !e.config.Cache.Enabled {
		return
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= e.config.Cache.MaxEntries {
		now := time.Now()
		for k, entry := range e.cache {
			if now.After(entry.expiresAt) {
				delete(e.cache, k)
			}
		}
	}

	e.cache[key] = cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(e.config.Cache.TTL),
	}
}

// generateRequestID generates a unique request ID for tracing.
func (e *Engine) generateRequestID() string {
	e.rngMu.Lock()
	n := e.rng.Intn(10000)
	e.rngMu.Unlock()
	return fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), n)
}
