// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package offers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tugotugo/insight/internal/metrics"
	"github.com/tugotugo/insight/internal/recommend"
)

const maxResponseBytes = 8 << 20

// HTTPConfig configures the upstream offer fetcher.
type HTTPConfig struct {
	// URL is the upstream endpoint returning the offer list as JSON.
	URL string `json:"url" koanf:"url"`

	// Timeout bounds one upstream request. Default: 10s.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`

	// RequestsPerSecond and Burst throttle upstream calls.
	// Defaults: 5 rps, burst 10.
	RequestsPerSecond float64 `json:"requests_per_second" koanf:"requests_per_second"`
	Burst             int     `json:"burst" koanf:"burst"`
}

// DefaultHTTPConfig returns production defaults; URL must still be set.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

// HTTPSource fetches candidate offers from the marketplace API. Calls go
// through a rate limiter and a circuit breaker; while the upstream is
// unavailable the last good snapshot is served so recommendations keep
// working in degraded mode.
type HTTPSource struct {
	cfg    HTTPConfig
	client *http.Client
	limit  *rate.Limiter
	cb     *gobreaker.CircuitBreaker[[]recommend.Offer]
	logger zerolog.Logger

	mu   sync.RWMutex
	last []recommend.Offer
}

var _ recommend.OfferSource = (*HTTPSource)(nil)

// NewHTTPSource creates the upstream fetcher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPSource(cfg HTTPConfig, logger zerolog.Logger) (*HTTPSource, error) {
	if cfg.URL == "" {
		return nil, errors.New("offer source url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}

	componentLogger := logger.With().Str("component", "offers").Logger()
	cbName := "offer-source"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]recommend.Offer](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("offer source circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &HTTPSource{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		limit:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cb:     cb,
		logger: componentLogger,
	}, nil
}

// Candidates implements recommend.OfferSource.
func (s *HTTPSource) Candidates(ctx context.Context) ([]recommend.Offer, error) {
	if err := s.limit.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	offers, err := s.cb.Execute(func() ([]recommend.Offer, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.OfferFetches.WithLabelValues("rejected").Inc()
		} else {
			metrics.OfferFetches.WithLabelValues("error").Inc()
		}

		if last := s.lastSnapshot(); last != nil {
			s.logger.Warn().Err(err).Int("offers", len(last)).Msg("upstream unavailable, serving last snapshot")
			return last, nil
		}
		return nil, fmt.Errorf("fetch offers: %w", err)
	}

	metrics.OfferFetches.WithLabelValues("ok").Inc()
	metrics.OffersAvailable.Set(float64(len(offers)))
	s.storeSnapshot(offers)
	return offers, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]recommend.Offer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from offer source", resp.StatusCode)
	}

	var offers []recommend.Offer
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	return offers, nil
}

func (s *HTTPSource) storeSnapshot(offers []recommend.Offer) {
	cp := make([]recommend.Offer, len(offers))
	copy(cp, offers)

	s.mu.Lock()
	s.last = cp
	s.mu.Unlock()
}

func (s *HTTPSource) lastSnapshot() []recommend.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return nil
	}
	out := make([]recommend.Offer, len(s.last))
	copy(out, s.last)
	return out
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}
