// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the relative contribution of each signal.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights SignalWeights `json:"weights" koanf:"weights"`

	// Location contains parameters for the location signal.
	Location LocationConfig `json:"location" koanf:"location"`

	// History contains parameters for the purchase-history signal.
	History HistoryConfig `json:"history" koanf:"history"`

	// Similarity contains parameters for the similar-user signal.
	Similarity SimilarityConfig `json:"similarity" koanf:"similarity"`

	// Trending contains parameters for the trending signal.
	Trending TrendingConfig `json:"trending" koanf:"trending"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains response-cache parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`

	// Seed is the random seed for request-ID generation determinism in
	// tests. If zero, a fixed default seed is used.
	Seed int64 `json:"seed" koanf:"seed"`
}

// SignalWeights defines the relative contribution of each signal.
type SignalWeights struct {
	// Location is the weight of geographic proximity. Default: 0.40.
	Location float64 `json:"location" koanf:"location"`

	// History is the weight of the user's own purchase history.
	// Default: 0.35.
	History float64 `json:"history" koanf:"history"`

	// SimilarUsers is the weight of collaborative similarity.
	// Default: 0.15.
	SimilarUsers float64 `json:"similar_users" koanf:"similar_users"`

	// Trending is the weight of marketplace-wide trending offers.
	// Default: 0.10.
	Trending float64 `json:"trending" koanf:"trending"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) Normalize() SignalWeights {
	sum := w.Location + w.History + w.SimilarUsers + w.Trending
	if sum == 0 {
		const equalWeight = 1.0 / 4.0
		return SignalWeights{
			Location: equalWeight, History: equalWeight,
			SimilarUsers: equalWeight, Trending: equalWeight,
		}
	}
	return SignalWeights{
		Location:     w.Location / sum,
		History:      w.History / sum,
		SimilarUsers: w.SimilarUsers / sum,
		Trending:     w.Trending / sum,
	}
}

// ToMap returns the weights as a signal-name-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w SignalWeights) ToMap() map[string]float64 {
	return map[string]float64{
		SignalLocation:     w.Location,
		SignalHistory:      w.History,
		SignalSimilarUsers: w.SimilarUsers,
		SignalTrending:     w.Trending,
	}
}

// LocationConfig contains parameters for the location signal.
type LocationConfig struct {
	// DefaultRadiusMeters applies when the user has no configured search
	// radius. Offers beyond the radius are excluded from this signal
	// entirely, not scored zero. Default: 5000.
	DefaultRadiusMeters float64 `json:"default_radius_meters" koanf:"default_radius_meters"`

	// PriceMatchBonus is the flat bonus for offers priced inside the
	// user's preferred range. Default: 0.2.
	PriceMatchBonus float64 `json:"price_match_bonus" koanf:"price_match_bonus"`
}

// HistoryConfig contains parameters for the purchase-history signal.
type HistoryConfig struct {
	// EstablishmentBonus applies when the offer's establishment is among
	// the user's top purchased-from establishments. Default: 0.3.
	EstablishmentBonus float64 `json:"establishment_bonus" koanf:"establishment_bonus"`

	// PriceBandBonus applies when the offer price falls inside the
	// [min, max] of the user's historical purchase prices. Default: 0.2.
	PriceBandBonus float64 `json:"price_band_bonus" koanf:"price_band_bonus"`

	// HourBonus applies when the current hour is among the user's most
	// frequent purchase hours. Default: 0.1.
	HourBonus float64 `json:"hour_bonus" koanf:"hour_bonus"`
}

// SimilarityConfig contains parameters for the similar-user signal.
type SimilarityConfig struct {
	// Threshold is the minimum behavior similarity for a user to count
	// as similar. Default: 0.3.
	Threshold float64 `json:"threshold" koanf:"threshold"`

	// CategoryWeight, FavoriteWeight and PriceOverlapWeight compose the
	// similarity score. Defaults: 0.5, 0.3, 0.2.
	CategoryWeight     float64 `json:"category_weight" koanf:"category_weight"`
	FavoriteWeight     float64 `json:"favorite_weight" koanf:"favorite_weight"`
	PriceOverlapWeight float64 `json:"price_overlap_weight" koanf:"price_overlap_weight"`

	// MaxUsers caps how many other users' profiles are scanned per
	// request. Default: 200.
	MaxUsers int `json:"max_users" koanf:"max_users"`
}

// TrendingConfig contains parameters for the trending signal.
type TrendingConfig struct {
	// TopN is how many offers (by discount depth) trend. Default: 5.
	TopN int `json:"top_n" koanf:"top_n"`

	// Score is the flat raw score a trending offer receives. Default: 0.6.
	Score float64 `json:"score" koanf:"score"`

	// RefreshInterval is how often the supervised refresher re-primes the
	// trending snapshot. Default: 5m.
	RefreshInterval time.Duration `json:"refresh_interval" koanf:"refresh_interval"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the number of recommendations returned when the
	// request does not set one. Default: 10.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit caps the requestable limit. Default: 50.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxCandidates caps the candidate offers scored per request.
	// Default: 500.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// SignalTimeout bounds a single signal's computation. Default: 2s.
	SignalTimeout time.Duration `json:"signal_timeout" koanf:"signal_timeout"`
}

// CacheConfig contains response-cache parameters.
type CacheConfig struct {
	// Enabled controls whether response caching is active. Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live. Default: 2m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries is the maximum number of cached entries. Default: 1000.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: SignalWeights{
			Location:     0.40,
			History:      0.35,
			SimilarUsers: 0.15,
			Trending:     0.10,
		},
		Location: LocationConfig{
			DefaultRadiusMeters: 5000,
			PriceMatchBonus:     0.2,
		},
		History: HistoryConfig{
			EstablishmentBonus: 0.3,
			PriceBandBonus:     0.2,
			HourBonus:          0.1,
		},
		Similarity: SimilarityConfig{
			Threshold:          0.3,
			CategoryWeight:     0.5,
			FavoriteWeight:     0.3,
			PriceOverlapWeight: 0.2,
			MaxUsers:           200,
		},
		Trending: TrendingConfig{
			TopN:            5,
			Score:           0.6,
			RefreshInterval: 5 * time.Minute,
		},
		Limits: LimitsConfig{
			DefaultLimit:  10,
			MaxLimit:      50,
			MaxCandidates: 500,
			SignalTimeout: 2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        2 * time.Minute,
			MaxEntries: 1000,
		},
		Seed: 42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Location.DefaultRadiusMeters <= 0 {
		return fmt.Errorf("location.default_radius_meters must be positive, got %f", c.Location.DefaultRadiusMeters)
	}
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold > 1 {
		return fmt.Errorf("similarity.threshold must be in [0, 1], got %f", c.Similarity.Threshold)
	}
	if c.Similarity.MaxUsers < 1 {
		return fmt.Errorf("similarity.max_users must be positive, got %d", c.Similarity.MaxUsers)
	}
	if c.Trending.TopN < 1 {
		return fmt.Errorf("trending.top_n must be positive, got %d", c.Trending.TopN)
	}
	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.MaxCandidates < 1 {
		return fmt.Errorf("limits.max_candidates must be positive, got %d", c.Limits.MaxCandidates)
	}
	if c.Limits.SignalTimeout <= 0 {
		return fmt.Errorf("limits.signal_timeout must be positive, got %v", c.Limits.SignalTimeout)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	cp := *c
	return &cp
}
