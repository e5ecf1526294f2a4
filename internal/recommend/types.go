// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package recommend

import (
	"context"
	"time"

	"github.com/tugotugo/insight/internal/behavior"
)

// Offer is a candidate surprise pack, supplied by the external offer
// source. The engine operates on in-memory snapshots; it never fetches or
// persists offers itself.
type Offer struct {
	// ID is the pack identifier.
	ID string `json:"id"`

	// EstablishmentID identifies the selling establishment.
	EstablishmentID string `json:"establishment_id"`

	// Name is the pack's display name.
	Name string `json:"name,omitempty"`

	// Category is the food category (e.g. "panaderia", "sushi").
	Category string `json:"category,omitempty"`

	// Latitude and Longitude locate the establishment.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// OriginalPrice and DiscountedPrice are in the marketplace currency.
	OriginalPrice   float64 `json:"original_price"`
	DiscountedPrice float64 `json:"discounted_price"`

	// Quantity is the remaining stock.
	Quantity int `json:"quantity"`

	// AvailableFrom and AvailableUntil bound the pickup window.
	AvailableFrom  time.Time `json:"available_from,omitempty"`
	AvailableUntil time.Time `json:"available_until,omitempty"`

	// DietaryTags lists dietary properties ("vegan", "gluten_free", ...).
	DietaryTags []string `json:"dietary_tags,omitempty"`
}

// Signal type tags carried on recommendations.
const (
	SignalLocation     = "location"
	SignalHistory      = "history"
	SignalSimilarUsers = "similar_users"
	SignalTrending     = "trending"
	SignalDietary      = "dietary"
	SignalCombined     = "combined"
)

// Recommendation is one scored pack. Scores are unbounded and additive
// across signal types; partial recommendations for the same pack must be
// merged (never emitted twice) before final ranking.
type Recommendation struct {
	// PackID is the recommended pack.
	PackID string `json:"pack_id"`

	// Score is the combined score; higher is better.
	Score float64 `json:"score"`

	// Reasons are human-readable explanations, one per contributing rule.
	Reasons []string `json:"reasons"`

	// Signal tags the producing signal, or "combined" after a merge of
	// different signals.
	Signal string `json:"signal"`

	// Confidence is in [0, 1].
	Confidence float64 `json:"confidence"`
}

// Merge combines two partial recommendations for the same pack: scores
// sum, reasons concatenate (not deduplicated), confidence takes the max.
func (r Recommendation) Merge(other Recommendation) Recommendation {
	merged := Recommendation{
		PackID:  r.PackID,
		Score:   r.Score + other.Score,
		Reasons: append(append([]string{}, r.Reasons...), other.Reasons...),
		Signal:  r.Signal,
	}
	if other.Signal != r.Signal {
		merged.Signal = SignalCombined
	}
	merged.Confidence = r.Confidence
	if other.Confidence > merged.Confidence {
		merged.Confidence = other.Confidence
	}
	return merged
}

// Request is one recommendation request.
type Request struct {
	// UserID is the user to recommend for.
	UserID string `json:"user_id"`

	// Location is the user's current position. Nil skips the location
	// signal entirely; that is a normal condition, not an error.
	Location *behavior.Location `json:"location,omitempty"`

	// Limit caps the number of recommendations returned. Zero applies
	// Limits.DefaultLimit.
	Limit int `json:"limit,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the engine's answer to one request.
type Response struct {
	// Recommendations is ordered by score, descending, with no duplicate
	// pack IDs, at most Request.Limit entries.
	Recommendations []Recommendation `json:"recommendations"`

	// TotalCandidates is the number of candidate offers considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata carries timing and diagnostics.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries timing and diagnostic information.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	SignalsUsed []string  `json:"signals_used"`
	LatencyMS   int64     `json:"latency_ms"`
	CacheHit    bool      `json:"cache_hit"`
	Timestamp   time.Time `json:"timestamp"`
}

// Input is the prepared data a signal scores against. The engine resolves
// the user's behavior record once and shares it across signals; Behavior
// is nil for untracked users.
type Input struct {
	UserID   string
	Location *behavior.Location
	Behavior *behavior.UserBehavior
	Offers   []Offer
	Now      time.Time
}

// Signal is one independent scoring strategy. Implementations return raw
// (unweighted) partial recommendations; the engine applies the configured
// weight, merges by pack ID and ranks.
//
// A signal that cannot contribute (missing location, no history) returns
// an empty slice and a nil error: degraded inputs are normal.
type Signal interface {
	// Name returns the signal identifier used for weighting.
	Name() string

	// Score produces raw partial recommendations for the candidates.
	Score(ctx context.Context, in Input) ([]Recommendation, error)
}
