// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package forecast produces synthetic demand forecasts, dynamic-pricing
// suggestions, churn-risk estimates and embedding-based item similarity.
//
// Every output is generated by deterministic formulas seeded from the
// input identifiers, not learned weights. The package stands in for a
// trained model: callers should rely on the interfaces and value ranges,
// never on the specific constants, so the internals can be swapped for
// real inference without touching consumers.
package forecast

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// Meal-window demand boosts applied to the hourly baseline.
const (
	lunchBoost  = 1.8 // 12-14h
	dinnerBoost = 2.2 // 19-21h
	nightFactor = 0.3 // 0-6h
)

// Dynamic-pricing bounds and elasticity.
const (
	maxPriceChange   = 0.20 // suggested price stays within ±20%
	priceElasticity  = 1.5  // 10% price increase costs 15% demand
	strategyDeadband = 0.05 // |change| below this keeps the price
)

// Pricing strategy labels.
const (
	StrategyPremium     = "premium"
	StrategyCompetitive = "competitive"
	StrategyMaintain    = "maintain"
)

// Churn classification labels.
const (
	ChurnSudden   = "sudden"
	ChurnSeasonal = "seasonal"
	ChurnGradual  = "gradual"
)

const suddenChurnThreshold = 0.7

// DemandPoint is one hour of forecast demand.
type DemandPoint struct {
	Hour   int     `json:"hour"`
	Demand float64 `json:"demand"`
}

// DemandForecast is a 24-point hourly demand curve for one offer.
type DemandForecast struct {
	OfferID     string        `json:"offer_id"`
	Points      []DemandPoint `json:"points"`
	PeakHour    int           `json:"peak_hour"`
	TotalDemand float64       `json:"total_demand"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// PriceSuggestion is a bounded dynamic-pricing recommendation with the
// elasticity-derived demand and revenue deltas of applying it.
type PriceSuggestion struct {
	CurrentPrice   float64 `json:"current_price"`
	SuggestedPrice float64 `json:"suggested_price"`

	// DemandDeltaPct and RevenueDeltaPct are fractional changes, e.g.
	// -0.15 means 15% less.
	DemandDeltaPct  float64 `json:"demand_delta_pct"`
	RevenueDeltaPct float64 `json:"revenue_delta_pct"`

	Strategy string `json:"strategy"`
}

// ChurnInput summarizes the recency/frequency features the churn
// estimator consumes. Callers derive it from a behavior record.
type ChurnInput struct {
	DaysSinceLastPurchase int `json:"days_since_last_purchase"`
	PurchasesLast30Days   int `json:"purchases_last_30_days"`
	PurchasesPrev30Days   int `json:"purchases_prev_30_days"`
}

// ChurnRisk is a 3-class churn probability vector with a derived
// classification. Probabilities sum to 1.
type ChurnRisk struct {
	StayProbability float64 `json:"stay_probability"`
	SoonProbability float64 `json:"soon_probability"`
	NowProbability  float64 `json:"now_probability"`

	// Type is sudden, seasonal or gradual.
	Type string `json:"type"`

	// DaysToChurn estimates how long until the user is lost. Zero when
	// churn is already underway.
	DaysToChurn int `json:"days_to_churn"`
}

// Simulator generates all forecast outputs. It is stateless apart from
// its seed and safe for concurrent use: every call derives a private
// random stream from the seed and the input identifiers.
type Simulator struct {
	seed         int64
	embeddingDim int
}

// NewSimulator creates a simulator. A zero seed selects a fixed default
// so output is reproducible across restarts.
func NewSimulator(seed int64, embeddingDim int) *Simulator {
	if seed == 0 {
		seed = 42
	}
	if embeddingDim <= 0 {
		embeddingDim = 16
	}
	return &Simulator{seed: seed, embeddingDim: embeddingDim}
}

// rngFor derives a deterministic random stream for one input key.
func (s *Simulator) rngFor(key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return rand.New(rand.NewSource(s.seed ^ int64(h.Sum64()))) //nolint:gosec // synthetic data only
}

// DemandForecast produces a 24-point hourly demand curve with lunch and
// dinner boosts. The same offer ID always yields the same curve.
func (s *Simulator) DemandForecast(offerID string) DemandForecast {
	rng := s.rngFor("demand:" + offerID)
	base := 8 + rng.Float64()*8

	points := make([]DemandPoint, 24)
	peak := 0
	total := 0.0
	for hour := 0; hour < 24; hour++ {
		noise := 0.9 + rng.Float64()*0.2
		demand := base * hourFactor(hour) * noise
		demand = math.Round(demand*100) / 100

		points[hour] = DemandPoint{Hour: hour, Demand: demand}
		total += demand
		if demand > points[peak].Demand {
			peak = hour
		}
	}

	return DemandForecast{
		OfferID:     offerID,
		Points:      points,
		PeakHour:    peak,
		TotalDemand: math.Round(total*100) / 100,
		GeneratedAt: time.Now(),
	}
}

// hourFactor is the multiplicative demand boost for an hour of day.
func hourFactor(hour int) float64 {
	switch {
	case hour >= 12 && hour <= 14:
		return lunchBoost
	case hour >= 19 && hour <= 21:
		return dinnerBoost
	case hour < 6:
		return nightFactor
	default:
		return 1.0
	}
}

// SuggestPrice proposes a price within ±20% of the current one.
// demandLevel is the offer's observed demand in [0, 1] relative to its
// category baseline: above 0.5 supports a raise, below supports a cut.
func (s *Simulator) SuggestPrice(currentPrice, demandLevel float64) (PriceSuggestion, error) {
	if currentPrice <= 0 {
		return PriceSuggestion{}, fmt.Errorf("current price must be positive, got %f", currentPrice)
	}
	demandLevel = clamp01(demandLevel)

	change := (demandLevel - 0.5) * 2 * maxPriceChange
	demandDelta := -priceElasticity * change
	revenueDelta := (1+change)*(1+demandDelta) - 1

	strategy := StrategyMaintain
	switch {
	case change > strategyDeadband:
		strategy = StrategyPremium
	case change < -strategyDeadband:
		strategy = StrategyCompetitive
	default:
		change = 0
		demandDelta = 0
		revenueDelta = 0
	}

	return PriceSuggestion{
		CurrentPrice:    currentPrice,
		SuggestedPrice:  math.Round(currentPrice*(1+change)*100) / 100,
		DemandDeltaPct:  math.Round(demandDelta*1000) / 1000,
		RevenueDeltaPct: math.Round(revenueDelta*1000) / 1000,
		Strategy:        strategy,
	}, nil
}

// ChurnRisk estimates a 3-class churn probability vector from purchase
// recency and frequency. Probabilities always sum to 1.
func (s *Simulator) ChurnRisk(in ChurnInput) ChurnRisk {
	days := float64(in.DaysSinceLastPurchase)
	if days < 0 {
		days = 0
	}

	// Inactivity drives the churn-now probability; recent activity
	// pulls it back down.
	now := clamp01(days / 60)
	if in.PurchasesLast30Days > 0 {
		now *= 0.3
	}

	soon := clamp01(days/30) * (1 - now) * 0.6
	if in.PurchasesLast30Days == 0 && in.PurchasesPrev30Days > 0 {
		// Activity stopped abruptly.
		soon += 0.2
	}
	soon = clamp01(soon)

	stay := 1 - now - soon
	if stay < 0 {
		stay = 0
		// Renormalize so the vector still sums to 1.
		sum := now + soon
		now /= sum
		soon /= sum
	}

	risk := ChurnRisk{
		StayProbability: math.Round(stay*1000) / 1000,
		SoonProbability: math.Round(soon*1000) / 1000,
		NowProbability:  math.Round(now*1000) / 1000,
	}

	switch {
	case risk.NowProbability > suddenChurnThreshold:
		risk.Type = ChurnSudden
	case seasonalPattern(in):
		risk.Type = ChurnSeasonal
	default:
		risk.Type = ChurnGradual
	}

	risk.DaysToChurn = daysToChurn(risk, in)
	return risk
}

// seasonalPattern fires when activity alternates between periods instead
// of decaying: a previously active user going quiet for exactly one
// period looks like a seasonal lapse rather than a trend.
func seasonalPattern(in ChurnInput) bool {
	return in.PurchasesLast30Days == 0 &&
		in.PurchasesPrev30Days >= 2 &&
		in.DaysSinceLastPurchase <= 45
}

// daysToChurn estimates remaining days before the user is lost.
func daysToChurn(risk ChurnRisk, in ChurnInput) int {
	if risk.NowProbability > suddenChurnThreshold {
		return 0
	}
	// The stay probability stretches the horizon; active users get the
	// full window.
	horizon := 90 * risk.StayProbability
	if in.PurchasesLast30Days > 0 {
		horizon += 30
	}
	return int(math.Round(horizon))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
