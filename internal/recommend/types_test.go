// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestRecommendation_Merge(t *testing.T) {
	a := Recommendation{
		PackID:     "p1",
		Score:      0.4,
		Reasons:    []string{"cerca de ti"},
		Signal:     SignalLocation,
		Confidence: 0.9,
	}
	b := Recommendation{
		PackID:     "p1",
		Score:      0.25,
		Reasons:    []string{"cerca de ti", "compras similares"},
		Signal:     SignalHistory,
		Confidence: 0.8,
	}

	got := a.Merge(b)

	if math.Abs(got.Score-0.65) > 1e-9 {
		t.Errorf("merged score = %f, want sum 0.65", got.Score)
	}
	// Reasons concatenate without deduplication.
	wantReasons := []string{"cerca de ti", "cerca de ti", "compras similares"}
	if !reflect.DeepEqual(got.Reasons, wantReasons) {
		t.Errorf("merged reasons = %v, want %v", got.Reasons, wantReasons)
	}
	if got.Confidence != 0.9 {
		t.Errorf("merged confidence = %f, want max 0.9", got.Confidence)
	}
	if got.Signal != SignalCombined {
		t.Errorf("merged signal = %q, want %q", got.Signal, SignalCombined)
	}
}

func TestRecommendation_MergeSameSignalKeepsTag(t *testing.T) {
	a := Recommendation{PackID: "p1", Score: 1, Signal: SignalTrending, Confidence: 0.6}
	b := Recommendation{PackID: "p1", Score: 1, Signal: SignalTrending, Confidence: 0.6}

	if got := a.Merge(b); got.Signal != SignalTrending {
		t.Errorf("same-signal merge tag = %q, want %q", got.Signal, SignalTrending)
	}
}

func TestRecommendation_MergeDoesNotMutateInputs(t *testing.T) {
	a := Recommendation{PackID: "p1", Reasons: []string{"r1"}}
	b := Recommendation{PackID: "p1", Reasons: []string{"r2"}}

	_ = a.Merge(b)

	if len(a.Reasons) != 1 || len(b.Reasons) != 1 {
		t.Errorf("Merge mutated inputs: a=%v b=%v", a.Reasons, b.Reasons)
	}
}

func TestSignalWeights_Normalize(t *testing.T) {
	t.Run("defaults already sum to one", func(t *testing.T) {
		w := DefaultConfig().Weights.Normalize()
		sum := w.Location + w.History + w.SimilarUsers + w.Trending
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("normalized sum = %f, want 1", sum)
		}
	})

	t.Run("zero weights become equal", func(t *testing.T) {
		w := SignalWeights{}.Normalize()
		for name, v := range w.ToMap() {
			if math.Abs(v-0.25) > 1e-9 {
				t.Errorf("weight %s = %f, want 0.25", name, v)
			}
		}
	})

	t.Run("unnormalized input scales", func(t *testing.T) {
		w := SignalWeights{Location: 2, History: 2}.Normalize()
		if math.Abs(w.Location-0.5) > 1e-9 || math.Abs(w.History-0.5) > 1e-9 {
			t.Errorf("Normalize() = %+v, want 0.5/0.5", w)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"negative radius", func(c *Config) { c.Location.DefaultRadiusMeters = -1 }, true},
		{"threshold above one", func(c *Config) { c.Similarity.Threshold = 1.5 }, true},
		{"zero trending top n", func(c *Config) { c.Trending.TopN = 0 }, true},
		{"max below default limit", func(c *Config) { c.Limits.MaxLimit = 5 }, true},
		{"zero cache ttl while enabled", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero cache ttl while disabled", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
