// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package sentiment

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzer_Analyze_Bounds(t *testing.T) {
	a := New(DefaultConfig())

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n  "},
		{"punctuation only", "!!! ??? ..."},
		{"very positive", "delicioso excelente increíble perfecto genial rico"},
		{"very negative", "horrible pésimo malo sucio frío rancio"},
		{"mixed", "la comida estaba rica pero el servicio fue lento"},
		{"no lexicon hits", "recogí mi pedido ayer por la tarde"},
		{"emoji and symbols", "🍕🍕 @@@@ ###"},
		{"long neutral", strings.Repeat("palabra ", 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := a.Analyze(tt.text)

			if r.Score < -1 || r.Score > 1 {
				t.Errorf("Score = %v, want in [-1, 1]", r.Score)
			}
			if r.Confidence < 0 || r.Confidence > 1 {
				t.Errorf("Confidence = %v, want in [0, 1]", r.Confidence)
			}
			if len(r.Aspects) != 6 {
				t.Errorf("Aspects = %d entries, want 6", len(r.Aspects))
			}
			for aspect, score := range r.Aspects {
				if score < -1 || score > 1 {
					t.Errorf("Aspects[%s] = %v, want in [-1, 1]", aspect, score)
				}
			}
		})
	}
}

func TestAnalyzer_Analyze_Deterministic(t *testing.T) {
	a := New(DefaultConfig())
	text := "El pack estaba delicioso pero llegó tarde"

	first := a.Analyze(text)
	for i := 0; i < 10; i++ {
		again := a.Analyze(text)
		if again.Score != first.Score || again.Label != first.Label {
			t.Fatalf("run %d: got (%v, %s), want (%v, %s)", i, again.Score, again.Label, first.Score, first.Label)
		}
	}
}

func TestAnalyzer_NegativeServiceReview(t *testing.T) {
	a := New(DefaultConfig())

	r := a.Analyze("La comida estaba fría y el servicio fue muy lento")

	if r.Score >= 0 {
		t.Errorf("Score = %v, want negative", r.Score)
	}
	if r.Aspects[AspectService] >= 0 {
		t.Errorf("service aspect = %v, want negative", r.Aspects[AspectService])
	}

	recs := Recommendations(r)
	found := false
	for _, rec := range recs {
		if strings.Contains(rec, "personal") || strings.Contains(rec, "frescura") {
			found = true
		}
	}
	if !found {
		t.Errorf("Recommendations() = %v, want a service or quality suggestion", recs)
	}
}

func TestAnalyzer_Labels(t *testing.T) {
	tests := []struct {
		score float64
		want  Label
	}{
		{0.8, LabelVeryPositive},
		{0.3, LabelPositive},
		{0.0, LabelNeutral},
		{-0.3, LabelNegative},
		{-0.8, LabelVeryNegative},
	}
	for _, tt := range tests {
		if got := labelFor(tt.score); got != tt.want {
			t.Errorf("labelFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestPredictSatisfaction_HalfStarDomain(t *testing.T) {
	a := New(DefaultConfig())

	texts := []string{
		"",
		"delicioso excelente perfecto",
		"horrible pésimo sucio",
		"la comida estaba bien",
		"rico pero caro y lento el servicio",
	}
	for _, text := range texts {
		got := PredictSatisfaction(a.Analyze(text))
		if got < 1 || got > 5 {
			t.Errorf("PredictSatisfaction(%q) = %v, want in [1, 5]", text, got)
		}
		if math.Mod(got*2, 1) != 0 {
			t.Errorf("PredictSatisfaction(%q) = %v, want a half-star step", text, got)
		}
	}
}

func TestAnalyzeBatch_InconsistentExperience(t *testing.T) {
	a := New(DefaultConfig())

	reviews := []Review{
		{Rating: 5, Text: "Delicioso, excelente calidad, todo perfecto y muy rico"},
		{Rating: 1, Text: "Horrible, pésima calidad, todo frío y el trato grosero"},
	}

	b := a.AnalyzeBatch(reviews)

	if b.ScoreVariance <= highVarianceThreshold {
		t.Errorf("ScoreVariance = %v, want > %v for opposite reviews", b.ScoreVariance, highVarianceThreshold)
	}

	found := false
	for _, insight := range b.Insights {
		if strings.Contains(insight, "inconsistente") {
			found = true
		}
	}
	if !found {
		t.Errorf("Insights = %v, want an inconsistent-experience flag", b.Insights)
	}
}

func TestAnalyzeBatch_Aggregates(t *testing.T) {
	a := New(DefaultConfig())

	reviews := []Review{
		{Text: "Muy rico y fresco, el sabor excelente"},
		{Text: "Rico, buena calidad y atención amable"},
	}

	b := a.AnalyzeBatch(reviews)

	if b.ReviewCount != 2 {
		t.Fatalf("ReviewCount = %d, want 2", b.ReviewCount)
	}
	if b.MeanScore <= 0 {
		t.Errorf("MeanScore = %v, want positive", b.MeanScore)
	}
	if len(b.PositiveKeywords) == 0 {
		t.Error("PositiveKeywords empty, want union of hits")
	}
	// "rico" appears in both reviews but the union holds it once.
	count := 0
	for _, kw := range b.PositiveKeywords {
		if kw == "rico" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("keyword union contains %q %d times, want 1", "rico", count)
	}
}

func TestAnalyzeBatch_MeanRating(t *testing.T) {
	a := New(DefaultConfig())

	t.Run("averages only rated reviews", func(t *testing.T) {
		b := a.AnalyzeBatch([]Review{
			{Rating: 5, Text: "Delicioso y fresco"},
			{Rating: 2, Text: "Llegó frío"},
			{Text: "Sin valoración"},
		})
		if b.MeanRating != 3.5 {
			t.Errorf("MeanRating = %v, want 3.5 over the two rated reviews", b.MeanRating)
		}
	})

	t.Run("zero when no review is rated", func(t *testing.T) {
		b := a.AnalyzeBatch([]Review{{Text: "Muy rico"}})
		if b.MeanRating != 0 {
			t.Errorf("MeanRating = %v, want 0 without ratings", b.MeanRating)
		}
	})
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	a := New(DefaultConfig())
	b := a.AnalyzeBatch(nil)

	if b.ReviewCount != 0 || b.MeanScore != 0 {
		t.Errorf("empty batch = %+v, want zero values", b)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"keeps accents", "¡Qué rico está!", []string{"qué", "rico", "está"}},
		{"collapses whitespace", "uno   dos\t\ntres", []string{"uno", "dos", "tres"}},
		{"strips punctuation", "bueno, bonito; barato.", []string{"bueno", "bonito", "barato"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
