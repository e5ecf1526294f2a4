// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package sentiment scores free-text marketplace reviews for overall
// polarity and per-aspect sentiment using curated keyword lexicons.
//
// The analyzer is deliberately a closed, deterministic keyword scorer:
// given the same lexicon and text it always produces the same result,
// which keeps scores comparable across reviews and over time.
package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// Label is the human summary bucket for an overall score.
type Label string

// Summary labels, from a 5-bucket threshold on the overall score.
const (
	LabelVeryPositive Label = "very_positive"
	LabelPositive     Label = "positive"
	LabelNeutral      Label = "neutral"
	LabelNegative     Label = "negative"
	LabelVeryNegative Label = "very_negative"
)

// Result is the outcome of analyzing one review.
type Result struct {
	// Score is the overall polarity in [-1, 1].
	Score float64 `json:"score"`

	// Confidence is in [0, 1]; more lexicon hits relative to text length
	// mean higher confidence.
	Confidence float64 `json:"confidence"`

	// Aspects maps each of the six aspects to a score in [-1, 1].
	// Aspects with zero mentions stay at 0.
	Aspects map[Aspect]float64 `json:"aspects"`

	// PositiveKeywords and NegativeKeywords list the lexicon words found.
	PositiveKeywords []string `json:"positive_keywords"`
	NegativeKeywords []string `json:"negative_keywords"`

	// Label is the summary bucket for Score.
	Label Label `json:"label"`
}

// Analyzer scores review text against an immutable lexicon.
type Analyzer struct {
	positive map[string]struct{}
	negative map[string]struct{}
	aspects  map[Aspect]map[string]struct{}
}

// New creates an analyzer from the given lexicon config.
func New(cfg Config) *Analyzer {
	a := &Analyzer{
		positive: make(map[string]struct{}, len(cfg.Positive)),
		negative: make(map[string]struct{}, len(cfg.Negative)),
		aspects:  make(map[Aspect]map[string]struct{}, len(cfg.AspectKeywords)),
	}
	for _, w := range cfg.Positive {
		a.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range cfg.Negative {
		a.negative[strings.ToLower(w)] = struct{}{}
	}
	for aspect, words := range cfg.AspectKeywords {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = struct{}{}
		}
		a.aspects[aspect] = set
	}
	return a
}

// aspectWindow is the token radius scored around each aspect keyword.
const aspectWindow = 3

// Analyze scores one review. Malformed or empty input yields a neutral
// zero-confidence result rather than an error.
func (a *Analyzer) Analyze(text string) Result {
	tokens := tokenize(text)

	result := Result{
		Aspects:          make(map[Aspect]float64, len(a.aspects)),
		PositiveKeywords: []string{},
		NegativeKeywords: []string{},
	}
	for _, aspect := range Aspects() {
		result.Aspects[aspect] = 0
	}
	if len(tokens) == 0 {
		result.Label = labelFor(0)
		return result
	}

	var pos, neg int
	for _, tok := range tokens {
		if _, ok := a.positive[tok]; ok {
			pos++
			result.PositiveKeywords = append(result.PositiveKeywords, tok)
		}
		if _, ok := a.negative[tok]; ok {
			neg++
			result.NegativeKeywords = append(result.NegativeKeywords, tok)
		}
	}

	n := float64(len(tokens))
	result.Score = clamp(float64(pos-neg)/math.Max(0.1*n, 1), -1, 1)
	result.Confidence = clamp(float64(pos+neg)/math.Max(0.05*n, 1), 0, 1)
	result.Label = labelFor(result.Score)

	for aspect, keywords := range a.aspects {
		result.Aspects[aspect] = a.aspectScore(tokens, keywords)
	}

	return result
}

// aspectScore averages the window scores around every occurrence of the
// aspect's keywords. Zero mentions leave the aspect at 0.
func (a *Analyzer) aspectScore(tokens []string, keywords map[string]struct{}) float64 {
	var sum float64
	var mentions int

	for i, tok := range tokens {
		if _, ok := keywords[tok]; !ok {
			continue
		}
		mentions++

		lo := i - aspectWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + aspectWindow + 1
		if hi > len(tokens) {
			hi = len(tokens)
		}
		sum += a.windowScore(tokens[lo:hi])
	}

	if mentions == 0 {
		return 0
	}
	return sum / float64(mentions)
}

// windowScore scores a token window with the same formula as the overall
// score.
func (a *Analyzer) windowScore(window []string) float64 {
	var pos, neg int
	for _, tok := range window {
		if _, ok := a.positive[tok]; ok {
			pos++
		}
		if _, ok := a.negative[tok]; ok {
			neg++
		}
	}
	return clamp(float64(pos-neg)/math.Max(0.1*float64(len(window)), 1), -1, 1)
}

// tokenize normalizes text (lowercase, punctuation stripped while keeping
// accented letters, whitespace collapsed) and splits on whitespace.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func labelFor(score float64) Label {
	switch {
	case score > 0.5:
		return LabelVeryPositive
	case score > 0.2:
		return LabelPositive
	case score > -0.2:
		return LabelNeutral
	case score > -0.5:
		return LabelNegative
	default:
		return LabelVeryNegative
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
