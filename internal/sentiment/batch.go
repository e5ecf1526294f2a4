// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package sentiment

import "fmt"

// Review is one customer review of a pack.
type Review struct {
	// Rating is the star rating the customer gave, if any (0 when absent).
	Rating float64 `json:"rating,omitempty"`

	// Text is the free-text review body.
	Text string `json:"text"`
}

// BatchResult aggregates the analysis of all reviews for one pack.
type BatchResult struct {
	// ReviewCount is the number of reviews analyzed.
	ReviewCount int `json:"review_count"`

	// MeanScore, MeanConfidence and MeanSatisfaction are averages across
	// all reviews. MeanSatisfaction is predicted from the text alone.
	MeanScore        float64 `json:"mean_score"`
	MeanConfidence   float64 `json:"mean_confidence"`
	MeanSatisfaction float64 `json:"mean_satisfaction"`

	// MeanRating averages the star ratings the customers actually gave,
	// over the reviews that carry one. Zero when no review is rated.
	// Comparing it against MeanSatisfaction shows how far the text-based
	// prediction drifts from the stars.
	MeanRating float64 `json:"mean_rating"`

	// Aspects holds per-aspect mean scores.
	Aspects map[Aspect]float64 `json:"aspects"`

	// PositiveKeywords and NegativeKeywords are the unions of keyword hits
	// across reviews.
	PositiveKeywords []string `json:"positive_keywords"`
	NegativeKeywords []string `json:"negative_keywords"`

	// ScoreVariance is the population variance of per-review scores.
	ScoreVariance float64 `json:"score_variance"`

	// Insights are human-readable observations for the establishment.
	Insights []string `json:"insights"`

	// Results holds the per-review analyses in input order.
	Results []Result `json:"results"`
}

// Variance thresholds for the consistency insight.
const (
	lowVarianceThreshold  = 0.05
	highVarianceThreshold = 0.25
)

// AnalyzeBatch runs per-review analysis for one pack's reviews and
// aggregates the results. An empty input returns a zero-valued result.
func (a *Analyzer) AnalyzeBatch(reviews []Review) BatchResult {
	out := BatchResult{
		ReviewCount:      len(reviews),
		Aspects:          make(map[Aspect]float64, len(Aspects())),
		PositiveKeywords: []string{},
		NegativeKeywords: []string{},
		Insights:         []string{},
		Results:          make([]Result, 0, len(reviews)),
	}
	for _, aspect := range Aspects() {
		out.Aspects[aspect] = 0
	}
	if len(reviews) == 0 {
		return out
	}

	posSeen := make(map[string]struct{})
	negSeen := make(map[string]struct{})
	rated := 0

	for _, review := range reviews {
		r := a.Analyze(review.Text)
		out.Results = append(out.Results, r)

		if review.Rating > 0 {
			out.MeanRating += review.Rating
			rated++
		}

		out.MeanScore += r.Score
		out.MeanConfidence += r.Confidence
		out.MeanSatisfaction += PredictSatisfaction(r)
		for _, aspect := range Aspects() {
			out.Aspects[aspect] += r.Aspects[aspect]
		}
		for _, kw := range r.PositiveKeywords {
			if _, ok := posSeen[kw]; !ok {
				posSeen[kw] = struct{}{}
				out.PositiveKeywords = append(out.PositiveKeywords, kw)
			}
		}
		for _, kw := range r.NegativeKeywords {
			if _, ok := negSeen[kw]; !ok {
				negSeen[kw] = struct{}{}
				out.NegativeKeywords = append(out.NegativeKeywords, kw)
			}
		}
	}

	n := float64(len(reviews))
	out.MeanScore /= n
	out.MeanConfidence /= n
	out.MeanSatisfaction /= n
	if rated > 0 {
		out.MeanRating /= float64(rated)
	}
	for _, aspect := range Aspects() {
		out.Aspects[aspect] /= n
	}

	for _, r := range out.Results {
		d := r.Score - out.MeanScore
		out.ScoreVariance += d * d
	}
	out.ScoreVariance /= n

	out.Insights = batchInsights(&out)
	return out
}

// batchInsights derives observations from polarity, the single best and
// worst aspect beyond the concern threshold, and score variance.
func batchInsights(b *BatchResult) []string {
	var insights []string

	switch {
	case b.MeanScore > 0.3:
		insights = append(insights, "Los clientes están satisfechos en general")
	case b.MeanScore < -0.3:
		insights = append(insights, "Los clientes están insatisfechos en general, se requiere acción")
	default:
		insights = append(insights, "Las opiniones de los clientes son mixtas")
	}

	bestAspect, worstAspect := AspectTaste, AspectTaste
	for _, aspect := range Aspects() {
		if b.Aspects[aspect] > b.Aspects[bestAspect] {
			bestAspect = aspect
		}
		if b.Aspects[aspect] < b.Aspects[worstAspect] {
			worstAspect = aspect
		}
	}
	if b.Aspects[bestAspect] > 0.2 {
		insights = append(insights, fmt.Sprintf("Fortaleza destacada: %s", aspectLabel(bestAspect)))
	}
	if b.Aspects[worstAspect] < -0.2 {
		insights = append(insights, fmt.Sprintf("Aspecto a mejorar: %s", aspectLabel(worstAspect)))
	}

	switch {
	case b.ScoreVariance < lowVarianceThreshold:
		insights = append(insights, "Experiencia consistente entre clientes")
	case b.ScoreVariance > highVarianceThreshold:
		insights = append(insights, "Experiencia inconsistente entre clientes, investigar causas")
	}

	return insights
}

func aspectLabel(a Aspect) string {
	switch a {
	case AspectTaste:
		return "sabor"
	case AspectQuality:
		return "calidad"
	case AspectService:
		return "servicio"
	case AspectPrice:
		return "precio"
	case AspectQuantity:
		return "cantidad"
	case AspectHygiene:
		return "higiene"
	default:
		return string(a)
	}
}
