// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tugotugo/insight/internal/metrics"
	"github.com/tugotugo/insight/internal/sentiment"
)

// analyzeRequest is the POST /reviews/analyze body.
type analyzeRequest struct {
	Text string `json:"text"`
}

// analyzeResponse bundles the sentiment result with the derived
// satisfaction prediction and improvement suggestions.
type analyzeResponse struct {
	Sentiment       sentiment.Result `json:"sentiment"`
	PredictedRating float64          `json:"predicted_rating"`
	Recommendations []string         `json:"recommendations"`
}

// AnalyzeReview serves POST /api/v1/reviews/analyze.
func (h *Handler) AnalyzeReview(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", err)
		return
	}

	result := h.analyzer.Analyze(req.Text)
	metrics.SentimentAnalyses.WithLabelValues(string(result.Label)).Inc()

	respondJSON(w, r, http.StatusOK, analyzeResponse{
		Sentiment:       result,
		PredictedRating: sentiment.PredictSatisfaction(result),
		Recommendations: sentiment.Recommendations(result),
	})
}

// batchRequest is the POST /reviews/pack/{packID} body.
type batchRequest struct {
	Reviews []sentiment.Review `json:"reviews"`
}

// AnalyzePackReviews serves POST /api/v1/reviews/pack/{packID}: batch
// analysis of all reviews for one pack.
func (h *Handler) AnalyzePackReviews(w http.ResponseWriter, r *http.Request) {
	packID := chi.URLParam(r, "packID")
	if packID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_pack", "pack id is required", nil)
		return
	}

	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", err)
		return
	}

	result := h.analyzer.AnalyzeBatch(req.Reviews)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"pack_id": packID,
		"result":  result,
	})
}
