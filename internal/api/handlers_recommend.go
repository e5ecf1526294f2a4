// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/metrics"
	"github.com/tugotugo/insight/internal/recommend"
)

// Recommendations serves GET /api/v1/recommendations/user/{userID}.
// Optional query parameters: lat, lng (the user's current position) and
// limit.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_user", "user id is required", nil)
		return
	}

	req := recommend.Request{UserID: userID}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			respondError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer", err)
			return
		}
		req.Limit = limit
	}

	latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			respondError(w, r, http.StatusBadRequest, "invalid_location", "lat/lng must be valid coordinates", nil)
			return
		}
		req.Location = &behavior.Location{Latitude: lat, Longitude: lng}
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "recommendation_failed", "could not generate recommendations", err)
		return
	}

	metrics.RecommendationLatency.Observe(time.Since(start).Seconds())
	if resp.Metadata.CacheHit {
		metrics.RecommendationRequests.WithLabelValues("hit").Inc()
	} else {
		metrics.RecommendationRequests.WithLabelValues("miss").Inc()
	}
	for _, signal := range resp.Metadata.SignalsUsed {
		metrics.SignalContributions.WithLabelValues(signal).Inc()
	}

	respondJSON(w, r, http.StatusOK, resp)
}

// SimilarOffers serves GET /api/v1/recommendations/similar/{offerID}:
// embedding-based item similarity over the current candidate set.
func (h *Handler) SimilarOffers(w http.ResponseWriter, r *http.Request) {
	offerID := chi.URLParam(r, "offerID")
	if offerID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_offer", "offer id is required", nil)
		return
	}

	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			respondError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer", err)
			return
		}
		limit = parsed
	}

	candidates, err := h.candidateIDs(r)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "offers_unavailable", "could not load candidate offers", err)
		return
	}

	respondJSON(w, r, http.StatusOK, h.simulator.SimilarOffers(offerID, candidates, limit))
}

// candidateIDs loads the current offer snapshot and returns its IDs.
func (h *Handler) candidateIDs(r *http.Request) ([]string, error) {
	offers, err := h.source.Candidates(r.Context())
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(offers))
	for i, offer := range offers {
		ids[i] = offer.ID
	}
	return ids, nil
}
