// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/forecast"
)

// DemandForecast serves GET /api/v1/forecast/demand/{offerID}.
func (h *Handler) DemandForecast(w http.ResponseWriter, r *http.Request) {
	offerID := chi.URLParam(r, "offerID")
	if offerID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_offer", "offer id is required", nil)
		return
	}

	respondJSON(w, r, http.StatusOK, h.simulator.DemandForecast(offerID))
}

// priceRequest is the POST /forecast/price body.
type priceRequest struct {
	CurrentPrice float64 `json:"current_price"`

	// DemandLevel is the offer's observed demand relative to its
	// category baseline, in [0, 1].
	DemandLevel float64 `json:"demand_level"`
}

// SuggestPrice serves POST /api/v1/forecast/price.
func (h *Handler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", err)
		return
	}

	suggestion, err := h.simulator.SuggestPrice(req.CurrentPrice, req.DemandLevel)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_price", err.Error(), nil)
		return
	}

	respondJSON(w, r, http.StatusOK, suggestion)
}

// PackPricing serves GET /api/v1/forecast/pricing/{offerID}: the price
// suggestion for one listed pack, with the demand level taken from the
// pack's own forecast at the current hour relative to its peak.
func (h *Handler) PackPricing(w http.ResponseWriter, r *http.Request) {
	offerID := chi.URLParam(r, "offerID")
	if offerID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_offer", "offer id is required", nil)
		return
	}

	offers, err := h.source.Candidates(r.Context())
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "offers_unavailable", "could not load candidate offers", err)
		return
	}

	price := 0.0
	for _, offer := range offers {
		if offer.ID == offerID {
			price = offer.DiscountedPrice
			break
		}
	}
	if price <= 0 {
		respondError(w, r, http.StatusNotFound, "unknown_offer", "no listed pack with this id", nil)
		return
	}

	fc := h.simulator.DemandForecast(offerID)
	hour := time.Now().Hour()
	var nowDemand, peakDemand float64
	for _, p := range fc.Points {
		if p.Demand > peakDemand {
			peakDemand = p.Demand
		}
		if p.Hour == hour {
			nowDemand = p.Demand
		}
	}
	level := 0.5
	if peakDemand > 0 {
		level = nowDemand / peakDemand
	}

	suggestion, err := h.simulator.SuggestPrice(price, level)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "pricing_failed", err.Error(), nil)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"offer_id":     offerID,
		"demand_level": level,
		"suggestion":   suggestion,
	})
}

// ChurnRisk serves GET /api/v1/forecast/churn/{userID}, deriving the
// recency/frequency features from the user's behavior record.
func (h *Handler) ChurnRisk(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_user", "user id is required", nil)
		return
	}

	ub, err := h.store.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, behavior.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "unknown_user", "no behavior recorded for this user", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "store_error", "could not load the behavior record", err)
		return
	}

	respondJSON(w, r, http.StatusOK, h.simulator.ChurnRisk(churnInputFrom(ub, time.Now())))
}

// churnInputFrom summarizes a behavior record into the churn features.
func churnInputFrom(ub *behavior.UserBehavior, now time.Time) forecast.ChurnInput {
	in := forecast.ChurnInput{DaysSinceLastPurchase: -1}

	for _, p := range ub.History.Purchases {
		age := now.Sub(p.Timestamp)
		switch {
		case age <= 30*24*time.Hour:
			in.PurchasesLast30Days++
		case age <= 60*24*time.Hour:
			in.PurchasesPrev30Days++
		}

		days := int(age.Hours() / 24)
		if in.DaysSinceLastPurchase < 0 || days < in.DaysSinceLastPurchase {
			in.DaysSinceLastPurchase = days
		}
	}

	if in.DaysSinceLastPurchase < 0 {
		// Never purchased: treat the account as fully inactive.
		in.DaysSinceLastPurchase = 90
	}
	return in
}
