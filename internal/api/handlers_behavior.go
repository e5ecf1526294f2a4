// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/events"
)

// trackRequest is the POST /behavior/track body.
type trackRequest struct {
	UserID string             `json:"user_id"`
	Action behavior.Action    `json:"action"`
	Data   behavior.TrackData `json:"data"`
}

// TrackBehavior serves POST /api/v1/behavior/track. The event is
// published onto the in-process bus and applied asynchronously; 202 means
// accepted, not yet visible.
func (h *Handler) TrackBehavior(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", err)
		return
	}
	if req.UserID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_user", "user_id is required", nil)
		return
	}
	if !req.Action.Valid() {
		respondError(w, r, http.StatusBadRequest, "invalid_action", "action must be view, purchase or search", nil)
		return
	}

	err := h.publisher.Publish(events.BehaviorEvent{
		UserID: req.UserID,
		Action: req.Action,
		Data:   req.Data,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "publish_failed", "could not queue the event", err)
		return
	}

	respondJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// BehaviorProfile serves GET /api/v1/behavior/user/{userID}.
func (h *Handler) BehaviorProfile(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, r, http.StatusOK, ub)
}
