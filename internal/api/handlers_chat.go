// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/metrics"
)

// chatRequest is the POST /chat/message body. SessionID groups turns
// into one conversation; a missing one starts a new session.
type chatRequest struct {
	UserID    string             `json:"user_id"`
	SessionID string             `json:"session_id,omitempty"`
	Message   string             `json:"message"`
	Location  *behavior.Location `json:"location,omitempty"`
}

// ChatMessage serves POST /api/v1/chat/message.
func (h *Handler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON", err)
		return
	}
	if req.UserID == "" || req.Message == "" {
		respondError(w, r, http.StatusBadRequest, "missing_fields", "user_id and message are required", nil)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	conv := h.sessions.acquire(req.SessionID, req.UserID)
	if req.Location != nil {
		conv.Location = req.Location
	}

	resp, err := h.chat.ProcessMessage(r.Context(), req.Message, conv)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "chat_failed", "could not process the message", err)
		return
	}
	metrics.ChatTurns.WithLabelValues(conv.LastIntent).Inc()

	respondJSON(w, r, http.StatusOK, map[string]any{
		"session_id": req.SessionID,
		"response":   resp,
	})
}

// ChatSatisfaction serves GET /api/v1/chat/session/{sessionID}/satisfaction.
func (h *Handler) ChatSatisfaction(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	conv, ok := h.sessions.lookup(sessionID)
	if !ok {
		respondError(w, r, http.StatusNotFound, "unknown_session", "no active conversation for this session", nil)
		return
	}

	respondJSON(w, r, http.StatusOK, h.chat.AnalyzeSatisfaction(conv))
}
