// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tugotugo/insight/internal/metrics"
)

const (
	wsWriteTimeout   = 10 * time.Second
	wsPongTimeout    = 60 * time.Second
	wsPingInterval   = 30 * time.Second
	wsMaxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens at the CORS layer; the assistant
	// endpoint carries no privileged data beyond the session itself.
	CheckOrigin: func(*http.Request) bool { return true },
}

// wsIncoming is one client frame on the chat socket.
type wsIncoming struct {
	Message string `json:"message"`
}

// ChatWebSocket serves GET /api/v1/chat/ws?user_id=&session_id=, a
// persistent chat connection. Each text frame is one user turn; each
// reply frame carries the assistant's Response.
func (h *Handler) ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, "missing_user", "user_id query parameter is required", nil)
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	logger := h.logger.With().Str("session_id", sessionID).Str("user_id", userID).Logger()
	logger.Info().Msg("chat websocket connected")

	conv := h.sessions.acquire(sessionID, userID)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
					return
				}
			}
		}
	}()

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("chat websocket closed unexpectedly")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var in wsIncoming
		if err := json.Unmarshal(payload, &in); err != nil || in.Message == "" {
			continue
		}

		resp, err := h.chat.ProcessMessage(r.Context(), in.Message, conv)
		if err != nil {
			logger.Error().Err(err).Msg("process websocket turn")
			continue
		}
		metrics.ChatTurns.WithLabelValues(conv.LastIntent).Inc()

		out, err := json.Marshal(map[string]any{
			"session_id": sessionID,
			"response":   resp,
		})
		if err != nil {
			logger.Error().Err(err).Msg("marshal websocket reply")
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			logger.Warn().Err(err).Msg("write websocket reply")
			return
		}
	}
}
