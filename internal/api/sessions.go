// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package api

import (
	"sync"
	"time"

	"github.com/tugotugo/insight/internal/chat"
)

// sessionStore keeps conversation contexts alive between HTTP calls. The
// orchestrator itself is stateless; this is the HTTP layer's ownership of
// the per-session context the chat contract requires the caller to hold.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	conv     *chat.Context
	lastSeen time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
	}
}

// acquire returns the context for a session, creating it on first use,
// and evicts expired sessions opportunistically. The caller must hold the
// returned context exclusively for the duration of one turn; the store's
// lock is not held while the turn runs, so concurrent turns on the SAME
// session are the caller's responsibility to avoid, matching the chat
// package's ownership rule.
func (s *sessionStore) acquire(sessionID, userID string) *chat.Context {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}

	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{conv: &chat.Context{UserID: userID, SessionID: sessionID}}
		s.sessions[sessionID] = entry
	}
	entry.lastSeen = now
	return entry.conv
}

// lookup returns an existing session context without creating one.
func (s *sessionStore) lookup(sessionID string) (*chat.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.conv, true
}
