// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package behavior

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Store.Get when no record exists for a user.
var ErrNotFound = errors.New("behavior record not found")

// Store persists UserBehavior records keyed by user ID.
//
// ListUserIDs exists for the similar-user signal, which scans other users'
// profiles. Implementations may return IDs in any order.
type Store interface {
	// Get returns the behavior record for a user, or ErrNotFound.
	Get(ctx context.Context, userID string) (*UserBehavior, error)

	// Put stores or replaces the behavior record for ub.UserID.
	Put(ctx context.Context, ub *UserBehavior) error

	// ListUserIDs returns the IDs of all users with a behavior record.
	ListUserIDs(ctx context.Context) ([]string, error)
}

// MemoryStore is an in-memory Store. It is safe for concurrent use and is
// the backend for tests and single-process embedding.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*UserBehavior
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*UserBehavior)}
}

// Get returns a copy of the stored record so callers cannot mutate shared
// state behind the store's back.
func (s *MemoryStore) Get(_ context.Context, userID string) (*UserBehavior, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ub, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyBehavior(ub), nil
}

// Put stores a copy of the record.
func (s *MemoryStore) Put(_ context.Context, ub *UserBehavior) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[ub.UserID] = copyBehavior(ub)
	return nil
}

// ListUserIDs returns all known user IDs in sorted order.
func (s *MemoryStore) ListUserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func copyBehavior(ub *UserBehavior) *UserBehavior {
	cp := *ub

	cp.Preferences.Categories = append([]string(nil), ub.Preferences.Categories...)
	cp.Preferences.Dietary = append([]string(nil), ub.Preferences.Dietary...)
	cp.Preferences.FavoriteEstablishments = append([]string(nil), ub.Preferences.FavoriteEstablishments...)
	cp.Preferences.PreferredHours = append([]int(nil), ub.Preferences.PreferredHours...)

	cp.History.Purchases = append([]Purchase(nil), ub.History.Purchases...)
	cp.History.Views = append([]PackView(nil), ub.History.Views...)
	cp.History.Searches = make([]SearchEvent, len(ub.History.Searches))
	for i, se := range ub.History.Searches {
		cp.History.Searches[i] = se
		cp.History.Searches[i].ResultIDs = append([]string(nil), se.ResultIDs...)
		cp.History.Searches[i].ClickedIDs = append([]string(nil), se.ClickedIDs...)
	}

	if ub.Location != nil {
		loc := *ub.Location
		cp.Location = &loc
	}
	return &cp
}
