// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package behavior

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Action classifies a tracked user action.
type Action string

// Tracked action kinds.
const (
	ActionView     Action = "view"
	ActionPurchase Action = "purchase"
	ActionSearch   Action = "search"
)

// Valid reports whether the action is one of the tracked kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionView, ActionPurchase, ActionSearch:
		return true
	default:
		return false
	}
}

// TrackData carries the per-action payload for Track. Only the fields
// relevant to the action kind need to be set.
type TrackData struct {
	// Pack view and purchase fields.
	PackID          string     `json:"pack_id,omitempty"`
	EstablishmentID string     `json:"establishment_id,omitempty"`
	Category        string     `json:"category,omitempty"`
	Price           float64    `json:"price,omitempty"`
	DurationSeconds int        `json:"duration_seconds,omitempty"`
	Source          ViewSource `json:"source,omitempty"`

	// Search fields.
	Query      string   `json:"query,omitempty"`
	ResultIDs  []string `json:"result_ids,omitempty"`
	ClickedIDs []string `json:"clicked_ids,omitempty"`

	// Location, when the client reported one with the action.
	Location *Location `json:"location,omitempty"`

	// Timestamp of the action. Zero means "now".
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Retention bounds history growth.
type Retention struct {
	// MaxEvents caps each history list (purchases, views, searches) to the
	// most recent N entries. Default: 500.
	MaxEvents int
}

// topPreferenceCount is how many top categories, establishments and hours
// are derived from the purchase history.
const topPreferenceCount = 5

// lockStripes is the number of per-user mutex stripes in the Tracker.
const lockStripes = 64

// Tracker applies tracked actions to behavior records.
//
// The read-modify-write sequence against the Store is serialized per user
// through striped locks, so concurrent Track calls for the same user do
// not lose updates. Concurrent calls for different users proceed in
// parallel (modulo stripe collisions).
type Tracker struct {
	store     Store
	retention Retention
	logger    zerolog.Logger
	locks     [lockStripes]chan struct{}
}

// NewTracker creates a tracker over the given store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTracker(store Store, retention Retention, logger zerolog.Logger) *Tracker {
	if retention.MaxEvents <= 0 {
		retention.MaxEvents = 500
	}

	t := &Tracker{
		store:     store,
		retention: retention,
		logger:    logger.With().Str("component", "behavior").Logger(),
	}
	for i := range t.locks {
		t.locks[i] = make(chan struct{}, 1)
	}
	return t
}

// Track records one user action and recomputes derived preferences.
// The behavior record is created on first use.
func (t *Tracker) Track(ctx context.Context, userID string, action Action, data TrackData) error {
	if userID == "" {
		return fmt.Errorf("track: empty user id")
	}
	if !action.Valid() {
		return fmt.Errorf("track: unknown action %q", action)
	}

	if err := t.lockUser(ctx, userID); err != nil {
		return err
	}
	defer t.unlockUser(userID)

	ub, err := t.store.Get(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		ub = &UserBehavior{UserID: userID}
	default:
		return fmt.Errorf("load behavior for %s: %w", userID, err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	switch action {
	case ActionView:
		ub.History.Views = append(ub.History.Views, PackView{
			PackID:          data.PackID,
			Timestamp:       ts,
			DurationSeconds: data.DurationSeconds,
			Source:          data.Source,
		})
	case ActionPurchase:
		ub.History.Purchases = append(ub.History.Purchases, Purchase{
			PackID:          data.PackID,
			EstablishmentID: data.EstablishmentID,
			Category:        data.Category,
			Price:           data.Price,
			Timestamp:       ts,
		})
	case ActionSearch:
		ub.History.Searches = append(ub.History.Searches, SearchEvent{
			Query:      data.Query,
			Timestamp:  ts,
			ResultIDs:  data.ResultIDs,
			ClickedIDs: data.ClickedIDs,
		})
	}

	if data.Location != nil {
		loc := *data.Location
		ub.Location = &loc
	}

	t.applyRetention(ub)
	recomputePreferences(ub)
	ub.UpdatedAt = ts

	if err := t.store.Put(ctx, ub); err != nil {
		return fmt.Errorf("store behavior for %s: %w", userID, err)
	}

	t.logger.Debug().
		Str("user_id", userID).
		Str("action", string(action)).
		Int("purchases", len(ub.History.Purchases)).
		Msg("behavior tracked")

	return nil
}

// applyRetention trims each history list to the configured cap, dropping
// the oldest entries.
func (t *Tracker) applyRetention(ub *UserBehavior) {
	maxN := t.retention.MaxEvents
	if n := len(ub.History.Purchases); n > maxN {
		ub.History.Purchases = ub.History.Purchases[n-maxN:]
	}
	if n := len(ub.History.Views); n > maxN {
		ub.History.Views = ub.History.Views[n-maxN:]
	}
	if n := len(ub.History.Searches); n > maxN {
		ub.History.Searches = ub.History.Searches[n-maxN:]
	}
}

// recomputePreferences derives preference fields from the full purchase
// history. This is a full recompute on every call, not incremental; the
// history is bounded so the cost stays small.
func recomputePreferences(ub *UserBehavior) {
	purchases := ub.History.Purchases
	if len(purchases) == 0 {
		return
	}

	categories := make(map[string]int)
	establishments := make(map[string]int)
	hours := make(map[int]int)
	priceMin, priceMax := purchases[0].Price, purchases[0].Price

	for _, p := range purchases {
		if p.Category != "" {
			categories[p.Category]++
		}
		if p.EstablishmentID != "" {
			establishments[p.EstablishmentID]++
		}
		hours[p.Timestamp.Hour()]++

		if p.Price < priceMin {
			priceMin = p.Price
		}
		if p.Price > priceMax {
			priceMax = p.Price
		}
	}

	ub.Preferences.Categories = topStrings(categories, topPreferenceCount)
	ub.Preferences.FavoriteEstablishments = topStrings(establishments, topPreferenceCount)
	ub.Preferences.PreferredHours = topInts(hours, topPreferenceCount)
	ub.Preferences.PriceMin = priceMin
	ub.Preferences.PriceMax = priceMax
}

// topStrings returns the n highest-count keys, count descending with key
// order as a deterministic tie break.
func topStrings(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func topInts(counts map[int]int, n int) []int {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// lockUser acquires the stripe lock for a user, respecting ctx cancellation.
func (t *Tracker) lockUser(ctx context.Context, userID string) error {
	select {
	case t.locks[stripeFor(userID)] <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Tracker) unlockUser(userID string) {
	<-t.locks[stripeFor(userID)]
}

func stripeFor(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % lockStripes)
}
