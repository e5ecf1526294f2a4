// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package behavior tracks per-user marketplace activity and derives the
// preference profile the recommendation engine personalizes against.
//
// A UserBehavior record is created lazily on the first tracked action,
// mutated by every subsequent Track call, and persisted through a Store.
// History lists are bounded (see Retention) so records do not grow
// without limit.
package behavior

import "time"

// ViewSource identifies the channel through which a pack view happened.
type ViewSource string

// Valid view sources.
const (
	SourceSearch         ViewSource = "search"
	SourceRecommendation ViewSource = "recommendation"
	SourceCategory       ViewSource = "category"
	SourceMap            ViewSource = "map"
)

// Location is a geographic point in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Preferences holds derived and user-set preference fields.
//
// Categories, FavoriteEstablishments, PriceMin/PriceMax and PreferredHours
// are recomputed from the full purchase history on every tracked purchase.
// Dietary and SearchRadiusMeters are user-set and never derived.
type Preferences struct {
	// Categories are the user's top purchase categories, most frequent first.
	Categories []string `json:"categories"`

	// PriceMin and PriceMax bound the prices the user has paid.
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	// Dietary lists dietary restrictions (e.g. "vegan", "gluten_free").
	Dietary []string `json:"dietary,omitempty"`

	// FavoriteEstablishments are the most purchased-from establishment IDs.
	FavoriteEstablishments []string `json:"favorite_establishments"`

	// PreferredHours are the hours of day (0-23) the user buys at most often.
	PreferredHours []int `json:"preferred_hours"`

	// SearchRadiusMeters is the user's configured discovery radius.
	// Zero means "use the engine default".
	SearchRadiusMeters float64 `json:"search_radius_meters,omitempty"`
}

// Purchase is an immutable purchase event.
type Purchase struct {
	PackID          string    `json:"pack_id"`
	EstablishmentID string    `json:"establishment_id"`
	Category        string    `json:"category,omitempty"`
	Price           float64   `json:"price"`
	Timestamp       time.Time `json:"timestamp"`
}

// PackView is an immutable pack-view event.
type PackView struct {
	PackID          string     `json:"pack_id"`
	Timestamp       time.Time  `json:"timestamp"`
	DurationSeconds int        `json:"duration_seconds"`
	Source          ViewSource `json:"source"`
}

// SearchEvent is an immutable search event with the results shown and the
// subset the user clicked.
type SearchEvent struct {
	Query      string    `json:"query"`
	Timestamp  time.Time `json:"timestamp"`
	ResultIDs  []string  `json:"result_ids,omitempty"`
	ClickedIDs []string  `json:"clicked_ids,omitempty"`
}

// History holds the ordered event lists for a user, oldest first.
type History struct {
	Purchases []Purchase    `json:"purchases"`
	Views     []PackView    `json:"views"`
	Searches  []SearchEvent `json:"searches"`
}

// UserBehavior is the accumulated per-user state.
type UserBehavior struct {
	UserID      string      `json:"user_id"`
	Preferences Preferences `json:"preferences"`
	History     History     `json:"history"`
	Location    *Location   `json:"location,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
