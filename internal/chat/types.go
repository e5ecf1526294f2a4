// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package chat

import (
	"time"

	"github.com/tugotugo/insight/internal/behavior"
	"github.com/tugotugo/insight/internal/recommend"
)

// Role identifies the author of a message.
type Role string

// Valid roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// MessageMetadata carries the analysis attached to a processed message.
type MessageMetadata struct {
	Intent     string            `json:"intent,omitempty"`
	Entities   map[string]string `json:"entities,omitempty"`
	Confidence float64           `json:"confidence,omitempty"`
	Sentiment  float64           `json:"sentiment,omitempty"`
}

// Message is one turn of a conversation.
type Message struct {
	Role      Role             `json:"role"`
	Text      string           `json:"text"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// Context is the caller-owned conversation state. The orchestrator keeps
// no session state of its own: everything that survives between turns
// lives here. Entities and LastIntent carry forward turn to turn so a
// follow-up like "¿y más barato?" still knows the cuisine under
// discussion.
type Context struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`

	// Profile is the user's behavior record, when known.
	Profile *behavior.UserBehavior `json:"profile,omitempty"`

	// Location is the user's current position, when shared.
	Location *behavior.Location `json:"location,omitempty"`

	// History is the ordered message log, oldest first.
	History []Message `json:"history"`

	// Entities accumulates extracted entities; new values overwrite old
	// ones under the same key.
	Entities map[string]string `json:"entities,omitempty"`

	// LastIntent is the most recent detected intent tag.
	LastIntent string `json:"last_intent,omitempty"`
}

// Action is a side effect the UI should execute, such as opening the
// offer list. The orchestrator only describes actions; it never performs
// them.
type Action struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response is the orchestrator's answer to one user message.
type Response struct {
	Message         string                     `json:"message"`
	Suggestions     []string                   `json:"suggestions"`
	Actions         []Action                   `json:"actions"`
	Recommendations []recommend.Recommendation `json:"recommendations,omitempty"`
	Confidence      float64                    `json:"confidence"`
}

// SatisfactionReport is the output of conversation-level satisfaction
// analysis.
type SatisfactionReport struct {
	// MeanSentiment is the average sentiment score of all user turns.
	MeanSentiment float64 `json:"mean_sentiment"`

	// UserTurns is how many user messages were analyzed.
	UserTurns int `json:"user_turns"`

	// UnknownTurns counts user turns that resolved to no known intent.
	UnknownTurns int `json:"unknown_turns"`

	// Frustration fires when the mean sentiment is clearly negative.
	Frustration bool `json:"frustration"`

	// IntentCoverageGap fires when the assistant repeatedly failed to
	// understand the user, a signal to extend the intent table.
	IntentCoverageGap bool `json:"intent_coverage_gap"`
}
