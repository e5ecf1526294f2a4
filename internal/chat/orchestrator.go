// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package chat drives the turn-based marketplace assistant: each call
// analyzes one user message, composes a templated reply and returns
// follow-up suggestions, UI actions and optional in-chat
// recommendations. All conversation state lives in the caller-supplied
// Context.
package chat

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tugotugo/insight/internal/intent"
	"github.com/tugotugo/insight/internal/recommend"
	"github.com/tugotugo/insight/internal/sentiment"
)

// Empathy thresholds on the message sentiment score.
const (
	strongNegative = -0.5
	mildNegative   = -0.3
	mildPositive   = 0.3
	strongPositive = 0.5
)

// Conversation-level analysis thresholds.
const (
	frustrationThreshold = -0.3
	maxUnknownTurns      = 2
)

const inChatRecommendationLimit = 5

// Recommender is the slice of the recommendation engine the orchestrator
// needs for in-chat suggestions.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Orchestrator composes assistant replies. It is stateless between calls
// and safe for concurrent use as long as each Context is owned by a
// single caller at a time.
type Orchestrator struct {
	detector    *intent.Detector
	analyzer    *sentiment.Analyzer
	recommender Recommender
	logger      zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewOrchestrator creates the assistant. recommender may be nil, in which
// case in-chat recommendations are skipped.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOrchestrator(detector *intent.Detector, analyzer *sentiment.Analyzer, recommender Recommender, seed int64, logger zerolog.Logger) *Orchestrator {
	if seed == 0 {
		seed = 42
	}
	return &Orchestrator{
		detector:    detector,
		analyzer:    analyzer,
		recommender: recommender,
		logger:      logger.With().Str("component", "chat").Logger(),
		rng:         rand.New(rand.NewSource(seed)), //nolint:gosec // template choice only
	}
}

// fallback replies when no intent matches.
var fallbackTemplates = []string{
	"No estoy seguro de haberte entendido. ¿Buscas packs cerca de ti o algo en concreto?",
	"Hmm, eso no lo tengo claro. Puedo ayudarte a encontrar packs sorpresa, ver tus pedidos o resolver dudas.",
	"¿Puedes decírmelo de otra forma? Por ejemplo: \"packs baratos cerca de mí\".",
}

var fallbackSuggestions = []string{
	"Ver packs cerca de mí",
	"¿Cómo funciona TugoTugo?",
	"Mis pedidos",
}

// ProcessMessage handles one user turn. It mutates ctx: extracted
// entities are merged in, the last intent is updated, and both the user
// message and the generated reply are appended to the history.
func (o *Orchestrator) ProcessMessage(ctx context.Context, text string, conv *Context) (*Response, error) {
	now := time.Now()

	sent := o.analyzer.Analyze(text)
	tag := o.detector.Detect(text)
	entities := o.detector.Extract(text)

	if conv.Entities == nil {
		conv.Entities = make(map[string]string, len(entities))
	}
	for k, v := range entities {
		conv.Entities[k] = v
	}
	conv.LastIntent = tag

	message := o.composeReply(tag, conv.Entities, sent.Score)
	suggestions := o.suggestionsFor(tag)
	actions := o.actionsFor(tag, conv)

	resp := &Response{
		Message:     message,
		Suggestions: suggestions,
		Actions:     actions,
		Confidence:  confidenceScore(tag, entities, sent),
	}

	if tag == intent.TagFoodRecommendation || tag == intent.TagLocationBased {
		resp.Recommendations = o.inChatRecommendations(ctx, conv)
	}

	conv.History = append(conv.History,
		Message{
			Role:      RoleUser,
			Text:      text,
			Timestamp: now,
			Metadata: &MessageMetadata{
				Intent:     tag,
				Entities:   entities,
				Confidence: resp.Confidence,
				Sentiment:  sent.Score,
			},
		},
		Message{
			Role:      RoleAssistant,
			Text:      resp.Message,
			Timestamp: time.Now(),
		},
	)

	o.logger.Debug().
		Str("session_id", conv.SessionID).
		Str("intent", tag).
		Int("entities", len(entities)).
		Float64("sentiment", sent.Score).
		Float64("confidence", resp.Confidence).
		Msg("processed message")

	return resp, nil
}

// composeReply picks a template for the intent, substitutes entity
// placeholders and wraps it in empathy when the sentiment warrants it.
func (o *Orchestrator) composeReply(tag string, entities map[string]string, sentimentScore float64) string {
	templates := fallbackTemplates
	if row, ok := o.detector.Lookup(tag); ok && tag != intent.TagUnknown && len(row.Templates) > 0 {
		templates = row.Templates
	}

	message := substitute(o.pick(templates), entities)

	switch {
	case sentimentScore <= strongNegative:
		message = "Vaya, lamento mucho que haya sido así. " + message
	case sentimentScore <= mildNegative:
		message = "Siento leer eso. " + message
	case sentimentScore >= strongPositive:
		message += " ¡Me alegra un montón!"
	case sentimentScore >= mildPositive:
		message += " ¡Genial!"
	}
	return message
}

// pick chooses a random element.
func (o *Orchestrator) pick(options []string) string {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return options[o.rng.Intn(len(options))]
}

// substitute fills {entity_type} placeholders from the accumulated
// entities. Placeholders with no value fall back to a generic word
// rather than leaking braces to the user.
func substitute(template string, entities map[string]string) string {
	for k, v := range entities {
		template = strings.ReplaceAll(template, "{"+k+"}", v)
	}
	template = strings.ReplaceAll(template, "{"+intent.EntityCuisine+"}", "comida rica")
	return template
}

// suggestionsFor returns the canned follow-ups for an intent.
func (o *Orchestrator) suggestionsFor(tag string) []string {
	if row, ok := o.detector.Lookup(tag); ok && len(row.Suggestions) > 0 {
		return append([]string(nil), row.Suggestions...)
	}
	return append([]string(nil), fallbackSuggestions...)
}

// actionsFor maps the intent's action tags to concrete action objects.
// Location-aware actions carry the user's position so the UI can execute
// them without re-asking.
func (o *Orchestrator) actionsFor(tag string, conv *Context) []Action {
	row, ok := o.detector.Lookup(tag)
	if !ok {
		return []Action{}
	}

	actions := make([]Action, 0, len(row.Actions))
	for _, actionTag := range row.Actions {
		action := Action{Type: actionTag}
		switch actionTag {
		case intent.ActionShowOffers, intent.ActionShowMap:
			payload := map[string]any{}
			if conv.Location != nil {
				payload["latitude"] = conv.Location.Latitude
				payload["longitude"] = conv.Location.Longitude
			}
			if conv.Profile != nil && conv.Profile.Preferences.SearchRadiusMeters > 0 {
				payload["radius_meters"] = conv.Profile.Preferences.SearchRadiusMeters
			}
			if cuisine, found := conv.Entities[intent.EntityCuisine]; found {
				payload["category"] = cuisine
			}
			if len(payload) > 0 {
				action.Payload = payload
			}
		case intent.ActionShowOrders, intent.ActionShowFavorites:
			action.Payload = map[string]any{"user_id": conv.UserID}
		}
		actions = append(actions, action)
	}
	return actions
}

// inChatRecommendations attaches engine recommendations to the reply.
// Engine failures degrade to no recommendations, never to a failed turn.
func (o *Orchestrator) inChatRecommendations(ctx context.Context, conv *Context) []recommend.Recommendation {
	if o.recommender == nil {
		return nil
	}

	resp, err := o.recommender.Recommend(ctx, recommend.Request{
		UserID:   conv.UserID,
		Location: conv.Location,
		Limit:    inChatRecommendationLimit,
	})
	if err != nil {
		o.logger.Warn().Err(err).Str("session_id", conv.SessionID).Msg("in-chat recommendations unavailable")
		return nil
	}
	return resp.Recommendations
}

// confidenceScore grades how well the turn was understood: 0.5 base,
// +0.3 for a known intent, +0.2 for any extracted entity, +0.1 for
// confident sentiment, capped at 1.0.
func confidenceScore(tag string, entities map[string]string, sent sentiment.Result) float64 {
	score := 0.5
	if tag != intent.TagUnknown {
		score += 0.3
	}
	if len(entities) > 0 {
		score += 0.2
	}
	if sent.Confidence > 0.7 {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}
	return score
}

// AnalyzeSatisfaction computes a conversation-level satisfaction estimate
// from the sentiment of all user turns.
func (o *Orchestrator) AnalyzeSatisfaction(conv *Context) SatisfactionReport {
	var report SatisfactionReport
	var total float64

	for _, msg := range conv.History {
		if msg.Role != RoleUser {
			continue
		}
		report.UserTurns++

		if msg.Metadata != nil {
			total += msg.Metadata.Sentiment
			if msg.Metadata.Intent == intent.TagUnknown {
				report.UnknownTurns++
			}
			continue
		}
		// Messages appended by the caller without metadata are analyzed
		// on the fly.
		total += o.analyzer.Analyze(msg.Text).Score
		if o.detector.Detect(msg.Text) == intent.TagUnknown {
			report.UnknownTurns++
		}
	}

	if report.UserTurns > 0 {
		report.MeanSentiment = total / float64(report.UserTurns)
	}
	report.Frustration = report.UserTurns > 0 && report.MeanSentiment < frustrationThreshold
	report.IntentCoverageGap = report.UnknownTurns > maxUnknownTurns
	return report
}
