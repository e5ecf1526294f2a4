// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

// Package intent classifies chat utterances into a fixed set of intents
// and extracts structured entities via pattern matching.
//
// This is intentionally a closed, deterministic, data-driven classifier,
// not a statistical model: intents are rows in a table of trigger
// phrases, entities are single-capture regular expressions. Extending
// either means editing the tables, no code changes elsewhere.
package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// Entity types produced by the extractor.
const (
	EntityCuisine          = "cuisine_type"
	EntityLocation         = "location"
	EntityPriceSensitivity = "price_sensitivity"
	EntityTimeOfDay        = "time_of_day"
	EntityPartySize        = "party_size"
)

// EntityPattern binds an entity type to its capture expression. Each
// pattern is tested independently against the raw message; the first
// match wins per entity type.
type EntityPattern struct {
	Type    string
	Pattern string
}

// DefaultEntityPatterns returns the fixed entity extraction patterns.
func DefaultEntityPatterns() []EntityPattern {
	return []EntityPattern{
		{
			Type:    EntityCuisine,
			Pattern: `(?i)\b(pizza|sushi|tacos?|hamburguesas?|pasta|ensaladas?|postres?|panader[ií]a|pasteler[ií]a|caf[eé]|vegan[oa]|vegetarian[oa]|mariscos?|pollo|parrilla|bocadillos?)\b`,
		},
		{
			Type:    EntityLocation,
			Pattern: `(?i)\b(?:en|cerca de|por|zona de)\s+([a-záéíóúñü]+(?:\s+[a-záéíóúñü]+)?)`,
		},
		{
			Type:    EntityPriceSensitivity,
			Pattern: `(?i)\b(barat[oa]s?|econ[oó]mic[oa]s?|descuento|oferta|low\s?cost|car[oa]s?)\b`,
		},
		{
			Type:    EntityTimeOfDay,
			Pattern: `(?i)\b(desayuno|almuerzo|comida|merienda|cena|mediod[ií]a|mañana|tarde|noche)\b`,
		},
		{
			Type:    EntityPartySize,
			Pattern: `(?i)\b(?:para|somos)\s+(\d{1,2})\b`,
		},
	}
}

// Detector performs intent detection and entity extraction over an
// immutable table and pattern set.
type Detector struct {
	table    []Intent
	byTag    map[string]Intent
	patterns []compiledPattern
}

type compiledPattern struct {
	entityType string
	re         *regexp.Regexp
}

// New compiles a detector from an intent table and entity patterns.
func New(table []Intent, patterns []EntityPattern) (*Detector, error) {
	d := &Detector{
		table:    table,
		byTag:    make(map[string]Intent, len(table)),
		patterns: make([]compiledPattern, 0, len(patterns)),
	}
	for _, in := range table {
		if _, exists := d.byTag[in.Tag]; exists {
			return nil, fmt.Errorf("duplicate intent tag %q", in.Tag)
		}
		d.byTag[in.Tag] = in
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile entity pattern %s: %w", p.Type, err)
		}
		d.patterns = append(d.patterns, compiledPattern{entityType: p.Type, re: re})
	}
	return d, nil
}

// NewDefault compiles a detector with the built-in table and patterns.
func NewDefault() (*Detector, error) {
	return New(DefaultTable(), DefaultEntityPatterns())
}

// Detect classifies a message. For each intent it counts how many trigger
// phrases are substrings of the normalized message; the highest count
// wins, ties break to the first-registered intent, zero hits return
// TagUnknown.
func (d *Detector) Detect(message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return TagUnknown
	}

	best := TagUnknown
	bestCount := 0
	for _, in := range d.table {
		count := 0
		for _, trigger := range in.Triggers {
			if strings.Contains(normalized, trigger) {
				count++
			}
		}
		if count > bestCount {
			best = in.Tag
			bestCount = count
		}
	}
	return best
}

// Extract runs every entity pattern against the raw message. The first
// match wins per entity type; types never overwrite each other.
func (d *Detector) Extract(message string) map[string]string {
	entities := make(map[string]string)
	for _, p := range d.patterns {
		if _, seen := entities[p.entityType]; seen {
			continue
		}
		m := p.re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		entities[p.entityType] = strings.ToLower(strings.TrimSpace(value))
	}
	return entities
}

// Lookup returns the table row for a tag, when it exists.
func (d *Detector) Lookup(tag string) (Intent, bool) {
	in, ok := d.byTag[tag]
	return in, ok
}
