// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package forecast

import (
	"math"
	"sort"
)

// SimilarItem is one embedding-similarity result.
type SimilarItem struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"`
}

// Embedding returns a deterministic fixed-length unit vector for an item.
// The same ID always maps to the same vector, so similarity rankings are
// stable across processes.
func (s *Simulator) Embedding(id string) []float64 {
	rng := s.rngFor("embedding:" + id)

	vec := make([]float64, s.embeddingDim)
	var norm float64
	for i := range vec {
		vec[i] = rng.NormFloat64()
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// SimilarOffers ranks candidate IDs by cosine similarity of their
// embeddings to the target, descending, excluding the target itself.
// At most limit results are returned; limit <= 0 returns all.
func (s *Simulator) SimilarOffers(targetID string, candidateIDs []string, limit int) []SimilarItem {
	target := s.Embedding(targetID)

	items := make([]SimilarItem, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if id == targetID {
			continue
		}
		items = append(items, SimilarItem{
			ID:         id,
			Similarity: CosineSimilarity(target, s.Embedding(id)),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Similarity != items[j].Similarity {
			return items[i].Similarity > items[j].Similarity
		}
		return items[i].ID < items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// in [-1, 1]. Mismatched lengths or zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
