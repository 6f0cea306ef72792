// Package recommend ranks catalog entries against a query vector by
// cosine similarity.
package recommend

import (
	"math"
	"sort"
)

const (
	// ScoreThreshold is the minimum similarity a catalog entry must
	// strictly exceed to be returned.
	ScoreThreshold = 0.4

	// MaxResults caps the number of returned matches.
	MaxResults = 10
)

// Match pairs a catalog index with its similarity score.
type Match struct {
	Index int
	Score float32
}

// Rank scores query against every vector, keeps scores strictly above
// ScoreThreshold, and returns at most MaxResults matches sorted by
// descending score. Ties keep catalog order. A query that matches
// nothing yields an empty slice, never an error.
func Rank(query []float32, vectors [][]float32) []Match {
	matches := make([]Match, 0, len(vectors))
	for i, v := range vectors {
		score := CosineSimilarity(query, v)
		if score > ScoreThreshold {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}
	return matches
}

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Mismatched lengths or a zero-norm vector score 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
