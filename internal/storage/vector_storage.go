// ABOUTME: In-process vector similarity used by MemoryStore
// ABOUTME: Brute-force cosine ranking over each document's stored embedding
package storage

import (
	"math"
	"sort"

	"github.com/harper/portfolio-backend/internal/models"
)

type scoredDocument struct {
	doc   models.Document
	score float64
}

// rankBySimilarity scores every document carrying an embedding and returns the top limit.
func rankBySimilarity(docs []models.Document, query []float32, limit int) []scoredDocument {
	var results []scoredDocument
	for _, doc := range docs {
		vec, ok := doc.Vector(EmbeddingField)
		if !ok || len(vec) != len(query) {
			continue
		}
		results = append(results, scoredDocument{doc: doc, score: cosineSimilarity(query, vec)})
	}

	// Sort by similarity score (descending); equal scores keep insertion order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dotProduct += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
