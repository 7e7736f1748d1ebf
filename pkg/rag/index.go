package rag

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Chunk is one embedded slice of a document.
type Chunk struct {
	Index  int
	Text   string
	Vector []float32
}

// DocumentIndex holds all chunks of one document. It lives in memory only
// and can always be rebuilt from the persisted document text.
type DocumentIndex struct {
	DocumentId uuid.UUID
	Chunks     []Chunk
}

// ScoredChunk pairs a chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Search returns the topK chunks most similar to the query vector, highest
// score first. Ties break on chunk index so results are deterministic.
func (idx *DocumentIndex) Search(query []float32, topK int) []ScoredChunk {
	scored := make([]ScoredChunk, 0, len(idx.Chunks))
	for _, chunk := range idx.Chunks {
		scored = append(scored, ScoredChunk{
			Chunk: chunk,
			Score: CosineSimilarity(query, chunk.Vector),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.Index < scored[j].Chunk.Index
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
