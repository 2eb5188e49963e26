package contract

import (
	"context"

	"cv-insight-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredCVChunk wraps a chunk with the hybrid relevance score the search
// engine assigned for one query. Scores are non-negative and not comparable
// across queries.
type ScoredCVChunk struct {
	Chunk *entity.CVChunk
	Score float64
}

// SearchFilter optionally narrows hybrid search to a single document.
type SearchFilter struct {
	DocumentId *uuid.UUID
}

type CVChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.CVChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	// HybridSearch ranks chunks by combined vector similarity and keyword
	// relevance. queryText may be empty for a vector-only search.
	HybridSearch(ctx context.Context, embedding []float32, queryText string, topK int, filter *SearchFilter) ([]*ScoredCVChunk, error)
	Count(ctx context.Context) (int64, error)
	CountDistinctPersons(ctx context.Context) (int64, error)
}
