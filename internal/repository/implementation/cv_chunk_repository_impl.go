package implementation

import (
	"context"

	"cv-insight-be/internal/entity"
	"cv-insight-be/internal/mapper"
	"cv-insight-be/internal/model"
	"cv-insight-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CVChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CVChunkMapper
}

func NewCVChunkRepository(db *gorm.DB) contract.CVChunkRepository {
	return &CVChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewCVChunkMapper(),
	}
}

func (r *CVChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.CVChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CVChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.CVChunk{}).Error
}

// Cosine distance is 1 - similarity and ranges over [0, 2], so the raw
// vector term 1 - distance can go negative for near-opposite vectors.
// Scores feed multiplicative boosts downstream and must stay non-negative,
// hence the GREATEST clamp.
const (
	hybridScoreExpr = "cv_chunks.*, GREATEST(1 - (embedding_value <=> ?), 0) + 0.3 * ts_rank(to_tsvector('simple', content), plainto_tsquery('simple', ?)) AS score"
	vectorScoreExpr = "cv_chunks.*, GREATEST(1 - (embedding_value <=> ?), 0) AS score"
)

// HybridSearch combines pgvector cosine similarity with a Postgres
// full-text rank over the chunk content.
func (r *CVChunkRepositoryImpl) HybridSearch(ctx context.Context, embedding []float32, queryText string, topK int, filter *contract.SearchFilter) ([]*contract.ScoredCVChunk, error) {
	if topK <= 0 {
		topK = 5
	}

	type result struct {
		model.CVChunk
		Score float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).Table("cv_chunks")
	if queryText != "" {
		query = query.Select(hybridScoreExpr, queryVector, queryText)
	} else {
		query = query.Select(vectorScoreExpr, queryVector)
	}

	query = query.Where("cv_chunks.deleted_at IS NULL")
	if filter != nil && filter.DocumentId != nil {
		query = query.Where("document_id = ?", *filter.DocumentId)
	}

	err := query.Order("score DESC").Limit(topK).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCVChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCVChunk{
			Chunk: r.mapper.ToEntity(&res.CVChunk),
			Score: res.Score,
		}
	}
	return scored, nil
}

func (r *CVChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CVChunk{}).Count(&count).Error
	return count, err
}

func (r *CVChunkRepositoryImpl) CountDistinctPersons(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CVChunk{}).
		Distinct("person_name").
		Count(&count).Error
	return count, err
}
