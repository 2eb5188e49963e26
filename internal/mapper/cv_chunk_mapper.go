package mapper

import (
	"time"

	"cv-insight-be/internal/entity"
	"cv-insight-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CVChunkMapper struct{}

func NewCVChunkMapper() *CVChunkMapper {
	return &CVChunkMapper{}
}

func (m *CVChunkMapper) ToEntity(c *model.CVChunk) *entity.CVChunk {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.CVChunk{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		Filename:       c.Filename,
		Content:        c.Content,
		SectionName:    c.SectionName,
		SectionType:    c.SectionType,
		PersonName:     c.PersonName,
		ChunkIndex:     c.ChunkIndex,
		TotalChunks:    c.TotalChunks,
		EmbeddingValue: c.EmbeddingValue.Slice(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      c.DeletedAt.Valid,
	}
}

func (m *CVChunkMapper) ToModel(c *entity.CVChunk) *model.CVChunk {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.CVChunk{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		Filename:       c.Filename,
		Content:        c.Content,
		SectionName:    c.SectionName,
		SectionType:    c.SectionType,
		PersonName:     c.PersonName,
		ChunkIndex:     c.ChunkIndex,
		TotalChunks:    c.TotalChunks,
		EmbeddingValue: pgvector.NewVector(c.EmbeddingValue),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *CVChunkMapper) ToModels(chunks []*entity.CVChunk) []*model.CVChunk {
	models := make([]*model.CVChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
