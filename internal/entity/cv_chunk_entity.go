package entity

import (
	"time"

	"github.com/google/uuid"
)

// CVChunk is one labeled passage of an extracted CV. It is produced by the
// section-aware chunker at upload time and is immutable after indexing.
type CVChunk struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId     uuid.UUID `gorm:"type:uuid;index"`
	Filename       string
	Content        string
	SectionName    string
	SectionType    string
	PersonName     string
	ChunkIndex     int
	TotalChunks    int
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
