package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CVChunk struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename       string    // denormalized from cv_documents for search results
	Content        string    `gorm:"type:text"`
	SectionName    string
	SectionType    string `gorm:"index"`
	PersonName     string `gorm:"index"`
	ChunkIndex     int    `gorm:"default:0"` // 0-based, dense within a document
	TotalChunks    int
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (CVChunk) TableName() string {
	return "cv_chunks"
}
