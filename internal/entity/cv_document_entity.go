package entity

import (
	"time"

	"github.com/google/uuid"
)

type CVDocument struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Filename   string
	PersonName string
	ChunkCount int
	Metadata   map[string]interface{}
	UploadedAt time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
