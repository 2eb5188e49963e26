package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CVDocument struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename   string    `gorm:"uniqueIndex;not null"`
	PersonName string    `gorm:"index"`
	ChunkCount int       `gorm:"default:0"`
	Metadata   datatypes.JSON
	UploadedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (CVDocument) TableName() string {
	return "cv_documents"
}
