package mapper

import (
	"encoding/json"
	"time"

	"cv-insight-be/internal/entity"
	"cv-insight-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CVDocumentMapper struct{}

func NewCVDocumentMapper() *CVDocumentMapper {
	return &CVDocumentMapper{}
}

func (m *CVDocumentMapper) ToEntity(d *model.CVDocument) *entity.CVDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(d.Metadata) > 0 {
		// Metadata is caller-supplied and best-effort; a corrupt column
		// never fails a read.
		_ = json.Unmarshal(d.Metadata, &metadata)
	}

	return &entity.CVDocument{
		Id:         d.Id,
		Filename:   d.Filename,
		PersonName: d.PersonName,
		ChunkCount: d.ChunkCount,
		Metadata:   metadata,
		UploadedAt: d.UploadedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  d.DeletedAt.Valid,
	}
}

func (m *CVDocumentMapper) ToModel(d *entity.CVDocument) *model.CVDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	var metadata datatypes.JSON
	if d.Metadata != nil {
		if raw, err := json.Marshal(d.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.CVDocument{
		Id:         d.Id,
		Filename:   d.Filename,
		PersonName: d.PersonName,
		ChunkCount: d.ChunkCount,
		Metadata:   metadata,
		UploadedAt: d.UploadedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *CVDocumentMapper) ToEntities(docs []*model.CVDocument) []*entity.CVDocument {
	entities := make([]*entity.CVDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
