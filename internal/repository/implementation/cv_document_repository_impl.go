package implementation

import (
	"context"
	"errors"

	"cv-insight-be/internal/entity"
	"cv-insight-be/internal/mapper"
	"cv-insight-be/internal/model"
	"cv-insight-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CVDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CVDocumentMapper
}

func NewCVDocumentRepository(db *gorm.DB) contract.CVDocumentRepository {
	return &CVDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewCVDocumentMapper(),
	}
}

func (r *CVDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.CVDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *CVDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CVDocument{}, id).Error
}

func (r *CVDocumentRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.CVDocument, error) {
	var m model.CVDocument
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CVDocumentRepositoryImpl) FindByFilename(ctx context.Context, filename string) (*entity.CVDocument, error) {
	var m model.CVDocument
	if err := r.db.WithContext(ctx).First(&m, "filename = ?", filename).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CVDocumentRepositoryImpl) FindAll(ctx context.Context) ([]*entity.CVDocument, error) {
	var models []*model.CVDocument
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CVDocumentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CVDocument{}).Count(&count).Error
	return count, err
}
