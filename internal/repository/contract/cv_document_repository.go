package contract

import (
	"context"

	"cv-insight-be/internal/entity"

	"github.com/google/uuid"
)

type CVDocumentRepository interface {
	Create(ctx context.Context, doc *entity.CVDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindOne and FindByFilename return nil (not an error) when absent.
	FindOne(ctx context.Context, id uuid.UUID) (*entity.CVDocument, error)
	FindByFilename(ctx context.Context, filename string) (*entity.CVDocument, error)
	FindAll(ctx context.Context) ([]*entity.CVDocument, error)
	Count(ctx context.Context) (int64, error)
}
