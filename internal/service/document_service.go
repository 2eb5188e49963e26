// FILE: internal/service/document_service.go
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cv-insight-be/internal/dto"
	"cv-insight-be/internal/entity"
	"cv-insight-be/internal/pkg/logger"
	"cv-insight-be/internal/pkg/pdfreader"
	"cv-insight-be/internal/repository/contract"
	"cv-insight-be/pkg/embedding"
	"cv-insight-be/pkg/events"
	pktNats "cv-insight-be/pkg/nats"
	"cv-insight-be/pkg/rag/chunker"
	"cv-insight-be/pkg/rag/person"

	"github.com/google/uuid"
)

type IDocumentService interface {
	// Upload indexes one PDF held in memory. Returns ErrDuplicateDocument
	// when the filename is already indexed.
	Upload(ctx context.Context, filename string, content []byte) (*dto.UploadDocumentResponse, error)

	// IngestFile indexes one PDF from disk. Used by the async consumer.
	IngestFile(ctx context.Context, path string) (*dto.UploadDocumentResponse, error)

	// Sync walks the ingest directory and schedules every PDF that is not
	// indexed yet for async ingestion.
	Sync(ctx context.Context) (*dto.SyncDocumentsResponse, error)

	List(ctx context.Context) (*dto.ListDocumentsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDocumentResponse, error)
	Stats(ctx context.Context) (*dto.StorageStatsResponse, error)
}

type documentService struct {
	docRepo           contract.CVDocumentRepository
	chunkRepo         contract.CVChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	chunker           *chunker.Chunker
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
	ingestDir         string
}

func NewDocumentService(
	docRepo contract.CVDocumentRepository,
	chunkRepo contract.CVChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	chk *chunker.Chunker,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	ingestDir string,
) IDocumentService {
	return &documentService{
		docRepo:           docRepo,
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		chunker:           chk,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		logger:            sysLogger,
		ingestDir:         ingestDir,
	}
}

func (s *documentService) Upload(ctx context.Context, filename string, content []byte) (*dto.UploadDocumentResponse, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, ErrOnlyPDFAccepted
	}

	existing, err := s.docRepo.FindByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateDocument
	}

	text, err := pdfreader.ExtractText(content)
	if err != nil {
		s.logger.Warn("document", "Failed to extract PDF text", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, ErrUnreadablePDF
	}

	personName := person.FromDocument(filename, text)
	chunks := s.chunker.Chunk(text, personName)

	documentId := uuid.New()
	newChunks := make([]*entity.CVChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := s.embeddingProvider.Generate(ctx, chunk.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("generate embedding for chunk %d of %s: %w", i, filename, err)
		}

		newChunks = append(newChunks, &entity.CVChunk{
			Id:             uuid.New(),
			DocumentId:     documentId,
			Filename:       filename,
			Content:        chunk.Text,
			SectionName:    chunk.SectionName,
			SectionType:    chunk.SectionType,
			PersonName:     personName,
			ChunkIndex:     i,
			TotalChunks:    len(chunks),
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	doc := &entity.CVDocument{
		Id:         documentId,
		Filename:   filename,
		PersonName: personName,
		ChunkCount: len(newChunks),
		Metadata: map[string]interface{}{
			"size_bytes": len(content),
			"text_chars": len(text),
		},
		UploadedAt: time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.chunkRepo.CreateBulk(ctx, newChunks); err != nil {
		return nil, err
	}

	s.logger.Info("document", "Document indexed", map[string]interface{}{
		"document_id": documentId.String(),
		"filename":    filename,
		"person_name": personName,
		"chunk_count": len(newChunks),
	})

	s.publishEvent(ctx, events.NewDocumentIndexed(documentId.String(), filename, personName, len(newChunks)))

	return &dto.UploadDocumentResponse{
		DocumentId: documentId,
		Filename:   filename,
		PersonName: personName,
		Status:     dto.UploadStatusSuccess,
		ChunkCount: len(newChunks),
	}, nil
}

func (s *documentService) IngestFile(ctx context.Context, path string) (*dto.UploadDocumentResponse, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ingest file %s: %w", path, err)
	}
	return s.Upload(ctx, filepath.Base(path), content)
}

func (s *documentService) Sync(ctx context.Context) (*dto.SyncDocumentsResponse, error) {
	entries, err := os.ReadDir(s.ingestDir)
	if err != nil {
		return nil, fmt.Errorf("read ingest directory %s: %w", s.ingestDir, err)
	}

	res := &dto.SyncDocumentsResponse{Files: []string{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		existing, err := s.docRepo.FindByFilename(ctx, entry.Name())
		if err != nil {
			return nil, err
		}
		if existing != nil {
			res.Skipped++
			continue
		}

		path := filepath.Join(s.ingestDir, entry.Name())
		if err := s.publisherService.PublishIngestFile(ctx, path); err != nil {
			return nil, fmt.Errorf("schedule ingest for %s: %w", entry.Name(), err)
		}
		res.Scheduled++
		res.Files = append(res.Files, entry.Name())
	}

	s.logger.Info("document", "Ingest sync scheduled", map[string]interface{}{
		"scheduled": res.Scheduled,
		"skipped":   res.Skipped,
	})

	return res, nil
}

func (s *documentService) List(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	docs, err := s.docRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.ListDocumentsResponse{
		Documents: make([]dto.DocumentDTO, 0, len(docs)),
		Total:     len(docs),
	}
	for _, doc := range docs {
		res.Documents = append(res.Documents, dto.DocumentDTO{
			Id:         doc.Id,
			Filename:   doc.Filename,
			PersonName: doc.PersonName,
			ChunkCount: doc.ChunkCount,
			Metadata:   doc.Metadata,
			UploadedAt: doc.UploadedAt,
		})
	}

	return res, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteDocumentResponse, error) {
	doc, err := s.docRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	if err := s.chunkRepo.DeleteByDocumentId(ctx, id); err != nil {
		return nil, err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("document", "Document deleted", map[string]interface{}{
		"document_id": id.String(),
		"filename":    doc.Filename,
	})

	s.publishEvent(ctx, events.NewDocumentDeleted(id.String(), doc.Filename))

	return &dto.DeleteDocumentResponse{DocumentId: id, Deleted: true}, nil
}

func (s *documentService) Stats(ctx context.Context) (*dto.StorageStatsResponse, error) {
	docCount, err := s.docRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	chunkCount, err := s.chunkRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	persons, err := s.chunkRepo.CountDistinctPersons(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.StorageStatsResponse{
		DocumentCount:   docCount,
		ChunkCount:      chunkCount,
		DistinctPersons: persons,
	}, nil
}

// publishEvent emits to NATS best effort. Indexing must not fail because
// the event bus is down.
func (s *documentService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("document", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
