package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cv-insight-be/internal/entity"
	"cv-insight-be/pkg/rag/chunker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Stub collaborators ---

type stubDocRepo struct {
	byFilename map[string]*entity.CVDocument
	byId       map[uuid.UUID]*entity.CVDocument
	created    []*entity.CVDocument
	deleted    []uuid.UUID
	count      int64
}

func newStubDocRepo() *stubDocRepo {
	return &stubDocRepo{
		byFilename: map[string]*entity.CVDocument{},
		byId:       map[uuid.UUID]*entity.CVDocument{},
	}
}

func (s *stubDocRepo) Create(ctx context.Context, doc *entity.CVDocument) error {
	s.created = append(s.created, doc)
	s.byFilename[doc.Filename] = doc
	s.byId[doc.Id] = doc
	return nil
}

func (s *stubDocRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	if doc, ok := s.byId[id]; ok {
		delete(s.byFilename, doc.Filename)
		delete(s.byId, id)
	}
	return nil
}

func (s *stubDocRepo) FindOne(ctx context.Context, id uuid.UUID) (*entity.CVDocument, error) {
	return s.byId[id], nil
}

func (s *stubDocRepo) FindByFilename(ctx context.Context, filename string) (*entity.CVDocument, error) {
	return s.byFilename[filename], nil
}

func (s *stubDocRepo) FindAll(ctx context.Context) ([]*entity.CVDocument, error) {
	docs := make([]*entity.CVDocument, 0, len(s.byId))
	for _, doc := range s.byId {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *stubDocRepo) Count(ctx context.Context) (int64, error) {
	return s.count, nil
}

type stubPublisher struct {
	published []string
}

func (s *stubPublisher) PublishIngestFile(ctx context.Context, path string) error {
	s.published = append(s.published, path)
	return nil
}

func newTestDocumentService(docRepo *stubDocRepo, chunkRepo *stubChunkRepo, pub *stubPublisher, ingestDir string) IDocumentService {
	return NewDocumentService(
		docRepo,
		chunkRepo,
		stubEmbedder{},
		chunker.New(1000, 200),
		pub,
		nil, // NATS optional
		noopLogger{},
		ingestDir,
	)
}

// --- Tests ---

func TestUploadRejectsNonPDF(t *testing.T) {
	svc := newTestDocumentService(newStubDocRepo(), &stubChunkRepo{}, &stubPublisher{}, t.TempDir())

	_, err := svc.Upload(context.Background(), "notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrOnlyPDFAccepted)
}

func TestUploadRejectsDuplicateFilename(t *testing.T) {
	docRepo := newStubDocRepo()
	docRepo.byFilename["CV_Juan_Perez.pdf"] = &entity.CVDocument{
		Id:       uuid.New(),
		Filename: "CV_Juan_Perez.pdf",
	}
	svc := newTestDocumentService(docRepo, &stubChunkRepo{}, &stubPublisher{}, t.TempDir())

	_, err := svc.Upload(context.Background(), "CV_Juan_Perez.pdf", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestUploadRejectsUnreadablePDF(t *testing.T) {
	svc := newTestDocumentService(newStubDocRepo(), &stubChunkRepo{}, &stubPublisher{}, t.TempDir())

	_, err := svc.Upload(context.Background(), "garbage.pdf", []byte("not a real pdf"))
	assert.ErrorIs(t, err, ErrUnreadablePDF)
}

func TestDeleteDocument(t *testing.T) {
	docRepo := newStubDocRepo()
	id := uuid.New()
	docRepo.byId[id] = &entity.CVDocument{Id: id, Filename: "CV_Ana_Ruiz.pdf"}
	docRepo.byFilename["CV_Ana_Ruiz.pdf"] = docRepo.byId[id]

	svc := newTestDocumentService(docRepo, &stubChunkRepo{}, &stubPublisher{}, t.TempDir())

	res, err := svc.Delete(context.Background(), id)
	assert.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Equal(t, []uuid.UUID{id}, docRepo.deleted)

	_, err = svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDeleteUnknownDocument(t *testing.T) {
	svc := newTestDocumentService(newStubDocRepo(), &stubChunkRepo{}, &stubPublisher{}, t.TempDir())

	_, err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestStats(t *testing.T) {
	docRepo := newStubDocRepo()
	docRepo.count = 4
	chunkRepo := &stubChunkRepo{chunkCount: 57, distinctPersons: 4}

	svc := newTestDocumentService(docRepo, chunkRepo, &stubPublisher{}, t.TempDir())

	res, err := svc.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), res.DocumentCount)
	assert.Equal(t, int64(57), res.ChunkCount)
	assert.Equal(t, int64(4), res.DistinctPersons)
}

func TestSyncSchedulesOnlyNewPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"CV_Juan_Perez.pdf", "CV_Ana_Ruiz.pdf", "readme.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	docRepo := newStubDocRepo()
	docRepo.byFilename["CV_Ana_Ruiz.pdf"] = &entity.CVDocument{
		Id:       uuid.New(),
		Filename: "CV_Ana_Ruiz.pdf",
	}

	pub := &stubPublisher{}
	svc := newTestDocumentService(docRepo, &stubChunkRepo{}, pub, dir)

	res, err := svc.Sync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Scheduled)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"CV_Juan_Perez.pdf"}, res.Files)
	assert.Equal(t, []string{filepath.Join(dir, "CV_Juan_Perez.pdf")}, pub.published)
}

func TestListDocuments(t *testing.T) {
	docRepo := newStubDocRepo()
	id := uuid.New()
	docRepo.byId[id] = &entity.CVDocument{Id: id, Filename: "CV_Juan_Perez.pdf", PersonName: "Juan Perez", ChunkCount: 7}

	svc := newTestDocumentService(docRepo, &stubChunkRepo{}, &stubPublisher{}, t.TempDir())

	res, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Juan Perez", res.Documents[0].PersonName)
}
