package implementation

import (
	"context"
	"testing"

	"cv-insight-be/internal/repository/contract"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockChunkRepository(t *testing.T) (contract.CVChunkRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return NewCVChunkRepository(gdb), mock
}

func chunkRows(scores ...float64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "document_id", "filename", "content", "person_name", "score"})
	for _, score := range scores {
		rows.AddRow(uuid.NewString(), uuid.NewString(), "cv.pdf", "texto", "Juan Pérez", score)
	}
	return rows
}

// A chunk nearly opposite the query vector has cosine distance close to 2,
// so the raw 1-distance term would go negative and invert the multiplicative
// name boost applied downstream. The select must clamp it at zero.
func TestHybridSearchClampsVectorTerm(t *testing.T) {
	repo, mock := newMockChunkRepository(t)

	mock.ExpectQuery(`GREATEST\(1 - \(embedding_value <=> \$1\), 0\) AS score`).
		WillReturnRows(chunkRows(0.91, 0))

	scored, err := repo.HybridSearch(context.Background(), []float32{0.1, 0.2}, "", 5, nil)
	require.NoError(t, err)
	require.Len(t, scored, 2)
	for _, s := range scored {
		assert.GreaterOrEqual(t, s.Score, 0.0)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHybridSearchKeywordTermKeepsClamp(t *testing.T) {
	repo, mock := newMockChunkRepository(t)

	mock.ExpectQuery(`GREATEST\(1 - \(embedding_value <=> \$1\), 0\) \+ 0\.3 \* ts_rank`).
		WithArgs(sqlmock.AnyArg(), "certificaciones de juan", 25).
		WillReturnRows(chunkRows(1.12))

	scored, err := repo.HybridSearch(context.Background(), []float32{0.1, 0.2}, "certificaciones de juan", 25, nil)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, "Juan Pérez", scored[0].Chunk.PersonName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHybridSearchAppliesDocumentFilter(t *testing.T) {
	repo, mock := newMockChunkRepository(t)
	docId := uuid.New()

	mock.ExpectQuery(`document_id = \$2`).
		WithArgs(sqlmock.AnyArg(), docId, 5).
		WillReturnRows(chunkRows(0.5))

	filter := &contract.SearchFilter{DocumentId: &docId}
	scored, err := repo.HybridSearch(context.Background(), []float32{0.1, 0.2}, "", 5, filter)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
