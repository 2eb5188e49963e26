// FILE: internal/service/rag_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cv-insight-be/internal/constant"
	"cv-insight-be/internal/dto"
	"cv-insight-be/internal/entity"
	"cv-insight-be/internal/pkg/logger"
	"cv-insight-be/internal/repository/contract"
	"cv-insight-be/pkg/embedding"
	"cv-insight-be/pkg/llm"
	"cv-insight-be/pkg/rag/person"
	"cv-insight-be/pkg/rag/rerank"
	"cv-insight-be/pkg/store"

	"github.com/google/uuid"
)

type IRAGService interface {
	// Query answers a natural-language question over the indexed CVs,
	// keeping conversation history under the request's session id.
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)

	// CVDetail summarizes one person's full professional profile.
	CVDetail(ctx context.Context, name string) (*dto.CVDetailResponse, error)

	// ClearSession drops a conversation. Returns ErrSessionNotFound when
	// the session never existed.
	ClearSession(ctx context.Context, sessionID string) (*dto.ClearSessionResponse, error)
}

type ragService struct {
	chunkRepo         contract.CVChunkRepository
	sessionRepo       contract.SessionRepository
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	reranker          *rerank.Reranker
	logger            logger.ILogger
}

func NewRAGService(
	chunkRepo contract.CVChunkRepository,
	sessionRepo contract.SessionRepository,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) IRAGService {
	return &ragService{
		chunkRepo:         chunkRepo,
		sessionRepo:       sessionRepo,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		reranker:          rerank.New(),
		logger:            sysLogger,
	}
}

func (s *ragService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	qc := person.FromQuery(req.Query)

	poolSize := rerank.PoolSizeGeneral
	if qc.Mode == person.ModeSpecific {
		poolSize = rerank.PoolSizeSpecific
	}

	embedRes, err := s.embeddingProvider.Generate(ctx, req.Query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	filter, err := searchFilterFrom(req.Filters)
	if err != nil {
		return nil, err
	}

	scored, err := s.chunkRepo.HybridSearch(ctx, embedRes.Embedding.Values, req.Query, poolSize, filter)
	if err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}

	pool := make([]*entity.Candidate, 0, len(scored))
	for _, sc := range scored {
		pool = append(pool, &entity.Candidate{Chunk: sc.Chunk, Score: sc.Score})
	}

	sel := s.reranker.Rerank(qc, pool)

	history, err := s.sessionRepo.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	answer, err := s.generateAnswer(ctx, req.Query, history, sel.Candidates)
	if err != nil {
		return nil, err
	}

	// History is appended only after generation succeeded, so a failed
	// request never poisons the conversation.
	if err := s.sessionRepo.AppendTurn(ctx, sessionID, req.Query, answer); err != nil {
		s.logger.Warn("rag", "Failed to append session turn", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.logger.Info("rag", "Query answered", map[string]interface{}{
		"session_id":       sessionID,
		"query_mode":       string(qc.Mode),
		"target_person":    qc.TargetPerson,
		"initial_pool":     sel.InitialCount,
		"context_window":   len(sel.Candidates),
		"distinct_persons": sel.DistinctPersons,
	})

	return &dto.QueryResponse{
		Answer:    answer,
		Sources:   sourcesFrom(sel.Candidates),
		SessionId: sessionID,
		Metadata: dto.QueryMetadata{
			DocumentsFound:          len(sel.Candidates),
			InitialDocuments:        sel.InitialCount,
			FilteredDocuments:       sel.FilteredCount,
			QueryMode:               string(qc.Mode),
			TargetPerson:            qc.TargetPerson,
			DistinctPersonsIncluded: sel.DistinctPersons,
			Timestamp:               time.Now(),
		},
	}, nil
}

func (s *ragService) CVDetail(ctx context.Context, name string) (*dto.CVDetailResponse, error) {
	res, err := s.Query(ctx, &dto.QueryRequest{
		Query:     constant.CVDetailQuery(name),
		SessionId: "cv_detail_" + name,
	})
	if err != nil {
		return nil, err
	}

	sources := make([]dto.CVDetailSourceDTO, 0, len(res.Sources))
	for _, src := range res.Sources {
		sources = append(sources, dto.CVDetailSourceDTO{
			Document:  src.Filename,
			ChunkId:   src.ChunkId.String(),
			Relevance: src.Score,
		})
	}

	return &dto.CVDetailResponse{
		Name:       name,
		Content:    res.Answer,
		Sources:    sources,
		ChunkCount: len(sources),
	}, nil
}

func (s *ragService) ClearSession(ctx context.Context, sessionID string) (*dto.ClearSessionResponse, error) {
	existed, err := s.sessionRepo.Clear(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !existed {
		return nil, ErrSessionNotFound
	}

	return &dto.ClearSessionResponse{SessionId: sessionID, Cleared: true}, nil
}

// generateAnswer assembles the chat transcript and calls the model. With an
// empty context window the canned insufficient-information answer is
// returned directly instead of letting the model improvise.
func (s *ragService) generateAnswer(ctx context.Context, query string, history []store.Turn, candidates []*entity.Candidate) (string, error) {
	if len(candidates) == 0 {
		return constant.InsufficientContextAnswer, nil
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: constant.RAGSystemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, llm.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: constant.RAGUserPrompt(contextText(candidates), query),
	})

	answer, err := s.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}

func contextText(candidates []*entity.Candidate) string {
	var sb strings.Builder
	for i, cand := range candidates {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Documento %d]\n%s", i+1, cand.Chunk.Content))
	}
	return sb.String()
}

func sourcesFrom(candidates []*entity.Candidate) []dto.SourceDTO {
	sources := make([]dto.SourceDTO, 0, len(candidates))
	for _, cand := range candidates {
		sources = append(sources, dto.SourceDTO{
			DocumentId: cand.Chunk.DocumentId,
			Filename:   cand.Chunk.Filename,
			ChunkId:    cand.Chunk.Id,
			Section:    cand.Chunk.SectionType,
			PersonName: cand.Chunk.PersonName,
			Score:      cand.Score,
		})
	}
	return sources
}

func searchFilterFrom(filters map[string]string) (*contract.SearchFilter, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	raw, ok := filters["document_id"]
	if !ok {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid document_id filter: %w", err)
	}

	return &contract.SearchFilter{DocumentId: &id}, nil
}
