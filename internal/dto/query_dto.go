package dto

import (
	"time"

	"github.com/google/uuid"
)

type QueryRequest struct {
	Query     string            `json:"query" validate:"required,min=1"`
	SessionId string            `json:"session_id,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
}

type SourceDTO struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	ChunkId    uuid.UUID `json:"chunk_id"`
	Section    string    `json:"section"`
	PersonName string    `json:"person_name"`
	Score      float64   `json:"score"`
}

type QueryMetadata struct {
	DocumentsFound          int       `json:"documents_found"`
	InitialDocuments        int       `json:"initial_documents"`
	FilteredDocuments       int       `json:"filtered_documents"`
	QueryMode               string    `json:"query_mode"`
	TargetPerson            string    `json:"target_person,omitempty"`
	DistinctPersonsIncluded int       `json:"distinct_persons_included"`
	Timestamp               time.Time `json:"timestamp"`
}

type QueryResponse struct {
	Answer    string        `json:"answer"`
	Sources   []SourceDTO   `json:"sources"`
	SessionId string        `json:"session_id"`
	Metadata  QueryMetadata `json:"metadata"`
}

type CVDetailSourceDTO struct {
	Document  string  `json:"document"`
	ChunkId   string  `json:"page"`
	Relevance float64 `json:"relevance"`
}

type CVDetailResponse struct {
	Name       string              `json:"name"`
	Content    string              `json:"content"`
	Sources    []CVDetailSourceDTO `json:"sources"`
	ChunkCount int                 `json:"chunk_count"`
}

type ClearSessionResponse struct {
	SessionId string `json:"session_id"`
	Cleared   bool   `json:"cleared"`
}
