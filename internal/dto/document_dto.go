package dto

import (
	"time"

	"github.com/google/uuid"
)

const UploadStatusSuccess = "success"

type UploadDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id,omitempty"`
	Filename   string    `json:"filename"`
	PersonName string    `json:"person_name,omitempty"`
	Status     string    `json:"status"`
	ChunkCount int       `json:"chunk_count"`
	Message    string    `json:"message,omitempty"`
}

type DocumentDTO struct {
	Id         uuid.UUID              `json:"id"`
	Filename   string                 `json:"filename"`
	PersonName string                 `json:"person_name"`
	ChunkCount int                    `json:"chunk_count"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	UploadedAt time.Time              `json:"uploaded_at"`
}

type ListDocumentsResponse struct {
	Documents []DocumentDTO `json:"documents"`
	Total     int           `json:"total"`
}

type DeleteDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Deleted    bool      `json:"deleted"`
}

type SyncDocumentsResponse struct {
	Scheduled int      `json:"scheduled"`
	Skipped   int      `json:"skipped"`
	Files     []string `json:"files"`
}

// IngestFileMessage is the async ingestion payload published to the
// in-process bus when a directory sync schedules a file.
type IngestFileMessage struct {
	Path string `json:"path"`
}

type StorageStatsResponse struct {
	DocumentCount   int64 `json:"document_count"`
	ChunkCount      int64 `json:"chunk_count"`
	DistinctPersons int64 `json:"distinct_persons"`
}
