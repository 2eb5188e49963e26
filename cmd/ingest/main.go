package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cv-insight-be/internal/config"
	"cv-insight-be/internal/pkg/logger"
	"cv-insight-be/internal/repository/implementation"
	"cv-insight-be/internal/service"
	"cv-insight-be/pkg/database"
	"cv-insight-be/pkg/embedding"
	"cv-insight-be/pkg/rag/chunker"
)

// Bulk-indexes every PDF in a directory, synchronously. Useful for first
// loads and re-indexing after schema changes; the API's async sync endpoint
// covers the steady state.
func main() {
	dir := flag.String("dir", "", "directory of CV PDFs (default: INGEST_DIR)")
	flag.Parse()

	cfg := config.Load()
	if *dir == "" {
		*dir = cfg.Ingest.Dir
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.OpenAIModel)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	defer sysLogger.Sync()

	documentService := service.NewDocumentService(
		implementation.NewCVDocumentRepository(db),
		implementation.NewCVChunkRepository(db),
		embeddingProvider,
		chunker.New(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		nil, // no async publisher: this tool ingests inline
		nil, // no NATS
		sysLogger,
		*dir,
	)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Error: Failed to read directory %s: %v", *dir, err)
	}

	ctx := context.Background()
	var indexed, skipped, failed int

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		res, err := documentService.IngestFile(ctx, filepath.Join(*dir, entry.Name()))
		if err != nil {
			if err == service.ErrDuplicateDocument {
				log.Printf("Skip (already indexed): %s", entry.Name())
				skipped++
				continue
			}
			log.Printf("Error: Failed to index %s: %v", entry.Name(), err)
			failed++
			continue
		}

		log.Printf("Indexed %s: person=%s chunks=%d", entry.Name(), res.PersonName, res.ChunkCount)
		indexed++
	}

	log.Printf("✅ Done: %d indexed, %d skipped, %d failed", indexed, skipped, failed)
}
