package bootstrap

import (
	"context"
	"log"

	"cv-insight-be/internal/config"
	"cv-insight-be/internal/controller"
	"cv-insight-be/internal/pkg/logger"
	"cv-insight-be/internal/repository/contract"
	"cv-insight-be/internal/repository/implementation"
	"cv-insight-be/internal/repository/memory"
	redisrepo "cv-insight-be/internal/repository/redis"
	"cv-insight-be/internal/service"
	"cv-insight-be/pkg/embedding"
	"cv-insight-be/pkg/llm/factory"
	"cv-insight-be/pkg/rag/chunker"

	pktNats "cv-insight-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RAGController      controller.IRAGController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for the health endpoint's storage snapshot
	DocumentService service.IDocumentService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.OpenAIModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIModel)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	apiKey := cfg.Keys.GoogleGemini
	if cfg.Ai.LLMProvider == "openai" {
		apiKey = cfg.Keys.OpenAI
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS (optional; documents still index when the bus is down)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Session store: in-memory by default, Redis when configured
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. Repositories
	chunkRepo := implementation.NewCVChunkRepository(db)
	docRepo := implementation.NewCVDocumentRepository(db)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)

	documentService := service.NewDocumentService(
		docRepo,
		chunkRepo,
		embeddingProvider,
		chunker.New(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap),
		publisherService,
		natsPub,
		sysLogger,
		cfg.Ingest.Dir,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		documentService,
	)

	ragService := service.NewRAGService(
		chunkRepo,
		sessionRepo,
		embeddingProvider,
		llmProvider,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		RAGController:      controller.NewRAGController(ragService),
		DocumentController: controller.NewDocumentController(documentService),

		ConsumerService: consumerService,
		DocumentService: documentService,
		Logger:          sysLogger,
	}
}
