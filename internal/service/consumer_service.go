// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"cv-insight-be/internal/dto"
	"cv-insight-be/internal/pkg/serverutils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	documentService IDocumentService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentService IDocumentService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		documentService: documentService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestFileMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Ingesting file: %s", payload.Path)

	res, err := cs.documentService.IngestFile(ctx, payload.Path)
	if err != nil {
		if errors.Is(err, ErrDuplicateDocument) {
			log.Printf("[INFO] Skipping already indexed file: %s", payload.Path)
			msg.Ack()
			return
		}

		// Client-class failures (not a PDF, no extractable text) will never
		// succeed on retry; everything else is retriable.
		var apiErr *serverutils.ApiError
		if errors.As(err, &apiErr) {
			log.Printf("[ERROR] Permanent ingest failure for %s: %v", payload.Path, err)
			msg.Ack()
			return
		}

		log.Printf("[ERROR] Failed to ingest %s: %v", payload.Path, err)
		msg.Nack() // Retry
		return
	}

	log.Printf("[SUCCESS] File indexed: %s (%d chunks, person %s)", payload.Path, res.ChunkCount, res.PersonName)
	msg.Ack()
}
