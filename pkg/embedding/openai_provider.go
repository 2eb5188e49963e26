package embedding

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// vectorDimensions matches the column type of cv_chunks.embedding_value.
// text-embedding-3 models accept a reduced dimension request, which keeps
// OpenAI vectors compatible with the schema shared by the other providers.
const vectorDimensions = 768

// OpenAIProvider implements EmbeddingProvider using the OpenAI embeddings API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAIProvider(apiKey string, model string) EmbeddingProvider {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	// OpenAI has no task type parameter; kept for interface compatibility.
	_ = taskType

	request := openai.EmbeddingNewParams{
		Input:          openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:          openai.EmbeddingModel(p.model),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}
	if strings.HasPrefix(p.model, "text-embedding-3") {
		request.Dimensions = openai.Int(vectorDimensions)
	}

	response, err := p.client.Embeddings.New(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("openai embedding error: %w", err)
	}
	if len(response.Data) == 0 {
		return nil, fmt.Errorf("openai embedding returned no data")
	}

	raw := response.Data[0].Embedding
	values := make([]float32, len(raw))
	for i, v := range raw {
		values[i] = float32(v)
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(values),
		},
	}, nil
}
