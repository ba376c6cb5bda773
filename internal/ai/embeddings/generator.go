package embeddings

import (
	"context"
	"fmt"

	"github.com/SafalBhandari12/jd-cv-backend/internal/ai/openaiutil"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// Model and dimension of the embedding space. All stored vectors share
	// this dimension.
	Model     = "text-embedding-3-small"
	Dimension = 1536
)

// EmbeddingsGenerator turns category text into fixed-dimension vectors.
type EmbeddingsGenerator struct {
	client *openai.Client
}

// NewEmbeddingsGenerator creates a new embeddings generator.
func NewEmbeddingsGenerator(apiKey string) *EmbeddingsGenerator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &EmbeddingsGenerator{
		client: &client,
	}
}

// GenerateEmbedding creates an embedding vector for text. Deterministic for
// identical text. Rate-limited calls are retried with a fixed backoff.
func (g *EmbeddingsGenerator) GenerateEmbedding(ctx context.Context, text string) (kernel.Embedding, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	var embedding kernel.Embedding
	err := openaiutil.WithRetry(ctx, func(ctx context.Context) error {
		resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: []string{text},
			},
			Model: openai.EmbeddingModelTextEmbedding3Small,
		})
		if err != nil {
			return fmt.Errorf("failed to generate embedding: %w", err)
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("no embedding data returned")
		}

		embedding64 := resp.Data[0].Embedding
		embedding = make([]float32, len(embedding64))
		for i, v := range embedding64 {
			embedding[i] = float32(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return embedding, nil
}
