package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/SafalBhandari12/jd-cv-backend/internal/ai/openaiutil"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CategoryExtractor pulls one category's text out of a CV or job
// description using a chat completion.
type CategoryExtractor struct {
	client *openai.Client
	model  string
}

// NewCategoryExtractor creates a new extractor.
func NewCategoryExtractor(apiKey string) *CategoryExtractor {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &CategoryExtractor{
		client: &client,
		model:  "gpt-4o-mini",
	}
}

// ExtractCategory returns the category text found in the source document.
// Rate-limited calls are retried with a fixed backoff; the caller is
// expected to treat any error as a degraded empty extraction.
func (e *CategoryExtractor) ExtractCategory(
	ctx context.Context,
	category kernel.Category,
	sourceText string,
	kind kernel.DocumentKind,
) (string, error) {
	if strings.TrimSpace(sourceText) == "" {
		return "", nil
	}

	instruction, err := instructionFor(category, kind)
	if err != nil {
		return "", err
	}

	var content string
	err = openaiutil.WithRetry(ctx, func(ctx context.Context) error {
		completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(extractorSystemPrompt),
				openai.UserMessage(instruction + "\n\nDocument:\n" + sourceText),
			},
			Model:       e.model,
			Temperature: openai.Float(0.1),
			MaxTokens:   openai.Int(1500),
		})
		if err != nil {
			return fmt.Errorf("openai chat api error: %w", err)
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("no response from openai")
		}
		content = completion.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}
