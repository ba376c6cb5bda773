package scorer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SafalBhandari12/jd-cv-backend/internal/ai/openaiutil"
	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

const scorerSystemPrompt = `You are an applicant tracking system grader. Score the quality of one CV section against a target position and return ONLY valid JSON.`

const scorerRubric = `Score the following %s section of a CV for a candidate targeting the position "%s".

Grade on a 0-100 scale using this weighted rubric:
- Relevance to the target position: 40%%
- Depth and specificity of the content: 30%%
- Clarity and structure: 20%%
- Demonstrated impact: 10%%

Section content:
%s

Return JSON in the shape {"score": number} with score between 0 and 100. Return ONLY the JSON.`

// CategoryScorer grades category text against a target position with an
// LLM rubric. Scores are position-dependent: the same text scored against
// two positions yields different scores.
type CategoryScorer struct {
	client *openai.Client
	model  string
}

// NewCategoryScorer creates a new scorer.
func NewCategoryScorer(apiKey string) *CategoryScorer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &CategoryScorer{
		client: &client,
		model:  "gpt-4o-mini",
	}
}

// ScoreCategory returns a 0-100 score for category text against the
// position. Empty text scores 0 without an API call.
func (s *CategoryScorer) ScoreCategory(
	ctx context.Context,
	category kernel.Category,
	categoryText string,
	position kernel.Position,
) (float64, error) {
	if categoryText == "" {
		return 0, nil
	}

	prompt := fmt.Sprintf(scorerRubric, category, position, categoryText)

	var content string
	err := openaiutil.WithRetry(ctx, func(ctx context.Context) error {
		completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(scorerSystemPrompt),
				openai.UserMessage(prompt),
			},
			Model: s.model,
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{
					Type: constant.JSONObject("json_object"),
				},
			},
			Temperature: openai.Float(0.1),
			MaxTokens:   openai.Int(100),
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
		return 0, err
	}

	var result struct {
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return 0, fmt.Errorf("failed to parse score JSON: %w", err)
	}

	return clamp(result.Score, 0, 100), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
