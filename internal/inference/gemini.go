package inference

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// GeminiClient runs fact inference against the Gemini API. The API key is
// taken from the environment by the genai SDK (GEMINI_API_KEY).
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed inferencer for the given model.
func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Infer sends the receipt prompt and parses the model's JSON answer.
func (c *GeminiClient) Infer(ctx context.Context, req api.InferenceRequest) (api.InferenceResult, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildPrompt(req)}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return api.InferenceResult{}, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return api.InferenceResult{}, fmt.Errorf("empty response from model")
	}

	return ParseResult(text), nil
}
