package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
)

// OpenAIClient calls an OpenAI-compatible chat completion endpoint. Ollama's
// /v1/chat/completions speaks the same protocol, so the same client covers
// both the local and the hosted model.
type OpenAIClient struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Infer sends the receipt prompt and parses the model's JSON answer.
// Transport failures are retried a couple of times before surfacing;
// unparseable answers degrade to the zero result.
func (c *OpenAIClient) Infer(ctx context.Context, req api.InferenceRequest) (api.InferenceResult, error) {
	if c.BaseURL == "" || c.Model == "" {
		return api.InferenceResult{}, fmt.Errorf("inference: base URL and model required")
	}

	var content string
	err := retry.Do(
		func() error {
			var sendErr error
			content, sendErr = c.send(ctx, buildPrompt(req))
			return sendErr
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return api.InferenceResult{}, err
	}

	return ParseResult(content), nil
}

func (c *OpenAIClient) send(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:     c.Model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 200,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference: unexpected status %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("inference: decoding response: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("inference: model error: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("inference: empty response")
	}

	return payload.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
