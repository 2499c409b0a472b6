package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the OpenAI chat completion API. Per-tenant API keys
// are passed per call (each tenant may bring its own key), so the
// underlying SDK client is constructed per request rather than cached.
type OpenAIClient struct {
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewOpenAIClient constructs a client with defaults applied.
func NewOpenAIClient(model string, timeout time.Duration) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{Model: model, MaxTokens: 500, Timeout: timeout}
}

// Complete implements Client. The call is bounded by the configured
// timeout; a deadline exceeded surfaces as an error which the responder
// degrades to its empty-output fallback.
func (c *OpenAIClient) Complete(ctx context.Context, apiKey, systemPrompt, userText string, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	client := openai.NewClient(apiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
		Temperature: float32(temperature),
		MaxTokens:   c.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
