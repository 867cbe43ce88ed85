package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"webgen_ai_server/internal/ai/prompts"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter speaks the OpenAI chat-completions dialect, so the go-openai
// client works against it with only a base URL override.
type OpenRouter struct {
	client *openai.Client
}

func NewOpenRouter(apiKey string) *OpenRouter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = openRouterBaseURL
	return &OpenRouter{client: openai.NewClientWithConfig(cfg)}
}

func (o *OpenRouter) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: prompts.SystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.4,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openrouter: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("openrouter: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
