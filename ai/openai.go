package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT3Dot5Turbo

// OpenAIGenerator talks to the OpenAI chat-completions API, or any
// OpenAI-compatible endpoint (Groq and friends) via a base URL override.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a generator for the given credential. baseURL and
// model are optional.
func NewOpenAIGenerator(apiKey, baseURL, model string) (*OpenAIGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the
// first choice's text.
func (g *OpenAIGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("openai returned empty content")
	}
	return content, nil
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}
