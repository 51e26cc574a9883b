package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqDefaultModel = "llama3-8b-8192"
)

// Groq talks to Groq's OpenAI compatible chat completion endpoint. Any other
// OpenAI compatible service works by overriding the base URL.
type Groq struct {
	client *openai.Client
	model  string
}

func NewGroq(apiKey, model, baseURL string) (*Groq, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if model == "" {
		model = GroqDefaultModel
	}
	if baseURL == "" {
		baseURL = GroqBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &Groq{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (g *Groq) Translate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", classifyOpenAI(err)
	}

	if len(resp.Choices) == 0 {
		return "", transportError(ProviderGroq, ErrNoCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAI(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return providerError(ProviderGroq, apiErr.Message, err)
	}
	return transportError(ProviderGroq, fmt.Errorf("create chat completion: %w", err))
}
