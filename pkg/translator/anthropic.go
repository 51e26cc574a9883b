package translator

import (
	"context"
	"errors"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const anthropicMaxTokens = 1000

type Anthropic struct {
	client *anthropic.Client
	model  string
}

func NewAnthropic(apiKey, model, baseURL string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if model == "" {
		model = anthropic.ModelClaude3Dot5Sonnet20240620
	}

	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &Anthropic{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}, nil
}

func (a *Anthropic) Translate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     a.model,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
		MaxTokens: anthropicMaxTokens,
	})
	if err != nil {
		return "", classifyAnthropic(err)
	}

	if len(resp.Content) == 0 {
		return "", transportError(ProviderAnthropic, ErrNoCompletion)
	}

	return resp.GetFirstContentText(), nil
}

func classifyAnthropic(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return providerError(ProviderAnthropic, apiErr.Message, err)
	}
	return transportError(ProviderAnthropic, fmt.Errorf("create messages: %w", err))
}
