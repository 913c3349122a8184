package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/iksnae/chat-transcripts/internal/llm"
	"github.com/sashabaranov/go-openai"
)

type openAIModel struct {
	options llm.Options
	client  *openai.Client
}

func (m *openAIModel) Prompt(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:               m.options.Model,
		MaxCompletionTokens: m.options.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	rsp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
			return "", llm.UnknownModel(m.options.Model, err)
		}
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", llm.ErrEmptyResponse
	}

	return rsp.Choices[0].Message.Content, nil
}

// NewModel creates an OpenAI chat model. A custom base URL allows any
// OpenAI-compatible endpoint.
func NewModel(opts ...llm.Option) (llm.Model, error) {
	options := llm.NewOptions(opts...)
	if options.APIKey == "" {
		return nil, llm.ErrMissingKey
	}

	config := openai.DefaultConfig(options.APIKey)
	if options.BaseURL != "" {
		config.BaseURL = options.BaseURL
	}

	return &openAIModel{
		options: options,
		client:  openai.NewClientWithConfig(config),
	}, nil
}
