package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/iksnae/chat-transcripts/internal/llm"
)

// DefaultMaxTokens is sent when no cap is configured; the Messages API
// requires one
const DefaultMaxTokens = 1024

type anthropicModel struct {
	options llm.Options
	client  *anthropic.Client
}

func (m *anthropicModel) Prompt(ctx context.Context, prompt string) (string, error) {
	maxTokens := int64(m.options.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(m.options.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	rsp, err := m.client.Messages.New(ctx, req)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return "", llm.UnknownModel(m.options.Model, err)
		}
		return "", err
	}

	var b strings.Builder
	for _, content := range rsp.Content {
		if text, ok := content.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	if b.Len() == 0 {
		return "", llm.ErrEmptyResponse
	}

	return b.String(), nil
}

func NewModel(opts ...llm.Option) (llm.Model, error) {
	options := llm.NewOptions(opts...)
	if options.APIKey == "" {
		return nil, llm.ErrMissingKey
	}

	clientOpts := []anthropicopt.RequestOption{anthropicopt.WithAPIKey(options.APIKey)}
	if options.BaseURL != "" {
		clientOpts = append(clientOpts, anthropicopt.WithBaseURL(options.BaseURL))
	}

	client := anthropic.NewClient(clientOpts...)

	return &anthropicModel{
		options: options,
		client:  &client,
	}, nil
}
