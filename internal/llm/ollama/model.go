package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iksnae/chat-transcripts/internal/llm"
	"github.com/ollama/ollama/api"
)

// DefaultHost is used when no Ollama host is configured
const DefaultHost = "http://localhost:11434"

type ollamaModel struct {
	options llm.Options
	client  *api.Client
}

func (m *ollamaModel) Prompt(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  m.options.Model,
		Prompt: prompt,
		Stream: &stream,
	}
	if m.options.MaxTokens > 0 {
		req.Options = map[string]interface{}{"num_predict": m.options.MaxTokens}
	}

	var b strings.Builder
	err := m.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		b.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return "", llm.UnknownModel(m.options.Model, err)
		}
		return "", err
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", llm.ErrEmptyResponse
	}

	return b.String(), nil
}

func isNotFound(err error) bool {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	var statusErrPtr *api.StatusError
	return errors.As(err, &statusErrPtr) && statusErrPtr.StatusCode == http.StatusNotFound
}

// NewModel creates a client for a local Ollama server. No API key is needed.
func NewModel(opts ...llm.Option) (llm.Model, error) {
	options := llm.NewOptions(opts...)

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultHost
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &ollamaModel{
		options: options,
		client:  api.NewClient(parsedURL, http.DefaultClient),
	}, nil
}
