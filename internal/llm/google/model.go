package google

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/iksnae/chat-transcripts/internal/llm"
	"google.golang.org/api/googleapi"
	genaiopt "google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type googleModel struct {
	options llm.Options
	client  *genai.Client
}

func (m *googleModel) Prompt(ctx context.Context, prompt string) (string, error) {
	model := m.client.GenerativeModel(m.options.Model)
	if m.options.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(m.options.MaxTokens))
	}

	rsp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isNotFound(err) {
			return "", llm.UnknownModel(m.options.Model, err)
		}
		return "", err
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", llm.ErrEmptyResponse
	}

	return b.String(), nil
}

// Close releases the underlying client connection
func (m *googleModel) Close() error {
	return m.client.Close()
}

// isNotFound reports a missing model on either the gRPC or REST transport
func isNotFound(err error) bool {
	if status.Code(err) == codes.NotFound {
		return true
	}
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}

// NewModel creates a Gemini model client. The client must be closed after use.
func NewModel(ctx context.Context, opts ...llm.Option) (llm.Model, error) {
	options := llm.NewOptions(opts...)
	if options.APIKey == "" {
		return nil, llm.ErrMissingKey
	}

	clientOpts := []genaiopt.ClientOption{genaiopt.WithAPIKey(options.APIKey)}
	if options.BaseURL != "" {
		clientOpts = append(clientOpts, genaiopt.WithEndpoint(options.BaseURL))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &googleModel{
		options: options,
		client:  client,
	}, nil
}
