package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/iksnae/chat-transcripts/internal/llm"
	"github.com/iksnae/chat-transcripts/internal/llm/anthropic"
	"github.com/iksnae/chat-transcripts/internal/llm/google"
	"github.com/iksnae/chat-transcripts/internal/llm/ollama"
	"github.com/iksnae/chat-transcripts/internal/llm/openai"
)

// Provider names a model backend
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
)

const ollamaPrefix = "ollama:"

var openAIPrefixes = []string{"gpt-", "o1", "o3", "o4", "chatgpt-"}

// ProviderConfig holds the credentials and endpoints of every backend
type ProviderConfig struct {
	GoogleAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OllamaHost      string
}

// Route maps a model id to its provider and the name the provider knows it by
func Route(modelID string) (Provider, string, error) {
	switch {
	case strings.HasPrefix(modelID, "gemini-"):
		return ProviderGoogle, modelID, nil
	case strings.HasPrefix(modelID, "claude-"):
		return ProviderAnthropic, modelID, nil
	case strings.HasPrefix(modelID, ollamaPrefix):
		name := strings.TrimPrefix(modelID, ollamaPrefix)
		if name == "" {
			return "", "", llm.UnknownModel(modelID, nil)
		}
		return ProviderOllama, name, nil
	}
	for _, prefix := range openAIPrefixes {
		if strings.HasPrefix(modelID, prefix) {
			return ProviderOpenAI, modelID, nil
		}
	}
	return "", "", llm.UnknownModel(modelID, nil)
}

// Registry resolves model ids to provider clients
type Registry struct {
	config ProviderConfig
}

// NewRegistry creates a Registry using cfg for credentials
func NewRegistry(cfg ProviderConfig) *Registry {
	return &Registry{config: cfg}
}

// Check validates that modelID routes to a provider with credentials,
// without contacting it
func (r *Registry) Check(modelID string) (Provider, error) {
	provider, _, err := Route(modelID)
	if err != nil {
		return "", err
	}
	if r.apiKey(provider) == "" && provider != ProviderOllama {
		return provider, fmt.Errorf("%w for %s", llm.ErrMissingKey, provider)
	}
	return provider, nil
}

// Resolve implements Resolver
func (r *Registry) Resolve(ctx context.Context, modelID string) (llm.Model, error) {
	provider, name, err := Route(modelID)
	if err != nil {
		return nil, err
	}

	opts := []llm.Option{
		llm.WithModel(name),
		llm.WithAPIKey(r.apiKey(provider)),
	}

	var model llm.Model
	switch provider {
	case ProviderGoogle:
		model, err = google.NewModel(ctx, opts...)
	case ProviderAnthropic:
		model, err = anthropic.NewModel(opts...)
	case ProviderOpenAI:
		model, err = openai.NewModel(append(opts, llm.WithBaseURL(r.config.OpenAIBaseURL))...)
	case ProviderOllama:
		model, err = ollama.NewModel(append(opts, llm.WithBaseURL(r.config.OllamaHost))...)
	default:
		return nil, llm.UnknownModel(modelID, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", provider, err)
	}
	return model, nil
}

func (r *Registry) apiKey(provider Provider) string {
	switch provider {
	case ProviderGoogle:
		return r.config.GoogleAPIKey
	case ProviderAnthropic:
		return r.config.AnthropicAPIKey
	case ProviderOpenAI:
		return r.config.OpenAIAPIKey
	default:
		return ""
	}
}
