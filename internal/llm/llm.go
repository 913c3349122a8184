// Package llm wraps the model providers used for title generation behind a
// single prompt-in, text-out interface.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Model sends a single prompt and returns the model's text reply
type Model interface {
	Prompt(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrUnknownModel is returned when a provider does not know the model id
	ErrUnknownModel = errors.New("model not found")
	// ErrMissingKey is returned when a provider needs an API key that is not configured
	ErrMissingKey = errors.New("missing API key")
	// ErrEmptyResponse is returned when a provider replies without any text
	ErrEmptyResponse = errors.New("empty response")
)

// UnknownModel wraps ErrUnknownModel with the offending model id
func UnknownModel(model string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnknownModel, model, cause)
}

type Option func(*Options)

type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	// MaxTokens caps the reply. Zero leaves the provider default in place;
	// thinking models count reasoning against the cap.
	MaxTokens int
}

func WithAPIKey(apiKey string) Option {
	return func(o *Options) {
		o.APIKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func NewOptions(opts ...Option) Options {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
