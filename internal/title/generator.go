// Package title asks a language model for a short, file-name friendly title
// for a transcript.
package title

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/llm"
)

const (
	// DefaultModel is the model used when none is configured
	DefaultModel = "gemini-3-flash-preview"

	// MaxTranscriptRunes is how much of the transcript is sent to the model
	MaxTranscriptRunes = 10000

	promptHeader = "Analyze the following conversation transcript and generate a short, " +
		"descriptive file-name friendly title (max 5-8 words). " +
		"Do not use special characters or path separators. " +
		"Return ONLY the title text, nothing else.\n\n" +
		"Transcript Start:\n"
)

var titleReplacer = strings.NewReplacer(
	"/", "",
	`\`, "",
	":", "",
	`"`, "",
	"'", "",
)

// Result is the outcome of a title request: either a title or the reason
// there is none
type Result struct {
	title string
	err   error
}

// Ok returns a successful result
func Ok(title string) Result {
	return Result{title: title}
}

// Failed returns a failed result carrying err
func Failed(err error) Result {
	if err == nil {
		err = errors.New("title generation failed")
	}
	return Result{err: err}
}

// Title returns the generated title and whether generation succeeded
func (r Result) Title() (string, bool) {
	return r.title, r.err == nil
}

// Err returns the failure reason, or nil on success
func (r Result) Err() error {
	return r.err
}

// Resolver turns a model id into a ready model client
type Resolver interface {
	Resolve(ctx context.Context, modelID string) (llm.Model, error)
}

// Generator produces titles with a single configured model.
// It never retries and keeps no cache.
type Generator struct {
	model    string
	resolver Resolver
	log      *internal.Logger
}

// NewGenerator creates a Generator for modelID. An empty id selects DefaultModel.
func NewGenerator(modelID string, resolver Resolver, log *internal.Logger) *Generator {
	if modelID == "" {
		modelID = DefaultModel
	}
	return &Generator{model: modelID, resolver: resolver, log: log}
}

// Model returns the configured model id
func (g *Generator) Model() string {
	return g.model
}

// Generate asks the model for a title. Failures are logged as warnings and
// returned as a failed Result, never as a panic or error.
func (g *Generator) Generate(ctx context.Context, transcript string) Result {
	model, err := g.resolver.Resolve(ctx, g.model)
	if err != nil {
		return g.fail(err)
	}
	if closer, ok := model.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	reply, err := model.Prompt(ctx, BuildPrompt(transcript))
	if err != nil {
		return g.fail(err)
	}

	title := Clean(reply)
	if title == "" {
		return g.fail(llm.ErrEmptyResponse)
	}

	g.log.Debug("Generated title %q with %s", title, g.model)
	return Ok(title)
}

func (g *Generator) fail(err error) Result {
	if errors.Is(err, llm.ErrUnknownModel) {
		g.log.Warn("Model '%s' is not available. Check the model name and that its provider is configured.", g.model)
	} else {
		g.log.Warn("Failed to generate title with LLM: %v", err)
	}
	return Failed(err)
}

// BuildPrompt returns the title prompt for the first MaxTranscriptRunes of transcript
func BuildPrompt(transcript string) string {
	if runes := []rune(transcript); len(runes) > MaxTranscriptRunes {
		transcript = string(runes[:MaxTranscriptRunes])
	}
	return promptHeader + transcript
}

// Clean trims a model reply and strips characters that break file names
func Clean(reply string) string {
	return strings.TrimSpace(titleReplacer.Replace(strings.TrimSpace(reply)))
}
