package title

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
	closed  bool
}

func (m *fakeModel) Prompt(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}

type fakeResolver struct {
	model *fakeModel
	err   error
	asked []string
}

func (r *fakeResolver) Resolve(_ context.Context, modelID string) (llm.Model, error) {
	r.asked = append(r.asked, modelID)
	if r.err != nil {
		return nil, r.err
	}
	return r.model, nil
}

func newTestGenerator(t *testing.T, resolver Resolver) (*Generator, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewGenerator("", resolver, internal.NewLogger(&logs, internal.LogLevelDebug)), &logs
}

func TestGenerator_Generate(t *testing.T) {
	model := &fakeModel{reply: "  Fix: \"Login\" Bug/Crash in Auth's Handler\\ \n"}
	resolver := &fakeResolver{model: model}
	gen, _ := newTestGenerator(t, resolver)

	result := gen.Generate(context.Background(), "[]")

	title, ok := result.Title()
	require.True(t, ok, "unexpected failure: %v", result.Err())
	assert.Equal(t, "Fix Login BugCrash in Auths Handler", title)
	assert.NoError(t, result.Err())
	assert.Equal(t, []string{DefaultModel}, resolver.asked)
	assert.True(t, model.closed, "models implementing io.Closer should be closed")
	require.Len(t, model.prompts, 1)
	assert.True(t, strings.HasPrefix(model.prompts[0], "Analyze the following conversation transcript"))
	assert.True(t, strings.HasSuffix(model.prompts[0], "Transcript Start:\n[]"))
}

func TestGenerator_UnknownModel(t *testing.T) {
	resolver := &fakeResolver{err: llm.UnknownModel("gemini-3-flash-preview", nil)}
	gen, logs := newTestGenerator(t, resolver)

	result := gen.Generate(context.Background(), "[]")

	_, ok := result.Title()
	assert.False(t, ok)
	assert.ErrorIs(t, result.Err(), llm.ErrUnknownModel)
	assert.Contains(t, logs.String(), "[WARN] Model 'gemini-3-flash-preview' is not available")
	assert.NotContains(t, logs.String(), "Failed to generate title")
}

func TestGenerator_Failures(t *testing.T) {
	tests := []struct {
		name    string
		model   *fakeModel
		wantErr error
	}{
		{name: "prompt error", model: &fakeModel{err: errors.New("rate limited")}},
		{name: "blank reply", model: &fakeModel{reply: "  \n"}, wantErr: llm.ErrEmptyResponse},
		{name: "only forbidden characters", model: &fakeModel{reply: `/:"'\`}, wantErr: llm.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, logs := newTestGenerator(t, &fakeResolver{model: tt.model})

			result := gen.Generate(context.Background(), "[]")

			title, ok := result.Title()
			assert.False(t, ok)
			assert.Empty(t, title)
			require.Error(t, result.Err())
			if tt.wantErr != nil {
				assert.ErrorIs(t, result.Err(), tt.wantErr)
			}
			assert.Contains(t, logs.String(), "[WARN] Failed to generate title with LLM")
		})
	}
}

func TestGenerator_MissingKey(t *testing.T) {
	gen, logs := newTestGenerator(t, &fakeResolver{err: llm.ErrMissingKey})
	result := gen.Generate(context.Background(), "[]")

	assert.ErrorIs(t, result.Err(), llm.ErrMissingKey)
	assert.Contains(t, logs.String(), "missing API key")
}

func TestBuildPrompt_Truncates(t *testing.T) {
	transcript := strings.Repeat("ü", MaxTranscriptRunes+500)
	prompt := BuildPrompt(transcript)

	body := strings.TrimPrefix(prompt, promptHeader)
	assert.Equal(t, MaxTranscriptRunes, len([]rune(body)))

	short := BuildPrompt("abc")
	assert.Equal(t, promptHeader+"abc", short)
}

func TestResult(t *testing.T) {
	title, ok := Ok("A Title").Title()
	assert.True(t, ok)
	assert.Equal(t, "A Title", title)

	failed := Failed(nil)
	_, ok = failed.Title()
	assert.False(t, ok)
	assert.Error(t, failed.Err())
}

func TestNewGenerator_Model(t *testing.T) {
	assert.Equal(t, DefaultModel, NewGenerator("", nil, nil).Model())
	assert.Equal(t, "claude-haiku-4-5", NewGenerator("claude-haiku-4-5", nil, nil).Model())
}
