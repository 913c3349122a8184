package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/testutil"
)

func TestShowCommand(t *testing.T) {
	dirs := testutil.CreateMockTranscriptDirs(t)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    []string
		notWant []string
	}{
		{
			name: "full id",
			args: []string{"show", dirs.ClaudeID},
			want: []string{"Refactor the parser", "Sure, reading it now.", "⚙ Read", "Session: " + dirs.ClaudeID},
		},
		{
			name: "id prefix",
			args: []string{"show", dirs.GeminiID[:8]},
			want: []string{"Explain goroutines", "Goroutines are lightweight threads.", "[2/2]"},
		},
		{
			name:    "last message only",
			args:    []string{"show", dirs.GeminiID, "-n", "1"},
			want:    []string{"Goroutines are lightweight threads.", "1 earlier message(s)"},
			notWant: []string{"[1/2]"},
		},
		{
			name:    "since filters earlier messages",
			args:    []string{"show", dirs.GeminiID, "--since", "2024-01-01T10:00:03Z"},
			want:    []string{"Goroutines are lightweight threads.", "[1/1]"},
			notWant: []string{"[1/2]"},
		},
		{
			name:    "source filter excludes the session",
			args:    []string{"show", dirs.GeminiID, "-s", "claude"},
			wantErr: true,
		},
		{
			name:    "unknown id",
			args:    []string{"show", "does-not-exist"},
			wantErr: true,
		},
		{
			name:    "invalid since",
			args:    []string{"show", dirs.GeminiID, "--since", "yesterday"},
			wantErr: true,
		},
		{
			name:    "missing id",
			args:    []string{"show"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCommand(t, "", mockArgs(dirs, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("output should contain %q, got:\n%s", want, stdout)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(stdout, notWant) {
					t.Errorf("output should not contain %q, got:\n%s", notWant, stdout)
				}
			}
		})
	}
}

func TestDisplayRecordHeader(t *testing.T) {
	rec := internal.CreateTestRecord("session-123")

	var buf bytes.Buffer
	displayRecordHeader(&buf, rec)
	output := buf.String()

	for _, want := range []string{"Hello, how are you?", "Source: Claude", "Session: session-123", "Started: 2024-01-01 12:00:00", "Messages: 2", "Project: test-project"} {
		if !strings.Contains(output, want) {
			t.Errorf("header should contain %q, got:\n%s", want, output)
		}
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      internal.Message
		contains []string
	}{
		{
			name:     "user message",
			msg:      internal.Message{Role: "user", Timestamp: "2024-01-01T12:00:00Z", Text: "Hello"},
			contains: []string{"👤 User", "[1/3]", "12:00:00", "Hello"},
		},
		{
			name: "gemini message with tool call",
			msg: internal.Message{
				Role:      "gemini",
				Text:      "Listing files",
				ToolCalls: []internal.ToolCall{internal.CreateTestToolCall("list_directory", map[string]string{"path": "."}, "ok", false)},
			},
			contains: []string{"🤖 Gemini", "Listing files", "⚙ list_directory", "↳ result"},
		},
		{
			name: "claude tool result error",
			msg: internal.Message{
				Role: "user",
				Blocks: []internal.Block{{
					Type: internal.BlockToolResult,
					Tool: &internal.ToolCall{ID: "toolu_1", Result: []byte(`"boom"`), IsError: true},
				}},
			},
			contains: []string{"↳ error (6 bytes)"},
		},
		{
			name:     "unparsable timestamp kept verbatim",
			msg:      internal.Message{Role: "assistant", Timestamp: "sometime", Text: "Hi"},
			contains: []string{"🤖 Assistant", "sometime"},
		},
		{
			name:     "empty message",
			msg:      internal.Message{Role: "info"},
			contains: []string{"🔧 info", "(empty message)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			displayMessage(&buf, 1, tt.msg, 3)
			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "short line", text: "hello world", width: 80, want: "hello world"},
		{name: "wraps at width", text: "one two three four", width: 9, want: "one two\nthree\nfour"},
		{name: "keeps newlines", text: "a\nb", width: 80, want: "a\nb"},
		{name: "long word", text: "abcdefghij x", width: 5, want: "abcdefghij\nx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}
