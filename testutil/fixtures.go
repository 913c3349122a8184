package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// NewSessionID returns a random session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// GeminiMessage builds one entry of a Gemini session's messages array
func GeminiMessage(msgType, timestamp, content string) map[string]interface{} {
	return map[string]interface{}{
		"id":        NewSessionID(),
		"type":      msgType,
		"timestamp": timestamp,
		"content":   content,
	}
}

// GeminiToolCall builds one entry of a Gemini message's toolCalls array
func GeminiToolCall(id, name string, args, result interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"name":   name,
		"args":   args,
		"result": result,
		"status": "success",
	}
}

// GeminiSession builds a Gemini session document
func GeminiSession(sessionID, startTime string, messages ...map[string]interface{}) map[string]interface{} {
	if messages == nil {
		messages = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"sessionId":   sessionID,
		"projectHash": "abc123",
		"startTime":   startTime,
		"lastUpdated": startTime,
		"messages":    messages,
	}
}

// WriteGeminiSession writes doc to <root>/<hash>/chats/<name>
func WriteGeminiSession(t *testing.T, root, hash, name string, doc interface{}) string {
	t.Helper()
	return WriteFile(t, filepath.Join(root, hash, "chats", name), JSONMarshal(t, doc))
}

// ClaudeEntry builds one Claude Code JSONL entry. content is either a
// string or a list of content blocks.
func ClaudeEntry(entryType, timestamp string, content interface{}) map[string]interface{} {
	role := entryType
	return map[string]interface{}{
		"type":      entryType,
		"uuid":      NewSessionID(),
		"timestamp": timestamp,
		"message": map[string]interface{}{
			"role":    role,
			"content": content,
		},
	}
}

// TextBlock builds a Claude text block
func TextBlock(text string) map[string]interface{} {
	return map[string]interface{}{"type": "text", "text": text}
}

// ToolUseBlock builds a Claude tool_use block
func ToolUseBlock(id, name string, input interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "tool_use", "id": id, "name": name, "input": input}
}

// ToolResultBlock builds a Claude tool_result block
func ToolResultBlock(toolUseID string, content interface{}, isError bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "tool_result",
		"tool_use_id": toolUseID,
		"content":     content,
		"is_error":    isError,
	}
}

// WriteClaudeSession writes entries as JSONL to <root>/<project>/<name>
func WriteClaudeSession(t *testing.T, root, project, name string, entries ...interface{}) string {
	t.Helper()
	return WriteFile(t, filepath.Join(root, project, name), JSONLines(t, entries...))
}

// MockDirs describes a fixture tree created by CreateMockTranscriptDirs
type MockDirs struct {
	GeminiDir string
	ClaudeDir string
	GeminiID  string
	ClaudeID  string
}

// CreateMockTranscriptDirs creates a temp tree with one Gemini and one
// Claude session. The Claude session is the more recent of the two.
func CreateMockTranscriptDirs(t *testing.T) MockDirs {
	t.Helper()
	base := t.TempDir()
	dirs := MockDirs{
		GeminiDir: filepath.Join(base, ".gemini", "tmp"),
		ClaudeDir: filepath.Join(base, ".claude", "projects"),
		GeminiID:  NewSessionID(),
		ClaudeID:  NewSessionID(),
	}

	WriteGeminiSession(t, dirs.GeminiDir, "abc123", "session-2024-01-01T10-00-"+dirs.GeminiID[:8]+".json",
		GeminiSession(dirs.GeminiID, "2024-01-01T10:00:00.000Z",
			GeminiMessage("user", "2024-01-01T10:00:00.000Z", "Explain goroutines"),
			GeminiMessage("gemini", "2024-01-01T10:00:05.000Z", "Goroutines are lightweight threads."),
		))

	WriteClaudeSession(t, dirs.ClaudeDir, "-home-user-project", dirs.ClaudeID+".jsonl",
		map[string]interface{}{"type": "summary", "summary": "Refactor"},
		ClaudeEntry("user", "2024-02-01T09:00:00.000Z", "Refactor the parser"),
		ClaudeEntry("assistant", "2024-02-01T09:00:03.000Z", []interface{}{
			TextBlock("Sure, reading it now."),
			ToolUseBlock("toolu_1", "Read", map[string]interface{}{"file_path": "parser.go"}),
		}),
	)

	return dirs
}
