package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// TranscriptPaths holds the directories scanned for transcripts
type TranscriptPaths struct {
	GeminiDir string // ~/.gemini/tmp
	ClaudeDir string // ~/.claude/projects
}

// DetectTranscriptPaths returns the default transcript locations under the
// user's home directory
func DetectTranscriptPaths() (TranscriptPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return TranscriptPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	return TranscriptPaths{
		GeminiDir: filepath.Join(home, ".gemini", "tmp"),
		ClaudeDir: filepath.Join(home, ".claude", "projects"),
	}, nil
}

// GetTranscriptPaths returns the default paths with any non-empty override applied
func GetTranscriptPaths(geminiDir, claudeDir string) (TranscriptPaths, error) {
	paths, err := DetectTranscriptPaths()
	if err != nil && (geminiDir == "" || claudeDir == "") {
		return TranscriptPaths{}, err
	}
	if geminiDir != "" {
		paths.GeminiDir = geminiDir
	}
	if claudeDir != "" {
		paths.ClaudeDir = claudeDir
	}
	return paths, nil
}

// Dir returns the root directory for a source
func (tp TranscriptPaths) Dir(src Source) string {
	switch src {
	case SourceGemini:
		return tp.GeminiDir
	case SourceClaude:
		return tp.ClaudeDir
	default:
		return ""
	}
}

// Pattern returns the glob pattern matching session files for a source
func (tp TranscriptPaths) Pattern(src Source) string {
	switch src {
	case SourceGemini:
		// <hash>/chats/session-*.json
		return filepath.Join(tp.GeminiDir, "*", "chats", "session-*.json")
	case SourceClaude:
		// <project>/<session-uuid>.jsonl
		return filepath.Join(tp.ClaudeDir, "*", "*.jsonl")
	default:
		return ""
	}
}

// Exists reports whether the root directory for a source is present
func (tp TranscriptPaths) Exists(src Source) bool {
	dir := tp.Dir(src)
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// GeminiExists reports whether the Gemini root exists
func (tp TranscriptPaths) GeminiExists() bool {
	return tp.Exists(SourceGemini)
}

// ClaudeExists reports whether the Claude root exists
func (tp TranscriptPaths) ClaudeExists() bool {
	return tp.Exists(SourceClaude)
}
