package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectTranscriptPaths(t *testing.T) {
	paths, err := DetectTranscriptPaths()
	if err != nil {
		t.Fatalf("DetectTranscriptPaths() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".gemini", "tmp"); paths.GeminiDir != want {
		t.Errorf("GeminiDir = %v, want %v", paths.GeminiDir, want)
	}
	if want := filepath.Join(home, ".claude", "projects"); paths.ClaudeDir != want {
		t.Errorf("ClaudeDir = %v, want %v", paths.ClaudeDir, want)
	}
}

func TestGetTranscriptPaths_Overrides(t *testing.T) {
	paths, err := GetTranscriptPaths("/g", "/c")
	if err != nil {
		t.Fatalf("GetTranscriptPaths() error = %v", err)
	}
	if paths.GeminiDir != "/g" || paths.ClaudeDir != "/c" {
		t.Errorf("GetTranscriptPaths() = %+v, want overrides applied", paths)
	}
}

func TestTranscriptPaths_Pattern(t *testing.T) {
	paths := TranscriptPaths{GeminiDir: "/g", ClaudeDir: "/c"}

	if got, want := paths.Pattern(SourceGemini), filepath.Join("/g", "*", "chats", "session-*.json"); got != want {
		t.Errorf("Pattern(gemini) = %v, want %v", got, want)
	}
	if got, want := paths.Pattern(SourceClaude), filepath.Join("/c", "*", "*.jsonl"); got != want {
		t.Errorf("Pattern(claude) = %v, want %v", got, want)
	}
}

func TestTranscriptPaths_Exists(t *testing.T) {
	dir := t.TempDir()
	paths := TranscriptPaths{GeminiDir: dir, ClaudeDir: filepath.Join(dir, "missing")}

	if !paths.GeminiExists() {
		t.Error("GeminiExists() should be true for an existing directory")
	}
	if paths.ClaudeExists() {
		t.Error("ClaudeExists() should be false for a missing directory")
	}
}
